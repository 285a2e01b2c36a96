/*
Package observability wires engine lifecycle hooks into Prometheus metrics.

Consumers register the Metrics collectors, pass Metrics.Hooks() to the
engine, and expose promhttp wherever their HTTP surface lives.
*/
package observability

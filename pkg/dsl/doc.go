/*
Package dsl provides a fluent builder for constructing games in Go code,
without going through the markdown DSL. It is the programmatic counterpart
of the compiler and is mostly used by tests and tooling.
*/
package dsl

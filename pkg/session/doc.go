/*
Package session orchestrates play-session persistence.

A player's state transitions must be serialized per session: read current
state, compute the next one through the engine, persist it. The Manager
guards that critical section with reference-counted in-process locks and an
optional distributed locker for multi-replica deployments.
*/
package session

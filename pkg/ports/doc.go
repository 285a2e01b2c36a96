/*
Package ports defines the interfaces between the play runtime and its
infrastructure adapters: session state persistence and distributed locking.

Implementations live in pkg/adapters. Keeping the interfaces here means the
engine and session manager never import a concrete backend.
*/
package ports

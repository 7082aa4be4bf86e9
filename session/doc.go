// Package session houses concrete implementations of core.Store. The
// interface itself (and the domain types) live in the core package to
// centralize domain contracts; keeping only implementations here prevents
// higher level packages from depending on concrete storage.
//
// InMemoryStore is the volatile single-process implementation. Add durable
// backends (Redis, Postgres, etc.) in sub-packages without changing any
// calling code – only the wiring layer needs to decide which implementation
// to instantiate.
package session

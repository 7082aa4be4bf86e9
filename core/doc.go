// Package core provides the foundational domain types and interfaces used by
// sessionmesh. It defines the core abstractions for:
//
//   - Sessions (top-level containers scoping users, groups and shared context)
//   - Users (participant identity, role, working context and preferences)
//   - Groups (named, capacity-bounded member collections with settings)
//   - Events (immutable lifecycle notification records)
//   - The Store interface implemented by concrete backends
//
// The package intentionally keeps implementation concerns (storage, event
// transport, inference adapters) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core

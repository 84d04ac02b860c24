// Package ds provides the core data structure adapters of rDS: List, Set and
// Hash. Each adapter binds a local collection interface to one remote key of
// a structured store reached through the client.IStructClient interface.
//
// The adapters hold no local state beyond (client, key): every read reflects
// the remote state at call time and every write is a round trip. Operations
// with a direct atomic store counterpart (append, index access, end pops,
// field access, server-side set algebra) are atomic; everything else is a
// compound operation built from several sequential primitives and carries NO
// cross-call isolation. Each compound method documents this explicitly; a
// concurrent writer can interleave between the constituent calls and an
// abandoned compound operation leaves the remote collection in whatever
// partial state the completed steps produced. There is no rollback.
//
// Errors follow local collection conventions via ds.Error kinds: KindIndex
// for sequence addressing, KindKey for absent fields or members, KindValue
// for absent sequence values, KindType for incompatible operands or invalid
// construction and KindUnsupported for unimplementable requests (e.g. slice
// step != 1). Store type mismatches (a command hitting a key that holds a
// different structure) surface as KindType. Transport and protocol failures
// propagate unchanged; the package adds no retry policy.
//
// Derived collections (Copy, algebra results) are materialized under fresh
// keys produced by an injectable KeyFactory (default: uuid based), supplied
// via the WithKeyFactory option.
package ds

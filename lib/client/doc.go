// Package client defines the consumed interface towards a structured
// key-value store: the minimum set of atomic single-command primitives
// (list push/pop/index/range, set add/remove/algebra, hash field access)
// that the adapters in lib/ds are built on.
//
// The package focuses on:
//   - A unified interface (IStructClient) for structure operations across
//     different backends
//   - A structured error reporting mechanism using typed return codes, so
//     callers can distinguish a type mismatch (RetCWrongType) or a list
//     addressing error (RetCOutOfRange) from an internal failure
//
// Implementations:
//
//	The module includes two implementations of the IStructClient interface:
//
//	- Local client (lclient): an in-process implementation holding the
//	  structures in sharded concurrent maps. Every primitive is atomic.
//	  Available in the "github.com/ValentinKolb/rDS/lib/client/lclient" package.
//
//	- RPC client: a client that forwards every primitive as a single request
//	  to an rDS server over a pluggable transport and serializer.
//	  Available in the "github.com/ValentinKolb/rDS/rpc/client" package.
//
// Each primitive is atomic on its own; the interface deliberately offers no
// multi-command transaction, so anything composed of several calls has no
// cross-call isolation guarantee.
package client

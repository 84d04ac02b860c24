// Package transport defines the network abstractions of the rDS RPC layer.
// It declares the client and server transport interfaces and hosts the
// pluggable implementations in its subpackages:
//
//   - base: shared connection-oriented core (frame codec, connection pooling,
//     per-connection worker limiting) that tcp and unix specialize.
//   - tcp: TCP sockets for remote servers.
//   - unix: Unix domain sockets for servers on the same host.
//   - http: standalone HTTP POST transport, one request per call.
//
// Every frame carries the space ID it addresses, so one connection can
// multiplex requests against all spaces a server hosts.
package transport

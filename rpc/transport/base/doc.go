// Package base provides the shared core of the connection-oriented
// transports (tcp, unix). It implements the frame codec (space ID, request
// ID, payload length), a pooled client side with round-robin connection
// selection, pipelined requests and retry with exponential backoff, and a
// server side with a per-connection worker limit and pooled read buffers.
//
// Concrete transports inject an IClientConnector / IServerConnector that
// only knows how to dial or listen on its medium; everything else lives
// here.
package base

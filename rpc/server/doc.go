// Package server implements the RPC server for the remote data structure store.
// It provides the adapter translating protocol messages into structure client
// calls, along with the core server implementation that manages spaces and
// request routing.
//
// The package focuses on:
//   - Server-side RPC request handling for list, set, hash and key operations
//   - Adapter pattern to decouple the store logic from RPC mechanisms
//   - Hosting any number of isolated spaces, each backed by its own store
//   - Optional per-operation metrics exposed via a Prometheus endpoint
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for server adapters,
//     with the Handle method that processes incoming requests against a
//     client.IStructClient.
//
//   - NewStructClientServerAdapter: Factory function creating the adapter for
//     structure operations, translating protocol messages to client method calls.
//
//   - NewRPCServer: Factory function creating a configured server with the
//     specified transport and serializer mechanisms.
//
// Usage Example:
//
//	// Create server configuration
//	config := common.ServerConfig{
//	  Spaces:        []uint64{100, 200},
//	  Endpoint:      "0.0.0.0:8080",
//	  TimeoutSecond: 5,
//	  LogLevel:      "info",
//	}
//
//	// Create and start the server
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPDefaultServerTransport(),
//	  serializer.NewBinarySerializer(),
//	)
//
//	// Start the server
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Each space is an isolated keyspace: the same key names two unrelated
// structures in two different spaces. Requests address a space via the
// transport's space ID, and a request for a space the server does not host
// is answered with an error response.
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent requests
//	across multiple connections. Each request is processed independently.
//	The Listen method is not thread-safe and should be called only once.
package server

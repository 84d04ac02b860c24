// Package client implements the RPC client for the remote data structure
// store. It provides an implementation of the client.IStructClient interface
// that communicates with a remote server via RPC.
//
// The package focuses on:
//   - Transparent RPC access to the structure store
//   - Integration with the transport and serialization layers
//   - Rebuilding remote error categories so callers can match them locally
//
// Key Components:
//
//   - NewRPCStructClient: Factory function that creates a client implementing
//     the client.IStructClient interface. This client forwards all operations
//     to a remote server via the configured transport layer.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  Endpoints:              []string{"localhost:5000"},
//	  TimeoutSecond:          5,
//	  RetryCount:             3,
//	  ConnectionsPerEndpoint: 1,
//	}
//
//	// Create a serializer
//	serializer := serializer.NewBinarySerializer()
//
//	// Create the structure client addressing space 1
//	c, _ := client.NewRPCStructClient(1, config, tcp.NewTCPClientTransport(), serializer)
//
//	// Use the client
//	c.ListPush("mylist", "a", "b")
//	values, _ := c.ListRange("mylist", 0, -1)
//
// Performance Considerations:
//
//   - For applications that frequently send large payloads, increasing ConnectionsPerEndpoint
//     can improve throughput by allowing parallel requests.
//
//   - For small messages, a single connection per endpoint is often more efficient due to
//     reduced connection overhead.
//
//   - The choice of serializer significantly affects performance. The binary serializer
//     provides the best performance and smallest payload size.
//
// Thread Safety:
//
//	The client implementation is thread-safe and can be used concurrently from
//	multiple goroutines without additional synchronization.
package client

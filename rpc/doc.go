// Package rpc provides a comprehensive framework for remote procedure calls
// in the remote data structure store. It acts as the communication layer
// between clients and servers, enabling structure operations across network
// boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, configuration structures, and logging.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets, HTTP).
//
//   - serializer: Message serialization with multiple format options (Binary, JSON, GOB)
//     for converting between Message objects and byte arrays.
//
//   - client: The RPC client implementation of the structure client interface,
//     allowing applications to interact with a remote store transparently.
//
//   - server: RPC server components that handle incoming requests, including
//     the adapter for structure operations and space management.
package rpc

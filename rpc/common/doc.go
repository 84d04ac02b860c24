// Package common provides core data structures and utilities shared across
// the remote data structure store. It defines fundamental types, configuration
// structures, and protocol elements used by other packages.
//
// The package focuses on:
//   - Message protocol definition for inter-component communication
//   - Configuration structures for client and server components
//   - Custom logging implementation with named, leveled loggers
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication between components,
//     with a flexible structure that adapts to different operation types.
//     Includes factory methods for creating various request and response messages.
//
//   - MessageType: Enumeration defining all supported operation types in the
//     system, categorized into list, set, hash and key operations, plus
//     control messages.
//
//   - ServerConfig: Configuration for server nodes, including the hosted
//     spaces, network endpoint, timeouts, metrics endpoint and log level.
//
//   - ClientConfig: Configuration for client components, controlling connection
//     parameters, timeouts, and retry behavior.
//
//   - Logger: Custom logging implementation providing consistent formatting
//     across the application.
//
// Error categories survive the wire: a response carries the category code of
// the error the store reported, and Message.RemoteErr rebuilds it on the
// client side so callers can match it the same way as with a local store.
package common

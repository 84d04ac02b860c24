// Package cmd implements the command-line interface for the rDS remote data
// structure store. It provides a hierarchical command structure with operations
// for running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - ds: Commands for structure operations on lists, sets and hashes
//   - serve: Commands for starting and configuring the rDS server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See rds -help for a list of all commands.
package cmd

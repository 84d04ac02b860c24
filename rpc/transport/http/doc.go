// Package http provides a standalone HTTP transport: every request is one
// POST to /{spaceID} with the serialized message as body. It trades the
// multiplexed framing of the socket transports for interoperability with
// standard HTTP tooling.
package http

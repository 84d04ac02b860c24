// Package unix provides the Unix domain socket specialization of the base
// transport, intended for clients on the same host as the server.
package unix

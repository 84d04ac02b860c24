// Package tcp provides the TCP specialization of the base transport. It is
// the default transport for servers reachable over the network.
package tcp

// Package client implements the connection-owning trade input Client.
//
// A Client wires one transport to a protocol.Dispatcher and a
// protocol.Session and manages their goroutines with an errgroup. It stays
// connected until the connection ends or Close is called. Done and Err report
// how it ended.
package client

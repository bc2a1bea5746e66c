// Package transport carries protocol frames over an ordered, reliable byte stream.
//
// Each frame is preceded by its length as an unsigned VarInt. The package does
// not interpret frame contents; decoding is left to the message package.
package transport

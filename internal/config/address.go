package config

import (
	"net"
	"strings"
)

// DefaultPort is the port assumed when an address names only a host.
const DefaultPort = "25565"

// NormalizeAddress returns address in host:port form.
//
//   - "" -> ""
//   - "trade.example.net" -> "trade.example.net:25565"
//   - "10.0.0.5:30000" -> unchanged
//   - "::1" -> "[::1]:25565"
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}

	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}

	host := strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")

	return net.JoinHostPort(host, DefaultPort)
}

package config

import "testing"

func TestNormalizeAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty unchanged", in: "", want: ""},
		{name: "blank", in: "   ", want: ""},
		{name: "host only", in: "trade.example.net", want: "trade.example.net:25565"},
		{name: "host and port", in: "10.0.0.5:30000", want: "10.0.0.5:30000"},
		{name: "bare ipv6", in: "::1", want: "[::1]:25565"},
		{name: "bracketed ipv6", in: "[::1]", want: "[::1]:25565"},
		{name: "bracketed ipv6 with port", in: "[::1]:4000", want: "[::1]:4000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeAddress(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeAddress(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

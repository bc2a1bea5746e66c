package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the terminal client's configuration, read from a TOML file and
// overridden by command-line flags.
//
//	address = "trade.example.net:25565"
//	pending_timeout = "2m"
//	metrics_address = "127.0.0.1:9108"
//	log_file = "/tmp/tradeinput.log"
//	log_level = "debug"
type Config struct {
	Address        string        `toml:"address"`
	PendingTimeout time.Duration `toml:"pending_timeout"`
	MetricsAddress string        `toml:"metrics_address"`
	LogFile        string        `toml:"log_file"`
	LogLevel       string        `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Address:  "127.0.0.1",
		LogLevel: "info",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
// Unknown keys are an error so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return Config{}, fmt.Errorf("read config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// Validate checks values the client would otherwise reject late.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		return errors.New("address is required")
	}

	if c.PendingTimeout < 0 {
		return errors.New("pending_timeout must not be negative")
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}

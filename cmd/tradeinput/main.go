// Command tradeinput connects to a trading host and answers its price,
// quantity and search requests from the terminal.
//
// Usage:
//
//	tradeinput -address trade.example.net
//	tradeinput -config tradeinput.toml -metrics-address 127.0.0.1:9108
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	tradeinput "github.com/wagiedev/trade-input-go"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tradeinput: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	if cfg.MetricsAddress != "" {
		shutdown := serveMetrics(logger, cfg.MetricsAddress, reg)
		defer shutdown()
	}

	presenter := tradeinput.NewChannelPresenter(16)

	client := tradeinput.NewClient()
	if err := client.Start(ctx,
		tradeinput.WithLogger(logger),
		tradeinput.WithAddress(cfg.Address),
		tradeinput.WithPresenter(presenter),
		tradeinput.WithPendingTimeout(cfg.PendingTimeout),
		tradeinput.WithMetricsRegisterer(reg),
	); err != nil {
		return err
	}

	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close client", "error", err)
		}
	}()

	program := tea.NewProgram(newModel(ctx, client, presenter.Events()), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	return client.Err()
}

// parseConfig loads the config file and applies explicitly set flags over it.
func parseConfig(args []string) (Config, error) {
	fs := flag.NewFlagSet("tradeinput", flag.ContinueOnError)

	configPath := fs.String("config", "", "Path to a TOML config file")
	address := fs.String("address", "", "Host address (host or host:port)")
	timeout := fs.Duration("pending-timeout", 0, "Cancel inputs left untouched this long (0 disables)")
	metricsAddress := fs.String("metrics-address", "", "Serve Prometheus metrics on this address")
	logFile := fs.String("log-file", "", "Write logs to this file")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "address":
			cfg.Address = *address
		case "pending-timeout":
			cfg.PendingTimeout = *timeout
		case "metrics-address":
			cfg.MetricsAddress = *metricsAddress
		case "log-file":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// newLogger writes to LogFile, or discards output: the terminal belongs to the UI.
func newLogger(cfg Config) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))

	return logger, func() { _ = f.Close() }, nil
}

func serveMetrics(logger *slog.Logger, address string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "address", address, "error", err)
		}
	}()

	logger.Info("Serving metrics", "address", address)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_ = srv.Shutdown(ctx)
	}
}

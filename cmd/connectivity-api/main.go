package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"connectivity-api/internal/config"
	"connectivity-api/internal/policy"
	"connectivity-api/internal/probe"
	"connectivity-api/internal/runner"
	"connectivity-api/internal/web"
)

type CLI struct {
	Port    int  `default:"8000" help:"HTTP listen port."`
	Verbose bool `help:"Enable verbose logging."`
	Debug   bool `help:"Enable debug logging."`
}

func main() {
	cli := CLI{}
	kong.Parse(&cli,
		kong.Name("connectivity-api"),
		kong.Description("REST API for checking network connectivity via ping and traceroute."),
	)

	logger, err := newLogger(cli.Verbose, cli.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	cfg.Port = cli.Port
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	pol := policy.New(cfg)
	run := runner.New(logger)
	prober := probe.New(cfg, pol, run, logger)
	server := web.New(cfg, prober, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("web server failed", zap.Error(err))
		}
	}()

	logger.Info("service started",
		zap.Int("port", cfg.Port),
		zap.Strings("allowed_hosts", cfg.AllowedHosts))

	<-sigChan
	logger.Info("shutting down")

	// Give in-flight probes a chance to finish before pulling the plug.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func newLogger(verbose bool, debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zoned-parking/internal/config"
	"zoned-parking/internal/logging"
	"zoned-parking/internal/parking"
	"zoned-parking/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error(context.Background(), "failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "Mode to run: cli, server, or both")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "Port for HTTP server")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logging.Error(context.Background(), "invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := parking.NewTelemetryProvider(ctx, parking.TelemetryConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		logging.Error(ctx, "failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.ServiceName, cfg.Environment)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch cfg.Mode {
	case config.ModeCLI:
		runCLI(ctx, cancel, telemetryProvider, sigChan)
	case config.ModeServer:
		runServer(ctx, cancel, cfg, telemetryProvider, sigChan)
	case config.ModeBoth:
		runBoth(ctx, cancel, cfg, telemetryProvider, sigChan)
	}
}

func newServer(cfg *config.Config, telemetryProvider *parking.TelemetryProvider) *server.Server {
	return server.NewServer(server.Options{
		Port:           cfg.Port,
		ServiceName:    cfg.ServiceName,
		Telemetry:      telemetryProvider,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
}

func runCLI(ctx context.Context, cancel context.CancelFunc, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		logging.Info(ctx, "shutting down")
		cancel()
	}()

	shell := parking.NewInstrumentedShell(telemetryProvider, os.Stdin, os.Stdout)
	shell.Run(ctx)

	shutdownTelemetry(telemetryProvider)
}

func runServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := newServer(cfg, telemetryProvider)

	go func() {
		<-sigChan
		logging.Info(ctx, "received shutdown signal")
		shutdownServer(srv)
		cancel()
	}()

	logging.Info(ctx, "starting server mode", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error(ctx, "server error", "error", err)
	}

	shutdownTelemetry(telemetryProvider)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := newServer(cfg, telemetryProvider)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan struct{})
	go func() {
		shell := parking.NewInstrumentedShell(telemetryProvider, os.Stdin, os.Stdout)
		shell.Run(ctx)
		close(cliDone)
	}()

	go func() {
		<-sigChan
		logging.Info(ctx, "received shutdown signal")
		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "server error", "error", err)
		}
	case <-cliDone:
		logging.Info(ctx, "CLI exited")
	case <-ctx.Done():
		logging.Info(ctx, "context cancelled")
	}

	shutdownServer(srv)
	shutdownTelemetry(telemetryProvider)
}

func shutdownServer(srv *server.Server) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error(shutdownCtx, "server shutdown error", "error", err)
	}
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logging.Info(shutdownCtx, "shutting down telemetry")
	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		logging.Error(shutdownCtx, "error shutting down telemetry", "error", err)
	}
}

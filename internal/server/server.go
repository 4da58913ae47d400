package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zoned-parking/internal/logging"
	"zoned-parking/internal/parking"
)

type Options struct {
	Port           string
	ServiceName    string
	Telemetry      *parking.TelemetryProvider
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	httpServer *http.Server
	handler    *Handler
}

func NewServer(opts Options) *Server {
	handler := NewHandler(opts.ServiceName, opts.Telemetry)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		parking.NewLotCollector(handler.Lot),
	)

	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(TracingMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	r.Route("/api/parking-lot", func(r chi.Router) {
		r.Use(RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))

		r.Post("/", handler.CreateParkingLot)
		r.Post("/cars", handler.AddCar)
		r.Get("/status", handler.GetStatus)
	})

	httpServer := &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	logging.Info(context.Background(), "starting HTTP server", "addr", s.httpServer.Addr, "url", s.GetAddress())
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info(ctx, "shutting down HTTP server")
	if il := s.handler.currentLot(); il != nil {
		if err := il.Close(); err != nil {
			logging.Warn(ctx, "failed to release lot metrics", "error", err)
		}
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://localhost%s", s.httpServer.Addr)
}

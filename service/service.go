// Package service exposes the runner's healthz and metrics HTTP endpoints.
// Both servers are best-effort side channels; grading never depends on them.
package service

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/distsys-lab/grade-runner/metrics"
)

const (
	HealthzHost = "0.0.0.0"
	HealthzPort = "8080"

	MetricsHost = "0.0.0.0"
	MetricsPort = "7300"
)

// Service bundles the two sidecar HTTP servers.
type Service struct {
	healthz *http.Server
	metrics *http.Server
	ctx     context.Context
}

func New() *Service {
	return &Service{}
}

// Start launches both servers in the background. Listen errors are logged
// and counted but do not stop the grading run.
func (s *Service) Start(ctx context.Context) {
	s.ctx = ctx
	log.Info("service starting")

	healthzMux := http.NewServeMux()
	healthzMux.HandleFunc("/healthz", handleHealthz)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	s.healthz = &http.Server{
		Addr:    net.JoinHostPort(HealthzHost, HealthzPort),
		Handler: c.Handler(healthzMux),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	s.metrics = &http.Server{
		Addr:    net.JoinHostPort(MetricsHost, MetricsPort),
		Handler: metricsMux,
	}

	go serve(s.healthz, "healthz")
	go serve(s.metrics, "metrics")

	log.Info("service started")
}

func serve(server *http.Server, name string) {
	log.Info("starting server", "name", name, "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "name", name, "err", err)
		metrics.RecordErrorDetails("error starting "+name+" server", err)
	}
}

func (s *Service) Shutdown() {
	log.Info("service shutting down")

	if s.healthz != nil {
		_ = s.healthz.Shutdown(s.ctx)
		log.Info("healthz stopped")
	}
	if s.metrics != nil {
		_ = s.metrics.Shutdown(s.ctx)
		log.Info("metrics stopped")
	}

	log.Info("service stopped")
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK")) //nolint:errcheck
}

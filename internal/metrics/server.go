// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/telekom/refresher/internal/config"
)

type Server struct {
	server *http.Server
	logger *zerolog.Logger
	port   int
}

func NewServer(metrics *Metrics, cfg config.MetricsConfiguration, logger *zerolog.Logger) *Server {
	var mux = http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{
		Timeout: cfg.Timeout,
	}))

	return &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: mux,
		},
		logger: logger,
		port:   cfg.Port,
	}
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ExposeMetrics blocks until the server is shut down.
func (s *Server) ExposeMetrics() {
	s.logger.Info().Msgf("Metrics will be exposed on port: %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("Could not expose metrics")
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

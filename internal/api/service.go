// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"time"

	"github.com/gofiber/contrib/fiberzerolog"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/telekom/refresher/internal/config"
	"github.com/telekom/refresher/internal/trigger"
)

// Service exposes the trigger file over HTTP so that upstream jobs can request a refresh
// without filesystem access.
type Service struct {
	app      *fiber.App
	sentinel *trigger.Sentinel
	logger   *zerolog.Logger
	port     int
}

func NewService(cfg config.ApiConfiguration, sentinel *trigger.Sentinel, logger *zerolog.Logger) *Service {
	var serviceLogger = createLogger(cfg.LogLevel, logger)
	var service = &Service{
		sentinel: sentinel,
		logger:   serviceLogger,
		port:     cfg.Port,
	}

	service.app = fiber.New(fiber.Config{
		DisableStartupMessage: serviceLogger.GetLevel() != zerolog.DebugLevel,
		ErrorHandler:          handleError,
	})

	service.app.Use(fiberzerolog.New(fiberzerolog.Config{
		Logger: serviceLogger,
	}))

	service.app.Get("/health", getHealth)

	v1 := service.app.Group("/api/v1")
	if cfg.Security.Enabled {
		v1.Use(jwtware.New(jwtware.Config{
			SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Security.Secret)},
			ErrorHandler: handleUnauthorized,
		}))
		v1.Use(withTrustedClients(cfg.Security.TrustedClients))
	}
	v1.Post("/trigger", service.postTrigger)

	return service
}

func createLogger(level string, parent *zerolog.Logger) *zerolog.Logger {
	logger := parent.With().Str("logger", "api").Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		if err != nil {
			logger.Error().Err(err).Msg("Invalid log level for api service, defaulting to info")
		}
		lvl = zerolog.InfoLevel
	}

	logger = logger.Level(lvl)
	return &logger
}

func (s *Service) App() *fiber.App {
	return s.app
}

// Listen blocks until the service is shut down.
func (s *Service) Listen() {
	s.logger.Info().Int("port", s.port).Msg("Starting api service...")
	if err := s.app.Listen(fmt.Sprintf(":%d", s.port)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to start api service")
	}
}

func (s *Service) Shutdown(timeout time.Duration) {
	s.logger.Info().Dur("timeout", timeout).Msg("Shutting down api service...")
	if err := s.app.ShutdownWithTimeout(timeout); err != nil {
		s.logger.Error().Err(err).Msg("Failed to shutdown api service gracefully")
	}
}

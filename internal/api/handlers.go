// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import "github.com/gofiber/fiber/v2"

// getHealth reports that the process is up.
func getHealth(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(HealthResponse{Status: "UP"})
}

// postTrigger creates the trigger file. The refresh runs on the next poll of the watcher.
// Response: HTTP 202 with the path of the trigger file
func (s *Service) postTrigger(ctx *fiber.Ctx) error {
	if err := s.sentinel.Touch(); err != nil {
		s.logger.Error().Err(err).Str("path", s.sentinel.Path()).Msg("Failed to create trigger file")
		return handleInternalServerError(ctx, "Failed to create trigger file", err)
	}

	s.logger.Info().Str("path", s.sentinel.Path()).Str("ip", ctx.IP()).Msg("Trigger file created via api")
	return ctx.Status(fiber.StatusAccepted).JSON(TriggerResponse{Sentinel: s.sentinel.Path()})
}

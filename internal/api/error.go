// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// handleInternalServerError returns a standardized internal server error response
func handleInternalServerError(ctx *fiber.Ctx, message string, err error) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   message,
		Code:    fiber.StatusInternalServerError,
		Details: err.Error(),
	})
}

// handleUnauthorized answers every failed token validation with 401
func handleUnauthorized(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "Unauthorized",
		Code:    fiber.StatusUnauthorized,
		Details: err.Error(),
	})
}

// handleError renders fiber errors (unknown routes, rejected clients) in the common format
func handleError(ctx *fiber.Ctx, err error) error {
	var code = fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return ctx.Status(code).JSON(ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func withTrustedClients(trustedClients []string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if len(trustedClients) > 0 {
			user, ok := ctx.Locals("user").(*jwt.Token)
			if !ok {
				return &fiber.Error{Code: fiber.StatusUnauthorized, Message: "Missing token"}
			}
			claims, ok := user.Claims.(jwt.MapClaims)
			if !ok {
				return &fiber.Error{Code: fiber.StatusUnauthorized, Message: "Unexpected claims"}
			}
			clientId, _ := claims["clientId"].(string)
			if !slices.Contains(trustedClients, clientId) {
				return &fiber.Error{Code: fiber.StatusUnauthorized, Message: "Unauthorized client"}
			}
		}
		return ctx.Next()
	}
}

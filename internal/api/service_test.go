// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/telekom/refresher/internal/config"
	"github.com/telekom/refresher/internal/trigger"
)

const testSecret = "test-secret"

func createTestService(t *testing.T, security config.ApiSecurity) (*Service, *trigger.Sentinel) {
	var logger = zerolog.Nop()
	var sentinel = trigger.NewSentinel(filepath.Join(t.TempDir(), "refresh.trigger"), nil)
	var cfg = config.ApiConfiguration{Enabled: true, LogLevel: "info", Security: security}
	return NewService(cfg, sentinel, &logger), sentinel
}

func createToken(t *testing.T, secret string, clientId string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"clientId": clientId,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func postTriggerRequest(token string) *http.Request {
	var req = httptest.NewRequest(fiber.MethodPost, "/api/v1/trigger", nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestGetHealth(t *testing.T) {
	var assertions = assert.New(t)
	service, _ := createTestService(t, config.ApiSecurity{})

	resp, err := service.App().Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	assertions.NoError(err)
	assertions.Equal(fiber.StatusOK, resp.StatusCode)

	var health HealthResponse
	body, _ := io.ReadAll(resp.Body)
	assertions.NoError(json.Unmarshal(body, &health))
	assertions.Equal("UP", health.Status)
}

func TestPostTrigger(t *testing.T) {
	var assertions = assert.New(t)
	service, sentinel := createTestService(t, config.ApiSecurity{})

	resp, err := service.App().Test(postTriggerRequest(""))
	assertions.NoError(err)
	assertions.Equal(fiber.StatusAccepted, resp.StatusCode)

	var response TriggerResponse
	body, _ := io.ReadAll(resp.Body)
	assertions.NoError(json.Unmarshal(body, &response))
	assertions.Equal(sentinel.Path(), response.Sentinel)

	present, err := sentinel.Poll()
	assertions.NoError(err)
	assertions.True(present)
}

func TestPostTrigger_Secured(t *testing.T) {
	var security = config.ApiSecurity{Enabled: true, Secret: testSecret, TrustedClients: []string{"scheduler"}}

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		expected int
	}{
		{name: "missing token", token: func(*testing.T) string { return "" }, expected: fiber.StatusUnauthorized},
		{name: "wrong secret", token: func(t *testing.T) string { return createToken(t, "other", "scheduler") }, expected: fiber.StatusUnauthorized},
		{name: "untrusted client", token: func(t *testing.T) string { return createToken(t, testSecret, "intruder") }, expected: fiber.StatusUnauthorized},
		{name: "trusted client", token: func(t *testing.T) string { return createToken(t, testSecret, "scheduler") }, expected: fiber.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var assertions = assert.New(t)
			service, sentinel := createTestService(t, security)

			resp, err := service.App().Test(postTriggerRequest(tt.token(t)))
			assertions.NoError(err)
			assertions.Equal(tt.expected, resp.StatusCode)

			present, _ := sentinel.Poll()
			assertions.Equal(tt.expected == fiber.StatusAccepted, present)
		})
	}
}

func TestPostTrigger_Failure(t *testing.T) {
	var assertions = assert.New(t)
	var logger = zerolog.Nop()

	var blocker = filepath.Join(t.TempDir(), "file")
	var sentinel = trigger.NewSentinel(filepath.Join(blocker, "refresh.trigger"), nil)
	assertions.NoError(trigger.NewSentinel(blocker, nil).Touch())

	var service = NewService(config.ApiConfiguration{}, sentinel, &logger)
	resp, err := service.App().Test(postTriggerRequest(""))
	assertions.NoError(err)
	assertions.Equal(fiber.StatusInternalServerError, resp.StatusCode)

	var response ErrorResponse
	body, _ := io.ReadAll(resp.Body)
	assertions.NoError(json.Unmarshal(body, &response))
	assertions.Equal("Failed to create trigger file", response.Error)
	assertions.NotEmpty(response.Details)
}

func TestUnknownRoute(t *testing.T) {
	var assertions = assert.New(t)
	service, _ := createTestService(t, config.ApiSecurity{})

	resp, err := service.App().Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/unknown", nil))
	assertions.NoError(err)
	assertions.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateLogger_KeepsParentOutput(t *testing.T) {
	var assertions = assert.New(t)
	var out bytes.Buffer
	var parent = zerolog.New(&out)

	var logger = createLogger("debug", &parent)
	logger.Debug().Msg("debug line")
	assertions.Contains(out.String(), `"logger":"api"`)
	assertions.Contains(out.String(), "debug line")

	out.Reset()
	var sentinel = trigger.NewSentinel(filepath.Join(t.TempDir(), "refresh.trigger"), nil)
	var service = NewService(config.ApiConfiguration{LogLevel: "debug"}, sentinel, &parent)

	resp, err := service.App().Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	assertions.NoError(err)
	assertions.Equal(fiber.StatusOK, resp.StatusCode)
	assertions.Contains(out.String(), "/health", "access logs reach the parent writer")
}

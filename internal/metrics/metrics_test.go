// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/telekom/refresher/internal/config"
)

func TestMetrics(t *testing.T) {
	var assertions = assert.New(t)
	var m = New()
	var finishedAt = time.Unix(1700000000, 0)

	m.CycleFinished("idle", finishedAt)
	m.CycleFinished("completed", finishedAt)
	m.DashboardFinished("refreshed", 42*time.Second)
	m.DashboardFinished("failed", 0)

	assertions.Equal(1.0, testutil.ToFloat64(m.cycles.WithLabelValues("idle")))
	assertions.Equal(1.0, testutil.ToFloat64(m.cycles.WithLabelValues("completed")))
	assertions.Equal(1.0, testutil.ToFloat64(m.dashboards.WithLabelValues("refreshed")))
	assertions.Equal(1.0, testutil.ToFloat64(m.dashboards.WithLabelValues("failed")))
	assertions.Equal(1700000000.0, testutil.ToFloat64(m.lastCycle))
	assertions.Equal(1, testutil.CollectAndCount(m.jobWait))
}

func TestServer_Handler(t *testing.T) {
	var assertions = assert.New(t)
	var m = New()
	m.CycleFinished("completed", time.Now())

	var logger = zerolog.Nop()
	var server = NewServer(m, config.MetricsConfiguration{Port: 0, Timeout: time.Second}, &logger)

	var recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(recorder.Result().Body)
	assertions.NoError(err)
	assertions.Equal(200, recorder.Code)
	assertions.Contains(string(body), `refresher_cycles_total{result="completed"} 1`)
}

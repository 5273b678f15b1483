// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "refresher"

// Metrics holds the refresh counters of one process. It implements refresh.Recorder.
type Metrics struct {
	registry   *prometheus.Registry
	cycles     *prometheus.CounterVec
	dashboards *prometheus.CounterVec
	lastCycle  prometheus.Gauge
	jobWait    prometheus.Histogram
}

func New() *Metrics {
	var m = &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Number of trigger polls by result (idle, completed, aborted).",
		}, []string{"result"}),
		dashboards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_refreshes_total",
			Help:      "Number of dashboard refreshes by status.",
		}, []string{"status"}),
		lastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Time the last refresh cycle finished.",
		}),
		jobWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_wait_seconds",
			Help:      "Time spent waiting for refresh jobs to complete.",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1200, 1800},
		}),
	}

	m.registry.MustRegister(m.cycles, m.dashboards, m.lastCycle, m.jobWait)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) CycleFinished(result string, finishedAt time.Time) {
	m.cycles.WithLabelValues(result).Inc()
	if result != "idle" {
		m.lastCycle.Set(float64(finishedAt.Unix()))
	}
}

func (m *Metrics) DashboardFinished(status string, wait time.Duration) {
	m.dashboards.WithLabelValues(status).Inc()
	if wait > 0 {
		m.jobWait.Observe(wait.Seconds())
	}
}

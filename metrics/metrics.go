// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickly_vote"

// Label value for votes outside any election
const globalElection = "global"

type APIMetrics struct {
	VotesCast       *prometheus.CounterVec
	VotesRejected   *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// Default registers with the global Prometheus registry served at /metrics
var Default = NewAPIMetrics(prometheus.DefaultRegisterer)

// NewAPIMetrics creates and registers all API metrics with reg
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	factory := promauto.With(reg)

	return &APIMetrics{
		VotesCast: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_cast_total",
				Help:      "Total number of committed votes",
			},
			[]string{"election_id"},
		),
		VotesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_rejected_total",
				Help:      "Total number of rejected vote attempts by reason",
			},
			[]string{"reason"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// VoteCast counts a committed vote
func (m *APIMetrics) VoteCast(electionID string) {
	if electionID == "" {
		electionID = globalElection
	}
	m.VotesCast.WithLabelValues(electionID).Inc()
}

// VoteRejected counts a refused vote; reason is the error code
func (m *APIMetrics) VoteRejected(reason string) {
	m.VotesRejected.WithLabelValues(reason).Inc()
}

// Login counts a login attempt as "success" or "failure"
func (m *APIMetrics) Login(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.Logins.WithLabelValues(result).Inc()
}

// ObserveRequest records one request's latency
func (m *APIMetrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

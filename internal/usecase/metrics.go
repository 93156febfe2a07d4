package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for contactSubmissions
const (
	outcomeAccepted      = "accepted"
	outcomeInvalid       = "invalid"
	outcomeInFlight      = "in_flight"
	outcomeNotConfigured = "not_configured"
	outcomeDelivered     = "delivered"
	outcomeFailed        = "failed"
)

var (
	contactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_contact_submissions_total",
		Help: "Contact form submissions by outcome",
	}, []string{"outcome"})

	relayLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "portfolio_contact_relay_latency_seconds",
		Help:    "Duration of email relay calls",
		Buckets: prometheus.DefBuckets,
	})

	activeContactSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portfolio_contact_sessions_active",
		Help: "Page sessions currently holding a contact form",
	})
)

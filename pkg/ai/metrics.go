package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crosscheck",
		Subsystem: "ai",
		Name:      "call_duration_seconds",
		Help:      "Duration of provider completion calls",
	}, []string{"provider"})

	callFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crosscheck",
		Subsystem: "ai",
		Name:      "call_failures_total",
		Help:      "Number of failed provider completion calls",
	}, []string{"provider", "reason"})

	fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crosscheck",
		Subsystem: "ai",
		Name:      "fallback_total",
		Help:      "Number of provider calls degraded to a stub verdict",
	}, []string{"provider", "reason"})
)

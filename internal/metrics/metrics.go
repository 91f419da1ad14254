// Package metrics holds the Prometheus collectors shared by the HTTP API and
// the generation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notegen_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "notegen_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)

	// Generations counts finished generation jobs by final status.
	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notegen_generations_total",
			Help: "Generation jobs by outcome",
		},
		[]string{"status", "phase"},
	)

	GenerationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "notegen_generation_seconds",
			Help: "Time from request to stored document",
		},
	)

	Conversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notegen_pdf_conversions_total",
			Help: "PDF conversion attempts by result",
		},
		[]string{"result"},
	)

	TOCEntries = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notegen_toc_entries",
			Help:    "Table of contents entries per generated document",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)
)

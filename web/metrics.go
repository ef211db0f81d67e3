package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schoolmeal_http_request_duration_seconds",
			Help:    "Duration of page requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"route"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schoolmeal_http_requests_total",
			Help: "Total number of page requests by status code",
		},
		[]string{"route", "code"},
	)
)

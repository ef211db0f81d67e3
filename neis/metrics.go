package neis

import (
	"errors"
	"time"

	"github.com/etnz/schoolmeal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schoolmeal_neis_fetch_duration_seconds",
			Help:    "Duration of meal service calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schoolmeal_neis_fetch_total",
			Help: "Total number of meal service calls by outcome",
		},
		[]string{"outcome"},
	)
)

// Outcome labels of fetchTotal.
const (
	outcomeOK           = "ok"
	outcomeNoData       = "no_data"
	outcomeNetwork      = "network"
	outcomeDecode       = "decode"
	outcomeMissingField = "missing_field"
	outcomeService      = "service"
	outcomeOther        = "other"
)

func outcome(err error) string {
	var serr *ServiceError
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, schoolmeal.ErrNoData):
		return outcomeNoData
	case errors.Is(err, schoolmeal.ErrNetwork):
		return outcomeNetwork
	case errors.Is(err, schoolmeal.ErrDecode):
		return outcomeDecode
	case errors.Is(err, schoolmeal.ErrMissingField):
		return outcomeMissingField
	case errors.As(err, &serr):
		return outcomeService
	default:
		return outcomeOther
	}
}

func observe(start time.Time, err error) {
	fetchDuration.Observe(time.Since(start).Seconds())
	fetchTotal.WithLabelValues(outcome(err)).Inc()
}

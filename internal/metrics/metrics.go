// Package metrics defines prometheus collectors for the API client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal tracks API requests by endpoint family and outcome
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smashcast_api_requests_total",
			Help: "Total Smashcast API requests by endpoint family and status",
		},
		[]string{"endpoint", "status"},
	)

	// APIRequestDuration tracks API request latency in seconds
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smashcast_api_request_duration_seconds",
			Help:    "Smashcast API request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	// AssetFetchesTotal tracks raw media asset downloads by outcome
	AssetFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smashcast_asset_fetches_total",
			Help: "Total raw media asset downloads by status",
		},
		[]string{"status"},
	)
)

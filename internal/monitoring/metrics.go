package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ShipmentsCreated counts shipments and quotes created, by status.
	ShipmentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_shipments_created_total",
			Help: "Total number of shipments and quotes created",
		},
		[]string{"status"},
	)

	// ShipmentsUpdated counts shipment updates.
	ShipmentsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tms_shipments_updated_total",
			Help: "Total number of shipment updates",
		},
	)

	// LaneRatesRecorded counts lane rates written by the recorder, by outcome
	// (recorded, skipped, failed).
	LaneRatesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_lane_rates_recorded_total",
			Help: "Lane rate recorder outcomes",
		},
		[]string{"outcome"},
	)

	// NumberCollisions counts shipment number generation retries caused by
	// suffix collisions.
	NumberCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tms_shipment_number_collisions_total",
			Help: "Total number of shipment number suffix collisions",
		},
	)
)

// Recorder outcome label values.
const (
	OutcomeRecorded = "recorded"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

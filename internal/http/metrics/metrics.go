// Package metrics объявляет счётчики prometheus для операций кассы.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VisitorsCheckedIn количество зарегистрированных посетителей.
	VisitorsCheckedIn = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cashdesk",
		Name:      "visitors_checked_in_total",
		Help:      "Total number of visitors checked in.",
	})

	// VisitorsCheckedOut количество выписанных посетителей.
	VisitorsCheckedOut = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cashdesk",
		Name:      "visitors_checked_out_total",
		Help:      "Total number of visitors checked out.",
	})

	// DischargesRecorded количество изъятий наличных из кассы.
	DischargesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cashdesk",
		Name:      "discharges_recorded_total",
		Help:      "Total number of cash discharges recorded.",
	})

	// ShiftsClosed количество закрытых смен.
	ShiftsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cashdesk",
		Name:      "shifts_closed_total",
		Help:      "Total number of shifts closed and persisted.",
	})

	// VisitDurationSeconds распределение длительности визитов.
	VisitDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cashdesk",
		Name:      "visit_duration_seconds",
		Help:      "Distribution of visit durations in seconds.",
		Buckets:   prometheus.ExponentialBuckets(600, 2, 8),
	})
)

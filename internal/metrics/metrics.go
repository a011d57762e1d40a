package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crimereport_rows_ingested_total",
			Help: "Total incident rows parsed from source datasets",
		},
	)

	RowsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimereport_rows_excluded_total",
			Help: "Rows excluded from a computation, by reason",
		},
		[]string{"reason"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimereport_dataset_fetches_total",
			Help: "Dataset download attempts by scheme and status",
		},
		[]string{"scheme", "status"},
	)

	ViewBuildSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crimereport_view_build_seconds",
			Help:    "Time spent building each derived view",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	FiguresRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crimereport_figures_rendered_total",
			Help: "Chart figures rendered to PNG",
		},
	)
)

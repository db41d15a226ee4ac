package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pagesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notespress",
			Name:      "pages_rendered_total",
			Help:      "Total source pages rasterized from input documents",
		},
	)

	pagesEnhanced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notespress",
			Name:      "pages_enhanced_total",
			Help:      "Total pages run through the enhancement pipeline",
		},
	)

	sheetsComposed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notespress",
			Name:      "sheets_composed_total",
			Help:      "Total compact layout sheets composed",
		},
	)

	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notespress",
			Name:      "exports_total",
			Help:      "Total PDF exports by result (success, error)",
		},
		[]string{"result"},
	)

	stageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notespress",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages (render, enhance, compose, export)",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(pagesRendered, pagesEnhanced, sheetsComposed, exportsTotal, stageLatency)
}

// Handler returns the http.Handler for /metrics.
func Handler() http.Handler { return promhttp.Handler() }

func AddRendered(n int)       { pagesRendered.Add(float64(n)) }
func IncEnhanced()            { pagesEnhanced.Inc() }
func IncSheet()               { sheetsComposed.Inc() }
func IncExport(result string) { exportsTotal.WithLabelValues(result).Inc() }

// ObserveStage records the duration of one pipeline stage.
func ObserveStage(stage string, dur time.Duration) {
	stageLatency.WithLabelValues(stage).Observe(dur.Seconds())
}

// Package prom implements the observability hooks with Prometheus metrics.
//
// Install the hooks before running checks, typically from a long-running
// process such as the report server:
//
//	prom.Install()
//	http.Handle("/metrics", promhttp.Handler())
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/obqo/decycle/pkg/observability"
)

var (
	// ScansTotal counts classpath scans by outcome.
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decycle_scans_total",
			Help: "Total number of classpath scans",
		},
		[]string{"outcome"},
	)

	// ScanClasses tracks the number of classes seen by the last successful
	// scan; failed scans leave it unchanged.
	ScanClasses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "decycle_scan_classes",
			Help: "Classes visited by the most recent successful classpath scan",
		},
	)

	// ScanDuration observes scan durations in seconds.
	ScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "decycle_scan_duration_seconds",
			Help:    "Classpath scan duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ViolationsTotal counts detected violations by constraint.
	ViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decycle_violations_total",
			Help: "Total number of constraint violations detected",
		},
		[]string{"constraint"},
	)

	// ReportsTotal counts written report artifacts by format and outcome.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decycle_reports_total",
			Help: "Total number of report artifacts written",
		},
		[]string{"format", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(ScansTotal)
	prometheus.MustRegister(ScanClasses)
	prometheus.MustRegister(ScanDuration)
	prometheus.MustRegister(ViolationsTotal)
	prometheus.MustRegister(ReportsTotal)
}

// Hooks implements observability.CheckHooks and observability.ReportHooks
// on top of the package metrics.
type Hooks struct{}

// Install registers the Prometheus hooks globally.
func Install() {
	h := &Hooks{}
	observability.SetCheckHooks(h)
	observability.SetReportHooks(h)
}

func (*Hooks) OnScanStart(context.Context, []string) {}

func (*Hooks) OnScanComplete(_ context.Context, classes, _ int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ScansTotal.WithLabelValues(outcome).Inc()
	ScanDuration.Observe(duration.Seconds())
	if err == nil {
		ScanClasses.Set(float64(classes))
	}
}

func (*Hooks) OnConstraintEvaluated(_ context.Context, constraintID string, violations int, _ time.Duration) {
	ViolationsTotal.WithLabelValues(constraintID).Add(float64(violations))
}

func (*Hooks) OnReportWritten(_ context.Context, format string, _ int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ReportsTotal.WithLabelValues(format, outcome).Inc()
}

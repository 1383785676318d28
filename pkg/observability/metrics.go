package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string

	// Registry defaults to the global Prometheus registry.
	Registry *prometheus.Registry
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	var (
		exporterOpts []promexporter.Option
		handler      http.Handler
	)
	if cfg.Registry != nil {
		exporterOpts = append(exporterOpts, promexporter.WithRegisterer(cfg.Registry))
		handler = promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})
	} else {
		handler = promhttp.Handler()
	}

	exporter, err := promexporter.New(exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, handler, nil
}

// AssessmentMetrics records the outcome of every applicant assessment.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	failures    metric.Int64Counter
	scores      metric.Float64Histogram
	activeRules metric.Int64Histogram
	duration    metric.Float64Histogram
}

// NewAssessmentMetrics creates the assessment instruments on the given meter.
func NewAssessmentMetrics(meter metric.Meter) (*AssessmentMetrics, error) {
	assessments, err := meter.Int64Counter("risk.assessments",
		metric.WithDescription("Applicant assessments completed"))
	if err != nil {
		return nil, fmt.Errorf("create assessments counter: %w", err)
	}
	failures, err := meter.Int64Counter("risk.assessment.failures",
		metric.WithDescription("Applicant assessments rejected or failed"))
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}
	scores, err := meter.Float64Histogram("risk.score",
		metric.WithDescription("Defuzzified risk score"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}
	activeRules, err := meter.Int64Histogram("risk.active_rules",
		metric.WithDescription("Rules fired per assessment"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32, 64))
	if err != nil {
		return nil, fmt.Errorf("create active rules histogram: %w", err)
	}
	duration, err := meter.Float64Histogram("risk.assessment.duration",
		metric.WithDescription("Time spent evaluating an assessment"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &AssessmentMetrics{
		assessments: assessments,
		failures:    failures,
		scores:      scores,
		activeRules: activeRules,
		duration:    duration,
	}, nil
}

// RecordAssessment records a completed assessment. A nil receiver is a no-op.
func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, level, decision string, score float64, activeRules int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("risk_level", level),
		attribute.String("decision", decision),
	)
	m.assessments.Add(ctx, 1, attrs)
	m.scores.Record(ctx, score, attrs)
	m.activeRules.Record(ctx, int64(activeRules), attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordFailure counts an assessment that did not complete.
func (m *AssessmentMetrics) RecordFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Package observe provides the observability primitives for Shuddhi:
// OpenTelemetry metrics with a Prometheus exporter bridge so the standard
// /metrics endpoint keeps working.
//
// A [Metrics] value holds all instruments for the process. Tests should use
// [NewMetrics] with their own [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Shuddhi metrics.
const meterName = "github.com/nairkartik/shuddhi"

// Metrics holds all OpenTelemetry metric instruments for the pipeline.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// GenerateDuration tracks end-to-end candidate generation latency.
	GenerateDuration metric.Float64Histogram

	// CandidatesProduced counts candidate strings emitted across all calls.
	CandidatesProduced metric.Int64Counter

	// RuleFailures counts rule stages that panicked and were degraded to a
	// passthrough. Use with attribute.String("rule", ...).
	RuleFailures metric.Int64Counter

	// LexiconSize reports the number of entries in the loaded name lexicon.
	LexiconSize metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// an in-process text pipeline: sub-millisecond on short inputs, a few
// milliseconds with a large lexicon.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// NewMetrics creates a fully initialised [Metrics] using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.GenerateDuration, err = m.Float64Histogram("shuddhi.generate.duration",
		metric.WithDescription("Latency of one candidate generation call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CandidatesProduced, err = m.Int64Counter("shuddhi.candidates.produced",
		metric.WithDescription("Number of candidate strings emitted."),
	); err != nil {
		return nil, err
	}
	if met.RuleFailures, err = m.Int64Counter("shuddhi.rule.failures",
		metric.WithDescription("Rule stages degraded to passthrough after a panic."),
	); err != nil {
		return nil, err
	}
	if met.LexiconSize, err = m.Int64UpDownCounter("shuddhi.lexicon.size",
		metric.WithDescription("Entries in the loaded name lexicon."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

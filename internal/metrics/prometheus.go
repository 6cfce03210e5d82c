package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "code2tutorial"

// PrometheusRecorder implements Recorder on a private registry that is
// written out once per run in the node-exporter textfile format.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runDuration   prom.Histogram
	runOutcome    *prom.CounterVec
	providerCalls *prom.CounterVec
	retries       *prom.CounterVec
	cacheLookups  *prom.CounterVec
}

func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual pipeline stages",
		Buckets:   prom.ExponentialBuckets(0.01, 4, 10),
	}, []string{"stage"})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total run duration",
		Buckets:   prom.ExponentialBuckets(1, 2, 12),
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Runs by final status",
	}, []string{"outcome"})
	pr.providerCalls = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "Provider invocations by result",
	}, []string{"provider", "result"})
	pr.retries = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "provider_retries_total",
		Help:      "Provider retries after transient failures",
	}, []string{"provider"})
	pr.cacheLookups = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Response cache lookups by result",
	}, []string{"result"})
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.runOutcome,
		pr.providerCalls, pr.retries, pr.cacheLookups)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncProviderCall(provider string, success bool) {
	res := "failed"
	if success {
		res = "success"
	}
	p.providerCalls.WithLabelValues(provider, res).Inc()
}

func (p *PrometheusRecorder) IncRetry(provider string) {
	p.retries.WithLabelValues(provider).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(hit bool) {
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}

// WriteTextfile writes the registry to path atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

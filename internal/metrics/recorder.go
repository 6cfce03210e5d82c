// Package metrics counts provider calls, retries, cache lookups and stage
// timings for a run.
package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder receives run observations. NoopRecorder is used when no
// metrics file is configured.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome string) // completed|failed|interrupted
	IncProviderCall(provider string, success bool)
	IncRetry(provider string)
	IncCacheLookup(hit bool)
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) IncProviderCall(string, bool)               {}
func (NoopRecorder) IncRetry(string)                            {}
func (NoopRecorder) IncCacheLookup(bool)                        {}

package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	NoopRecorder
	stageDurations map[string]int
	pageResults    map[ResultLabel]int
	buildOutcomes  map[BuildOutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		pageResults:    map[ResultLabel]int{},
		buildOutcomes:  map[BuildOutcomeLabel]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) { t.stageDurations[stage]++ }
func (t *testRecorder) IncPageResult(result ResultLabel)                  { t.pageResults[result]++ }
func (t *testRecorder) IncBuildOutcome(outcome BuildOutcomeLabel)         { t.buildOutcomes[outcome]++ }

func TestRecorderInterface(t *testing.T) {
	var r Recorder = newTestRecorder()
	r.ObserveStageDuration("layouts", time.Millisecond)
	r.IncPageResult(ResultSuccess)
	r.IncPageResult(ResultSuccess)
	r.IncBuildOutcome(BuildOutcomePartial)
	r.ObserveSetupDuration(time.Millisecond)

	tr := r.(*testRecorder)
	if tr.stageDurations["layouts"] != 1 {
		t.Fatalf("expected one layouts observation, got %d", tr.stageDurations["layouts"])
	}
	if tr.pageResults[ResultSuccess] != 2 {
		t.Fatalf("expected two successes, got %d", tr.pageResults[ResultSuccess])
	}
	if tr.buildOutcomes[BuildOutcomePartial] != 1 {
		t.Fatalf("expected partial outcome")
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("data", time.Second)
	r.ObserveSetupDuration(time.Second)
	r.ObservePageDuration(time.Second)
	r.IncPageResult(ResultFailed)
	r.SetStoreSize("layouts", 3)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(BuildOutcomeFailed)
}

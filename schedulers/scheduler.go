package schedulers

import (
	"context"

	"github.com/injoyai/bar"
	"github.com/nzai/dayk/recorder"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Recorder record one universe record
type Recorder interface {
	Record(context.Context, string) recorder.Outcome
}

// Scheduler define a bounded download scheduler
type Scheduler struct {
	recorder     Recorder
	parallel     int
	sampleLength int
	progress     bool
}

// NewScheduler create download scheduler
func NewScheduler(recorder Recorder, parallel, sampleLength int, progress bool) *Scheduler {
	if parallel <= 0 {
		parallel = 1
	}

	return &Scheduler{
		recorder:     recorder,
		parallel:     parallel,
		sampleLength: sampleLength,
		progress:     progress,
	}
}

// Run record every item with at most parallel workers, outcomes are aggregated in completion order
func (s Scheduler) Run(ctx context.Context, items []string) *RunStats {
	stats := NewRunStats(s.sampleLength)
	if len(items) == 0 {
		return stats
	}

	results := make(chan recorder.Outcome, s.parallel)

	go func() {
		p := pool.New().WithMaxGoroutines(s.parallel)
		for _, item := range items {
			item := item
			p.Go(func() {
				results <- s.recorder.Record(ctx, item)
			})
		}
		p.Wait()
		close(results)
	}()

	step, done := s.progressBar(len(items))
	defer done()

	for outcome := range results {
		stats.Add(outcome)
		step(outcome)

		if outcome.Kind == recorder.KindError {
			zap.L().Debug("record failed",
				zap.String("ticker", outcome.Ticker),
				zap.String("message", outcome.Message))
		}
	}

	return stats
}

// progressBar return progress step and done func, both no-op when progress is disabled
func (s Scheduler) progressBar(total int) (func(recorder.Outcome), func()) {
	if !s.progress {
		return func(recorder.Outcome) {}, func() {}
	}

	b := bar.New(
		bar.WithTotal(int64(total)),
		bar.WithPrefix("[下載進度]"),
		bar.WithFlush(),
	)

	step := func(outcome recorder.Outcome) {
		b.Add(1)
		b.Flush()
	}

	return step, func() { b.Close() }
}

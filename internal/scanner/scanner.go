// Package scanner evaluates the signal pipeline across many symbols in
// parallel. Each evaluation is a pure function of its own immutable bar
// slice — no shared state, no locks — so one worker per pipeline instance
// is safe by construction. Result order is not guaranteed.
package scanner

import (
	"context"
	"log"
	"sync"
	"time"

	"structure-signalsv1/internal/engine"
	"structure-signalsv1/internal/model"
)

// Job is one symbol's bar series to evaluate.
type Job struct {
	Symbol string
	Bars   []model.Bar
}

// Outcome is one finished evaluation.
type Outcome struct {
	Symbol  string
	Bars    int
	Result  engine.Result
	Elapsed time.Duration
	Err     error // input-contract violation; the engine itself never errors
}

// Scanner fans jobs out over a fixed worker pool.
type Scanner struct {
	cfg     engine.Config
	workers int

	// OnEvaluated, if set, is called after each evaluation (from worker
	// goroutines; must be safe for concurrent use). Used for metrics.
	OnEvaluated func(o Outcome)
}

// New creates a scanner. workers <= 0 falls back to 1.
func New(cfg engine.Config, workers int) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{cfg: cfg, workers: workers}
}

// Scan evaluates every job and returns the outcomes in completion order.
// A cancelled context stops feeding new jobs; in-flight evaluations finish.
func (s *Scanner) Scan(ctx context.Context, jobs []Job) []Outcome {
	jobCh := make(chan Job)
	outCh := make(chan Outcome, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				outCh <- s.evaluate(job)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobCh <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]Outcome, 0, len(jobs))
	for o := range outCh {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (s *Scanner) evaluate(job Job) Outcome {
	start := time.Now()
	o := Outcome{Symbol: job.Symbol, Bars: len(job.Bars)}

	if err := model.ValidateSeries(job.Bars); err != nil {
		o.Err = err
		o.Elapsed = time.Since(start)
		log.Printf("[scanner] %s: rejected input: %v", job.Symbol, err)
		if s.OnEvaluated != nil {
			s.OnEvaluated(o)
		}
		return o
	}

	o.Result = engine.Evaluate(job.Bars, s.cfg)
	o.Elapsed = time.Since(start)
	if s.OnEvaluated != nil {
		s.OnEvaluated(o)
	}
	return o
}

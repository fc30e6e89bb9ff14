// Package worker provides a parallel route-segment evaluation pool: the
// orchestrator (C10) fans per-leg midpoint weather sampling out across
// workers instead of walking a route's waypoints serially.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/types"
)

// Evaluator computes the cost and metrics contribution of a single route
// leg. The orchestrator's implementation returns the weather wind factor
// sampled at the leg midpoint.
type Evaluator interface {
	EvaluateSegment(ctx context.Context, start, end types.Coordinate, month int) (cost float64, err error)
}

// Task is one route leg to evaluate, tagged with its position in the
// route so results can be reassembled in order.
type Task struct {
	Index int
	Start types.Coordinate
	End   types.Coordinate
	Month int
}

// Result is the outcome of evaluating one Task.
type Result struct {
	Task    Task
	Cost    float64
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Evaluator  Evaluator
	OnProgress ProgressFunc
}

// Pool evaluates route segments in parallel.
type Pool struct {
	workers    int
	evaluator  Evaluator
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		evaluator:  cfg.Evaluator,
		onProgress: cfg.OnProgress,
	}
}

// Run evaluates every task and returns results in the same order as the
// input slice — segment order matters downstream (cumulative distance and
// fuel depend on it), unlike the teacher's tile pool where result order was
// incidental. The function blocks until all tasks complete or ctx is
// cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				break
			}
		}
		close(taskCh)
	}()

	results := make([]Result, len(tasks))
	seen := 0
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results[result.Task.Index] = result
			seen++

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{Task: task, Err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		cost, err := p.evaluator.EvaluateSegment(ctx, task.Start, task.End, task.Month)
		elapsed := time.Since(start)

		results <- Result{
			Task:    task,
			Cost:    cost,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}

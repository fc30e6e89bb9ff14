package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/types"
)

type mockEvaluator struct {
	delay      time.Duration
	failIndex  map[int]bool
	callCount  atomic.Int32
}

func (m *mockEvaluator) EvaluateSegment(ctx context.Context, start, end types.Coordinate, month int) (float64, error) {
	m.callCount.Add(1)

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(m.delay):
	}

	return 1.0, nil
}

func tasksOf(n int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{
			Index: i,
			Start: types.Coordinate{Lat: float64(i), Lon: 0},
			End:   types.Coordinate{Lat: float64(i + 1), Lon: 0},
			Month: 1,
		}
	}
	return tasks
}

func TestPoolBasicExecution(t *testing.T) {
	ev := &mockEvaluator{delay: 10 * time.Millisecond}
	pool := New(Config{Workers: 2, Evaluator: ev})

	results := pool.Run(context.Background(), tasksOf(3))

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("unexpected error for task %d: %v", i, r.Err)
		}
	}
	if ev.callCount.Load() != 3 {
		t.Errorf("expected 3 evaluator calls, got %d", ev.callCount.Load())
	}
}

func TestPoolPreservesOrder(t *testing.T) {
	ev := &mockEvaluator{delay: time.Millisecond}
	pool := New(Config{Workers: 4, Evaluator: ev})

	results := pool.Run(context.Background(), tasksOf(8))
	for i, r := range results {
		if r.Task.Index != i {
			t.Errorf("result %d has task index %d, results must stay in segment order", i, r.Task.Index)
		}
	}
}

func TestPoolParallelism(t *testing.T) {
	ev := &mockEvaluator{delay: 50 * time.Millisecond}
	pool := New(Config{Workers: 4, Evaluator: ev})

	start := time.Now()
	results := pool.Run(context.Background(), tasksOf(8))
	elapsed := time.Since(start)

	if elapsed > 200*time.Millisecond {
		t.Errorf("expected ~100ms parallel execution, took %v", elapsed)
	}
	if len(results) != 8 {
		t.Errorf("expected 8 results, got %d", len(results))
	}
}

func TestPoolCancellation(t *testing.T) {
	ev := &mockEvaluator{delay: 100 * time.Millisecond}
	pool := New(Config{Workers: 2, Evaluator: ev})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, tasksOf(10))
	elapsed := time.Since(start)

	if elapsed > 300*time.Millisecond {
		t.Errorf("expected early cancellation, took %v", elapsed)
	}

	var cancelled int
	for _, r := range results {
		if r.Err != nil && errors.Is(r.Err, context.Canceled) {
			cancelled++
		}
	}
	t.Logf("completed with %d cancelled of %d results in %v", cancelled, len(results), elapsed)
}

func TestPoolProgressCallback(t *testing.T) {
	ev := &mockEvaluator{delay: 10 * time.Millisecond}

	var progressCalls atomic.Int32
	pool := New(Config{
		Workers:   2,
		Evaluator: ev,
		OnProgress: func(completed, total, failed int) {
			progressCalls.Add(1)
		},
	})

	pool.Run(context.Background(), tasksOf(5))

	if progressCalls.Load() != 5 {
		t.Errorf("expected 5 progress callbacks, got %d", progressCalls.Load())
	}
}

package orchestrator

import (
	"context"
	"testing"
	"time"
)

type blockingRecalculator struct {
	started     chan struct{}
	release     chan struct{}
	calls       int
	hadDeadline bool
}

func (b *blockingRecalculator) RecalculateAllBadges(ctx context.Context) Summary {
	b.calls++
	_, b.hadDeadline = ctx.Deadline()
	if b.started != nil {
		b.started <- struct{}{}
		<-b.release
	}
	return Summary{Success: true}
}

func TestScheduler_RunOnceSkipsWhileRunning(t *testing.T) {
	rec := &blockingRecalculator{started: make(chan struct{}), release: make(chan struct{})}
	s := NewScheduler(rec, time.Hour, time.Minute)

	done := make(chan bool)
	go func() {
		_, ran := s.RunOnce(context.Background())
		done <- ran
	}()
	<-rec.started

	if _, ran := s.RunOnce(context.Background()); ran {
		t.Errorf("RunOnce() ran while a run was in flight")
	}

	close(rec.release)
	if ran := <-done; !ran {
		t.Errorf("first RunOnce() did not run")
	}
	if !rec.hadDeadline {
		t.Errorf("run context has no deadline")
	}

	rec.started = nil
	sum, ran := s.RunOnce(context.Background())
	if !ran || !sum.Success {
		t.Errorf("RunOnce() after release = %+v, %v", sum, ran)
	}
	if rec.calls != 2 {
		t.Errorf("calls = %d, want 2", rec.calls)
	}
}

func TestScheduler_StartTicks(t *testing.T) {
	rec := &countingRecalculator{ran: make(chan struct{}, 1)}
	s := NewScheduler(rec, 10*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case <-rec.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never ran")
	}
}

type countingRecalculator struct {
	ran chan struct{}
}

func (c *countingRecalculator) RecalculateAllBadges(context.Context) Summary {
	select {
	case c.ran <- struct{}{}:
	default:
	}
	return Summary{Success: true}
}

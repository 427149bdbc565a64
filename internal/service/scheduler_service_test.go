package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleInterval_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	s := NewSchedulerService(time.UTC)
	if _, err := s.ScheduleInterval(0, func() {}); err == nil {
		t.Fatal("ScheduleInterval(0) error = nil")
	}
}

func TestScheduler_RunsAndStops(t *testing.T) {
	t.Parallel()

	s := NewSchedulerService(time.UTC)
	var runs atomic.Int32
	if _, err := s.ScheduleInterval(time.Second, func() { runs.Add(1) }); err != nil {
		t.Fatalf("ScheduleInterval() error = %v", err)
	}

	s.Start()
	deadline := time.Now().Add(5 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	s.Stop()

	if runs.Load() == 0 {
		t.Fatal("job never ran")
	}
	after := runs.Load()
	time.Sleep(1500 * time.Millisecond)
	if runs.Load() != after {
		t.Error("job ran after Stop")
	}
}

func TestScheduler_SkipsWhileBusyAndStopWaits(t *testing.T) {
	t.Parallel()

	s := NewSchedulerService(time.UTC)
	var (
		running, maxRunning, starts, finished atomic.Int32
		started                               = make(chan struct{}, 1)
	)
	job := func() {
		n := running.Add(1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		starts.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(2500 * time.Millisecond)
		finished.Add(1)
		running.Add(-1)
	}
	if _, err := s.ScheduleInterval(time.Second, job); err != nil {
		t.Fatalf("ScheduleInterval() error = %v", err)
	}

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		s.Stop()
		t.Fatal("job never started")
	}

	// Let at least two more ticks come due while the first run is in flight.
	time.Sleep(2 * time.Second)
	if got := starts.Load(); got != 1 {
		t.Errorf("%d runs started while the first was busy, want 1", got)
	}

	s.Stop()
	if running.Load() != 0 || finished.Load() != starts.Load() {
		t.Errorf("Stop returned with %d runs in flight (%d started, %d finished)",
			running.Load(), starts.Load(), finished.Load())
	}
	if got := maxRunning.Load(); got != 1 {
		t.Errorf("max concurrent runs = %d, want 1", got)
	}
}

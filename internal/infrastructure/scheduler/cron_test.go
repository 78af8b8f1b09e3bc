package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestCronSchedulerRejectsBadSpec(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("not a cron", time.UTC, nil)
	if err := s.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatal("expected error for invalid expression")
	}
	if err := s.Start(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil job")
	}
}

func TestCronSchedulerFiresJob(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*3600+1800)
	s := NewCronScheduler("@every 1s", loc, nil)

	fired := make(chan time.Time, 4)
	if err := s.Start(context.Background(), func(at time.Time) {
		select {
		case fired <- at:
		default:
		}
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case at := <-fired:
		if at.Location() != loc {
			t.Fatalf("trigger time not in scheduler location: %v", at.Location())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("job did not fire")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

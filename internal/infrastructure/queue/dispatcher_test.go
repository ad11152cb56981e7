package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type collectingProcessor struct {
	mu     sync.Mutex
	byUser map[string][]string // user_id -> labels in processing order
	done   chan struct{}
	want   int
	seen   int
}

func newCollectingProcessor(want int) *collectingProcessor {
	return &collectingProcessor{
		byUser: make(map[string][]string),
		done:   make(chan struct{}),
		want:   want,
	}
}

func (p *collectingProcessor) ProcessAlert(_ context.Context, job ports.AlertJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byUser[job.UserID] = append(p.byUser[job.UserID], job.Label)
	p.seen++
	if p.seen == p.want {
		close(p.done)
	}
	return nil
}

func (p *collectingProcessor) wait(t *testing.T) {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(5 * time.Second):
		p.mu.Lock()
		defer p.mu.Unlock()
		t.Fatalf("timed out: processed %d of %d jobs", p.seen, p.want)
	}
}

func TestDispatcher_ProcessesAllJobs(t *testing.T) {
	const jobCount = 50
	processor := newCollectingProcessor(jobCount)
	d := NewDispatcher(4, processor, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < jobCount; i++ {
		d.Enqueue(ports.AlertJob{
			HeatWaveID: "wave-1",
			UserID:     fmt.Sprintf("user-%d", i),
			Label:      fmt.Sprintf("alert-%d", i),
		})
	}
	processor.wait(t)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	if len(processor.byUser) != jobCount {
		t.Fatalf("expected %d users, got %d", jobCount, len(processor.byUser))
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	const perUser = 20
	users := []string{"user-a", "user-b", "user-c"}
	processor := newCollectingProcessor(perUser * len(users))
	d := NewDispatcher(4, processor, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	var jobs []ports.AlertJob
	for i := 0; i < perUser; i++ {
		for _, u := range users {
			jobs = append(jobs, ports.AlertJob{
				HeatWaveID: fmt.Sprintf("wave-%d", i),
				UserID:     u,
				Label:      fmt.Sprintf("seq-%03d", i),
			})
		}
	}
	d.EnqueueBatch(jobs)
	processor.wait(t)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	for _, u := range users {
		labels := processor.byUser[u]
		if len(labels) != perUser {
			t.Fatalf("user %s: expected %d jobs, got %d", u, perUser, len(labels))
		}
		for i, label := range labels {
			want := fmt.Sprintf("seq-%03d", i)
			if label != want {
				t.Fatalf("user %s: job %d out of order: got %s, want %s", u, i, label, want)
			}
		}
	}
}

func TestDispatcher_ShardDeterminism(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	for _, userID := range []string{"user-1", "user-2", "", "a-much-longer-user-identifier"} {
		first := d.shardIndex(userID)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(userID); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", userID, first, got)
			}
		}
		if first < 0 || first >= 8 {
			t.Fatalf("shard for %q out of range: %d", userID, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

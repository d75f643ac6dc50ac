package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/core/ports"
)

type recordingService struct {
	mu   sync.Mutex
	seen map[string][]string
	err  error
	done chan struct{}
}

func (s *recordingService) Record(_ context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	s.seen[in.Username] = append(s.seen[in.Username], in.Action)
	s.mu.Unlock()
	s.done <- struct{}{}
	return s.err
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	svc := &recordingService{seen: make(map[string][]string), done: make(chan struct{}, 16)}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	inputs := []ports.ActivityInput{
		{Username: "ana", Action: "login"},
		{Username: "ben", Action: "login"},
		{Username: "ana", Action: "idle"},
		{Username: "ana", Action: "logout"},
		{Username: "ben", Action: "logout"},
	}
	for _, in := range inputs {
		if err := d.Enqueue(ctx, in); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	for range inputs {
		select {
		case <-svc.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for workers")
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if got := svc.seen["ana"]; len(got) != 3 || got[0] != "login" || got[1] != "idle" || got[2] != "logout" {
		t.Fatalf("unexpected order for ana: %v", got)
	}
	if got := svc.seen["ben"]; len(got) != 2 || got[0] != "login" || got[1] != "logout" {
		t.Fatalf("unexpected order for ben: %v", got)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("ana")
	for i := 0; i < 10; i++ {
		if d.shardIndex("ana") != first {
			t.Fatal("shard index changed between calls")
		}
	}
}

func TestDispatcher_WorkerErrorDoesNotStop(t *testing.T) {
	svc := &recordingService{seen: make(map[string][]string), done: make(chan struct{}, 4), err: errors.New("mongo down")}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	_ = d.Enqueue(ctx, ports.ActivityInput{Username: "ana", Action: "a"})
	_ = d.Enqueue(ctx, ports.ActivityInput{Username: "ana", Action: "b"})
	for i := 0; i < 2; i++ {
		select {
		case <-svc.done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after an error")
		}
	}
}

func TestDispatcher_EnqueueHonoursContext(t *testing.T) {
	d := NewDispatcher(1, nil, zerolog.Nop())
	for i := 0; i < channelBuffer; i++ {
		d.workers[0] <- ports.ActivityInput{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Enqueue(ctx, ports.ActivityInput{Username: "ana"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package sender

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherRunsQueuedJobs(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 8, Workers: 2})

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		err := d.Enqueue(context.Background(), "send", func() error {
			ran.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	d.Close()

	if got := ran.Load(); got != 5 {
		t.Fatalf("ran = %d, want 5", got)
	}
}

func TestDispatcherCountsFailedJobs(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1, MaxRetries: 0})

	if err := d.Enqueue(context.Background(), "send", func() error {
		return errors.New("boom")
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Close()

	if got := d.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	d.Close()
	d.Close() // idempotent

	err := d.Enqueue(context.Background(), "send", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("err = %v, want ErrQueueClosed", err)
	}
}

func TestEnqueueFull(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	defer d.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	_ = d.Enqueue(context.Background(), "send", func() error {
		close(started)
		<-block
		return nil
	})
	<-started

	// The single worker is held; fill the buffer, then overflow it.
	_ = d.Enqueue(context.Background(), "send", func() error { return nil })
	err := d.Enqueue(context.Background(), "send", func() error { return nil })
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	close(block)
}

func TestEnqueueDuringClose(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 64, Workers: 4})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				err := d.Enqueue(context.Background(), "send", func() error { return nil })
				if errors.Is(err, ErrQueueClosed) {
					return
				}
			}
		}()
	}
	time.Sleep(time.Millisecond)
	d.Close()
	wg.Wait()
}

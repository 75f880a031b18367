package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spigell/hh-gateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWarmerRunsSubmittedTasks(t *testing.T) {
	w := service.NewWarmer(2, 8, zap.NewNop())
	defer w.Stop()

	var ran int32
	done := make(chan struct{})

	ok := w.Submit("task", func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		close(done)
		return nil
	})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&ran))
}

func TestWarmerDropsWhenQueueFull(t *testing.T) {
	w := service.NewWarmer(1, 1, zap.NewNop())
	defer w.Stop()

	block := make(chan struct{})
	defer close(block)

	// First task occupies the single worker, second fills the queue.
	require.True(t, w.Submit("blocker", func(context.Context) error {
		<-block
		return nil
	}))

	// The worker may or may not have picked up the blocker yet, so fill
	// until the queue rejects.
	deadline := time.Now().Add(time.Second)
	for w.Submit("filler", func(context.Context) error { return nil }) {
		if time.Now().After(deadline) {
			t.Fatal("queue never filled up")
		}
	}

	assert.False(t, w.Submit("dropped", func(context.Context) error { return nil }))
}

func TestWarmerSwallowsTaskErrors(t *testing.T) {
	w := service.NewWarmer(1, 4, zap.NewNop())

	done := make(chan struct{})
	require.True(t, w.Submit("failing", func(context.Context) error {
		close(done)
		return errors.New("boom")
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}

	// Stop waits for in-flight tasks and must not panic on task failure.
	w.Stop()
}

func TestWarmerRejectsAfterStop(t *testing.T) {
	w := service.NewWarmer(1, 4, zap.NewNop())
	w.Stop()

	assert.False(t, w.Submit("late", func(context.Context) error { return nil }))

	// Stop is idempotent.
	w.Stop()
}

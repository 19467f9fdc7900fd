package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcherValidation(t *testing.T) {
	_, err := NewWatcher(nil, time.Minute, nil)
	assert.ErrorContains(t, err, "dispatcher")

	d := newTestDispatcher(t, newFakeMailbox(), newFakeSender())
	w, err := NewWatcher(d, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWatchInterval, w.interval)
}

func TestWatcherRunsImmediatelyThenOnTicks(t *testing.T) {
	mailbox := newFakeMailbox(
		&MessageDetail{Ref: "m1", Subject: "hello"},
	)
	sender := newFakeSender()
	d := newTestDispatcher(t, mailbox, sender)

	w, err := NewWatcher(d, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	require.NoError(t, w.Run(ctx))

	// One immediate run plus at least one tick. Every run re-delivers
	// because the fake keeps the message listed.
	assert.GreaterOrEqual(t, sender.attempts, 2)
}

func TestWatcherSurvivesRunErrors(t *testing.T) {
	mailbox := newFakeMailbox()
	mailbox.listErr = errors.New("mailbox down")
	d := newTestDispatcher(t, mailbox, newFakeSender())

	w, err := NewWatcher(d, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	// Run errors are logged, not returned; cancellation ends cleanly.
	assert.NoError(t, w.Run(ctx))
}

func TestWatcherStopsOnCancel(t *testing.T) {
	d := newTestDispatcher(t, newFakeMailbox(), newFakeSender())
	w, err := NewWatcher(d, time.Hour, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

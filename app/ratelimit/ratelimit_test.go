package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateAcquireImmediateWhenIdle(t *testing.T) {
	gate := NewGate(50 * time.Millisecond)

	start := time.Now()
	waited, err := gate.Acquire(context.Background())
	require.NoError(t, err)

	assert.Zero(t, waited)
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestGateAcquireDelaysWithinWindow(t *testing.T) {
	const interval = 60 * time.Millisecond
	gate := NewGate(interval)

	_, err := gate.Acquire(context.Background())
	require.NoError(t, err)
	gate.Mark()

	start := time.Now()
	waited, err := gate.Acquire(context.Background())
	require.NoError(t, err)
	elapsed := time.Since(start)

	// The second acquire must cover whatever remained of the window.
	assert.Greater(t, waited, time.Duration(0))
	assert.GreaterOrEqual(t, elapsed, interval-10*time.Millisecond)
}

func TestGateMarkRestartsWindow(t *testing.T) {
	const interval = 40 * time.Millisecond
	gate := NewGate(interval)

	gate.Mark()
	time.Sleep(interval)

	start := time.Now()
	waited, err := gate.Acquire(context.Background())
	require.NoError(t, err)

	assert.Zero(t, waited)
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestGateAcquireHonorsContextCancellation(t *testing.T) {
	gate := NewGate(5 * time.Second)
	gate.Mark()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gate.Acquire(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

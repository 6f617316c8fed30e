package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// flakyBus fails the first failures publishes, then succeeds
type flakyBus struct {
	failures int32
	calls    atomic.Int32
}

func (b *flakyBus) Publish(context.Context, Event) error {
	if n := b.calls.Add(1); n <= b.failures {
		return errors.New("subscriber unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func newPublisher(t *testing.T, bus Bus, maxRetries int, delay time.Duration) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	p, err := NewResilientPublisher(bus, maxRetries, delay, path)
	require.NoError(t, err)
	return p, path
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func creditEvent() Event {
	return NewTokensCreditedEvent(domain.ScanSession{ID: "s1", PlayerID: "p1", BusinessID: "b1", TokensCredited: 5}, 5)
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	bus := &flakyBus{}
	p, path := newPublisher(t, bus, 3, time.Millisecond)

	p.PublishWithRetry(t.Context(), creditEvent())
	require.NoError(t, p.Shutdown(t.Context()))

	assert.Equal(t, int32(1), bus.calls.Load())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	bus := &flakyBus{failures: 2}
	p, path := newPublisher(t, bus, 5, time.Millisecond)

	p.PublishWithRetry(t.Context(), creditEvent())

	require.Eventually(t, func() bool { return bus.calls.Load() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, p.Shutdown(t.Context()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedRetriesAreDeadLettered(t *testing.T) {
	bus := &flakyBus{failures: 100}
	p, path := newPublisher(t, bus, 2, time.Millisecond)

	p.PublishWithRetry(t.Context(), creditEvent())

	// one direct publish plus two retries
	require.Eventually(t, func() bool { return bus.calls.Load() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, p.Shutdown(t.Context()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, TokensCredited, entries[0].Event.Type)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, "subscriber unavailable", entries[0].LastError)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
}

func TestResilientPublisher_ShutdownRetriesImmediately(t *testing.T) {
	bus := &flakyBus{failures: 1}
	p, path := newPublisher(t, bus, 5, time.Hour)

	p.PublishWithRetry(t.Context(), creditEvent())

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	assert.Equal(t, int32(2), bus.calls.Load())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ShutdownIsIdempotent(t *testing.T) {
	p, _ := newPublisher(t, &flakyBus{}, 1, time.Millisecond)

	require.NoError(t, p.Shutdown(t.Context()))
	// the dead-letter file is already closed
	assert.Error(t, p.Shutdown(t.Context()))
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	bus := NewMemoryBus()
	p, _ := newPublisher(t, bus, 1, time.Millisecond)
	defer func() { _ = p.Shutdown(t.Context()) }()

	var got Event
	p.Subscribe(TokensCredited, func(_ context.Context, e Event) error {
		got = e
		return nil
	})
	p.PublishWithRetry(t.Context(), creditEvent())

	assert.Equal(t, TokensCredited, got.Type)
}

func TestNewResilientPublisher_BadDeadLetterPath(t *testing.T) {
	_, err := NewResilientPublisher(&flakyBus{}, 1, time.Millisecond, filepath.Join(t.TempDir(), "missing", "dl.jsonl"))
	assert.Error(t, err)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}

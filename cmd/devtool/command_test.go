package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/event"
)

type stubCommand struct {
	gotArgs []string
	err     error
}

func (s *stubCommand) Name() string        { return "stub" }
func (s *stubCommand) Description() string { return "does nothing" }
func (s *stubCommand) Run(_ context.Context, args []string) error {
	s.gotArgs = args
	return s.err
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevColor := out, useColor
	out, useColor = &buf, false
	t.Cleanup(func() { out, useColor = prevOut, prevColor })
	return &buf
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry(&SeedCommand{}, &MigrateCommand{}, &HealthCheckCommand{})

	cmds := r.List()
	require.Len(t, cmds, 3)
	assert.Equal(t, "health-check", cmds[0].Name())
	assert.Equal(t, "migrate", cmds[1].Name())
	assert.Equal(t, "seed", cmds[2].Name())

	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestRegistry_Run(t *testing.T) {
	buf := captureOutput(t)
	stub := &stubCommand{}
	r := NewRegistry(stub, &SeedCommand{})

	require.NoError(t, r.Run(t.Context(), []string{"stub", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, stub.gotArgs)

	stub.err = errors.New("boom")
	err := r.Run(t.Context(), []string{"stub"})
	require.Error(t, err)
	assert.Equal(t, "stub: boom", err.Error())

	assert.ErrorIs(t, r.Run(t.Context(), nil), errUsage)
	assert.ErrorIs(t, r.Run(t.Context(), []string{"nope"}), errUsage)
	assert.Contains(t, buf.String(), "Unknown command: nope")

	buf.Reset()
	require.NoError(t, r.Run(t.Context(), []string{"help"}))
	assert.Contains(t, buf.String(), "  seed  Seed a demo business")
	assert.Contains(t, buf.String(), "  stub  does nothing")
}

func TestDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "h")
	t.Setenv("DB_PORT", "1")
	t.Setenv("DB_NAME", "n")
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", dbURL())

	t.Setenv("DB_URL", "postgres://override")
	assert.Equal(t, "postgres://override", dbURL())
}

func TestHealthCheck(t *testing.T) {
	ready := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/readyz" && !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	captureOutput(t)
	cmd := &HealthCheckCommand{}
	assert.NoError(t, cmd.Run(t.Context(), []string{srv.URL + "/"}))

	ready = false
	assert.Error(t, cmd.Run(t.Context(), []string{srv.URL}))
}

func TestDriftReporter_CountsDrift(t *testing.T) {
	buf := captureOutput(t)
	d := &driftReporter{}
	d.PublishWithRetry(context.Background(), event.NewLedgerDriftEvent(domain.Reconciliation{
		PlayerID: "p1", CachedBalance: 5, LedgerBalance: 3,
	}))
	d.PublishWithRetry(context.Background(), event.NewMaintenanceEvent(event.SessionsExpired, time.Now(), 1))
	assert.Equal(t, int64(1), d.found.Load())
	assert.Contains(t, buf.String(), "player p1: cached 5, ledger 3")
}

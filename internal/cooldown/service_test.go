package cooldown_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/cooldown"
	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/repository"
	"github.com/osse101/SpinVault_Go/internal/testing/mocks"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *mocks.Cooldown, devMode bool) cooldown.Service {
	return cooldown.NewService(repo, repository.NoopTxManager{}, cooldown.Config{
		DevMode:      devMode,
		SpinCooldown: 30 * time.Second,
		ScanCooldown: 5 * time.Minute,
		Now:          func() time.Time { return fixedNow },
	})
}

// TestErrOnCooldown_Error tests the error message formatting
func TestErrOnCooldown_Error(t *testing.T) {
	tests := []struct {
		name          string
		err           cooldown.ErrOnCooldown
		wantSubstring string
	}{
		{
			name:          "minutes and seconds",
			err:           cooldown.ErrOnCooldown{Action: "scan:b1", Remaining: 2*time.Minute + 30*time.Second},
			wantSubstring: fmt.Sprintf(cooldown.ErrFmtCooldownWithMinutes, "scan", 2, 30),
		},
		{
			name:          "seconds only",
			err:           cooldown.ErrOnCooldown{Action: "spin:b1", Remaining: 45 * time.Second},
			wantSubstring: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, "spin", 45),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.wantSubstring)
		})
	}
}

// TestErrOnCooldown_Is tests the errors.Is() compatibility
func TestErrOnCooldown_Is(t *testing.T) {
	err := cooldown.ErrOnCooldown{Action: "test", Remaining: time.Minute}

	assert.True(t, errors.Is(err, cooldown.ErrOnCooldown{}))
	assert.True(t, errors.Is(err, domain.ErrCooldownActive))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), domain.ErrCooldownActive))
	assert.False(t, errors.Is(err, errors.New("other error")))
}

func TestCheckCooldown(t *testing.T) {
	repo := new(mocks.Cooldown)
	last := fixedNow.Add(-10 * time.Second)
	repo.On("GetLastUsed", mock.Anything, "p1", "spin:b1").Return(&last, nil)
	repo.On("GetLastUsed", mock.Anything, "p2", "spin:b1").Return(nil, nil)

	svc := newService(repo, false)

	onCooldown, remaining, err := svc.CheckCooldown(context.Background(), "p1", "spin:b1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, onCooldown)
	assert.Equal(t, 20*time.Second, remaining)

	onCooldown, _, err = svc.CheckCooldown(context.Background(), "p2", "spin:b1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, onCooldown)
}

func TestEnforceCooldown_RunsAndMarks(t *testing.T) {
	repo := new(mocks.Cooldown)
	repo.On("GetLastUsed", mock.Anything, "p1", "scan:b1").Return(nil, nil)
	repo.On("LockAction", mock.Anything, "p1", "scan:b1").Return(nil)
	repo.On("UpsertLastUsed", mock.Anything, "p1", "scan:b1", fixedNow).Return(nil)

	called := false
	err := newService(repo, false).EnforceCooldown(context.Background(), "p1", "scan:b1", 5*time.Minute,
		func(ctx context.Context) error {
			called = true
			return nil
		})

	require.NoError(t, err)
	assert.True(t, called)
	repo.AssertExpectations(t)
}

func TestEnforceCooldown_RejectsWhenOnCooldown(t *testing.T) {
	repo := new(mocks.Cooldown)
	last := fixedNow.Add(-time.Minute)
	repo.On("GetLastUsed", mock.Anything, "p1", "scan:b1").Return(&last, nil)

	err := newService(repo, false).EnforceCooldown(context.Background(), "p1", "scan:b1", 5*time.Minute,
		func(ctx context.Context) error {
			t.Fatal("fn must not run while on cooldown")
			return nil
		})

	require.ErrorIs(t, err, domain.ErrCooldownActive)
	var onCooldown cooldown.ErrOnCooldown
	require.ErrorAs(t, err, &onCooldown)
	assert.Equal(t, 4*time.Minute, onCooldown.Remaining)
	repo.AssertNotCalled(t, "UpsertLastUsed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnforceCooldown_RecheckUnderLock(t *testing.T) {
	repo := new(mocks.Cooldown)
	last := fixedNow.Add(-time.Second)
	repo.On("GetLastUsed", mock.Anything, "p1", "scan:b1").Return(nil, nil).Once()
	repo.On("LockAction", mock.Anything, "p1", "scan:b1").Return(nil)
	repo.On("GetLastUsed", mock.Anything, "p1", "scan:b1").Return(&last, nil).Once()

	err := newService(repo, false).EnforceCooldown(context.Background(), "p1", "scan:b1", 5*time.Minute,
		func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, domain.ErrCooldownActive)
	repo.AssertNotCalled(t, "UpsertLastUsed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnforceCooldown_FnErrorSkipsMark(t *testing.T) {
	repo := new(mocks.Cooldown)
	repo.On("GetLastUsed", mock.Anything, "p1", "scan:b1").Return(nil, nil)
	repo.On("LockAction", mock.Anything, "p1", "scan:b1").Return(nil)
	boom := errors.New("boom")

	err := newService(repo, false).EnforceCooldown(context.Background(), "p1", "scan:b1", 5*time.Minute,
		func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "UpsertLastUsed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDevModeBypass(t *testing.T) {
	repo := new(mocks.Cooldown)
	repo.On("UpsertLastUsed", mock.Anything, "p1", "spin:b1", fixedNow).Return(nil)

	svc := newService(repo, true)

	onCooldown, _, err := svc.CheckCooldown(context.Background(), "p1", "spin:b1", time.Hour)
	require.NoError(t, err)
	assert.False(t, onCooldown)
	assert.Zero(t, svc.Duration("spin:b1", nil))

	err = svc.EnforceCooldown(context.Background(), "p1", "spin:b1", time.Hour,
		func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetLastUsed", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LockAction", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetAndMarkUsed(t *testing.T) {
	repo := new(mocks.Cooldown)
	repo.On("DeleteCooldown", mock.Anything, "p1", "spin:b1").Return(nil)
	repo.On("UpsertLastUsed", mock.Anything, "p1", "spin:b1", fixedNow).Return(errors.New("db down"))

	svc := newService(repo, false)
	require.NoError(t, svc.ResetCooldown(context.Background(), "p1", "spin:b1"))
	assert.Error(t, svc.MarkUsed(context.Background(), "p1", "spin:b1", fixedNow))
}

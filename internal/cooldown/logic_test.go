package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	duration := 5 * time.Minute

	tests := []struct {
		name           string
		lastUsed       *time.Time
		wantOnCooldown bool
		wantRemaining  time.Duration
	}{
		{
			name:           "nil lastUsed",
			lastUsed:       nil,
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "active cooldown",
			lastUsed:       ptr(now.Add(-2 * time.Minute)),
			wantOnCooldown: true,
			wantRemaining:  3 * time.Minute,
		},
		{
			name:           "expired cooldown",
			lastUsed:       ptr(now.Add(-6 * time.Minute)),
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "exact boundary",
			lastUsed:       ptr(now.Add(-5 * time.Minute)),
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "just before expiry",
			lastUsed:       ptr(now.Add(-5*time.Minute + 1*time.Second)),
			wantOnCooldown: true,
			wantRemaining:  1 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOnCooldown, gotRemaining := Remaining(now, tt.lastUsed, duration)
			assert.Equal(t, tt.wantOnCooldown, gotOnCooldown)
			assert.Equal(t, tt.wantRemaining, gotRemaining)
		})
	}
}

func TestGetCooldownDuration(t *testing.T) {
	cfg := Config{SpinCooldown: 30 * time.Second, ScanCooldown: 5 * time.Minute}
	override := 90
	withOverride := &domain.Business{ID: "b1", CooldownSeconds: &override}

	assert.Equal(t, 30*time.Second, cfg.GetCooldownDuration(domain.SpinActionKey("b1"), nil))
	assert.Equal(t, 5*time.Minute, cfg.GetCooldownDuration(domain.ScanActionKey("b1"), &domain.Business{ID: "b1"}))
	assert.Equal(t, 90*time.Second, cfg.GetCooldownDuration(domain.SpinActionKey("b1"), withOverride))
	assert.Equal(t, 90*time.Second, cfg.GetCooldownDuration(domain.ScanActionKey("b1"), withOverride))
	assert.Equal(t, DefaultCooldownDuration, cfg.GetCooldownDuration("other", nil))
}

func TestActionVerb(t *testing.T) {
	assert.Equal(t, "spin", actionVerb("spin:abc"))
	assert.Equal(t, "scan", actionVerb("scan:abc"))
	assert.Equal(t, "redeem", actionVerb("redeem"))
}

func ptr(t time.Time) *time.Time {
	return &t
}

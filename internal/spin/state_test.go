package spin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.SpinState
		want     bool
	}{
		{domain.SpinStatePending, domain.SpinStateValidated, true},
		{domain.SpinStatePending, domain.SpinStateRejected, true},
		{domain.SpinStatePending, domain.SpinStateDrawn, false},
		{domain.SpinStateValidated, domain.SpinStateDrawn, true},
		{domain.SpinStateDrawn, domain.SpinStateCommitted, true},
		{domain.SpinStateDrawn, domain.SpinStateRejected, true},
		{domain.SpinStateCommitted, domain.SpinStateRejected, false},
		{domain.SpinStateRejected, domain.SpinStatePending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestMachine_IgnoresIllegalSteps(t *testing.T) {
	m := newMachine("s1:0", 1)
	ctx := context.Background()

	m.to(ctx, domain.SpinStateCommitted)
	assert.Equal(t, domain.SpinStatePending, m.state)

	m.to(ctx, domain.SpinStateValidated)
	m.to(ctx, domain.SpinStateDrawn)
	m.to(ctx, domain.SpinStateCommitted)
	assert.Equal(t, domain.SpinStateCommitted, m.state)
}

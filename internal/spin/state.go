package spin

import (
	"context"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/logger"
)

var transitions = map[domain.SpinState][]domain.SpinState{
	domain.SpinStatePending:   {domain.SpinStateValidated, domain.SpinStateRejected},
	domain.SpinStateValidated: {domain.SpinStateDrawn, domain.SpinStateRejected},
	domain.SpinStateDrawn:     {domain.SpinStateCommitted, domain.SpinStateRejected},
}

// CanTransition reports whether from -> to is a legal step.
// Committed and Rejected are terminal.
func CanTransition(from, to domain.SpinState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// machine tracks one spin attempt through its states and logs each step
type machine struct {
	state   domain.SpinState
	key     string
	attempt int
}

func newMachine(key string, attempt int) *machine {
	return &machine{state: domain.SpinStatePending, key: key, attempt: attempt}
}

func (m *machine) to(ctx context.Context, next domain.SpinState) {
	log := logger.FromContext(ctx)
	if !CanTransition(m.state, next) {
		log.Error(LogMsgInvalidTransition, "from", m.state, "to", next, "idempotency_key", m.key)
		return
	}
	log.Debug(LogMsgStateTransition,
		"from", m.state, "to", next, "idempotency_key", m.key, "attempt", m.attempt)
	m.state = next
}

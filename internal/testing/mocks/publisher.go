package mocks

import (
	"context"
	"sync"

	"github.com/osse101/SpinVault_Go/internal/event"
)

// Publisher records published events
type Publisher struct {
	mu     sync.Mutex
	Events []event.Event
}

func (p *Publisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, evt)
}

// Types returns the published event types in order
func (p *Publisher) Types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]event.Type, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

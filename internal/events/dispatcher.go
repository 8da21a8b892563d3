// server/internal/events/dispatcher.go
package events

import (
	"sync"

	"gesla-logistics-api-server/internal/models"
)

// StatusEvent is emitted after every persisted save or status transition.
// Previous is nil when the load was just created.
type StatusEvent struct {
	Load     models.Load
	Previous *models.LoadStatus
}

// Listener consumes status events. Listeners must not block; dispatch is
// synchronous and fire-and-forget from the engine's point of view.
type Listener func(StatusEvent)

// Dispatcher is an explicit observer list. It replaces the ad hoc
// browser-event channel of the original front end so the engine's side
// effects are testable without a DOM.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

func (d *Dispatcher) Dispatch(load models.Load, prev *models.LoadStatus) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ev := StatusEvent{Load: load, Previous: prev}
	for _, l := range d.listeners {
		l(ev)
	}
}

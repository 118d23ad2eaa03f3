package event

import (
	"slices"
	"sync"

	"github.com/thankyou/backend/internal/domain/shared"
)

// HandlerRegistry maps event types to handlers. Handlers registered without
// types receive every event, after the typed ones.
type HandlerRegistry struct {
	mu       sync.RWMutex
	typed    map[string][]shared.EventHandler
	wildcard []shared.EventHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		typed: make(map[string][]shared.EventHandler),
	}
}

// Register adds handler for eventTypes. Registering the same handler twice
// for a type is a no-op.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		if !slices.Contains(r.wildcard, handler) {
			r.wildcard = append(r.wildcard, handler)
		}
		return
	}
	for _, eventType := range eventTypes {
		if !slices.Contains(r.typed[eventType], handler) {
			r.typed[eventType] = append(r.typed[eventType], handler)
		}
	}
}

// Unregister removes handler everywhere
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	isTarget := func(h shared.EventHandler) bool { return h == handler }
	r.wildcard = slices.DeleteFunc(r.wildcard, isTarget)
	for eventType, handlers := range r.typed {
		if remaining := slices.DeleteFunc(handlers, isTarget); len(remaining) > 0 {
			r.typed[eventType] = remaining
		} else {
			delete(r.typed, eventType)
		}
	}
}

// HandlersFor returns a copy of the handlers for eventType
func (r *HandlerRegistry) HandlersFor(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Concat(r.typed[eventType], r.wildcard)
}

// Len counts distinct registered handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.EventHandler]struct{})
	for _, h := range r.wildcard {
		seen[h] = struct{}{}
	}
	for _, handlers := range r.typed {
		for _, h := range handlers {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}

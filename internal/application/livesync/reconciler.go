package livesync

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/edge/client/internal/domain/shared"
)

// Reconciler fans pushed entity events out to locally registered views. It
// applies updates optimistically by identifier match-and-replace with last
// write observed winning; there is no version check, so a stale push can
// overwrite a newer local edit (accepted limitation). Events for entity
// types or ids nothing subscribed to are dropped without side effects.
type Reconciler struct {
	logger *zap.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]subscription
}

type subscription struct {
	onUpdate func(payload any)
	onDelete func(id string)
}

// NewReconciler creates a live update reconciler. Register it on the event
// bus with Subscribe(reconciler).
func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{
		logger: logger,
		subs:   make(map[string]map[int]subscription),
	}
}

// Subscribe registers callbacks for one entity type. Either callback may be
// nil. The returned function removes the registration.
func (r *Reconciler) Subscribe(entityType string, onUpdate func(payload any), onDelete func(id string)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.subs[entityType] == nil {
		r.subs[entityType] = make(map[int]subscription)
	}
	id := r.nextID
	r.nextID++
	r.subs[entityType][id] = subscription{onUpdate: onUpdate, onDelete: onDelete}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[entityType], id)
	}
}

// Handle dispatches one pushed event to the views registered for its entity
// type. Implements shared.EventHandler.
func (r *Reconciler) Handle(ctx context.Context, event shared.DomainEvent) error {
	r.mu.RLock()
	targets := make([]subscription, 0, len(r.subs[event.AggregateType()]))
	for _, sub := range r.subs[event.AggregateType()] {
		targets = append(targets, sub)
	}
	r.mu.RUnlock()

	if len(targets) == 0 {
		r.logger.Debug("pushed event has no local view",
			zap.String("entity_type", event.AggregateType()),
			zap.String("entity_id", event.AggregateID()))
		return nil
	}

	switch evt := event.(type) {
	case *EntityUpdated:
		for _, sub := range targets {
			if sub.onUpdate != nil {
				sub.onUpdate(evt.Payload)
			}
		}
	case *EntityDeleted:
		for _, sub := range targets {
			if sub.onDelete != nil {
				sub.onDelete(evt.AggregateID())
			}
		}
	default:
		r.logger.Warn("unexpected event on push channel", zap.String("event_type", event.EventType()))
	}
	return nil
}

// EventTypes returns the push event types the reconciler consumes
func (r *Reconciler) EventTypes() []string {
	return []string{TypeEntityUpdated, TypeEntityDeleted}
}

var _ shared.EventHandler = (*Reconciler)(nil)

package livesync

import (
	"github.com/edge/client/internal/domain/shared"
)

// Event types carried on the bus for externally pushed entity changes. The
// transport (out of scope here) decodes its wire frames into these events;
// everything downstream only sees the bus.
const (
	TypeEntityUpdated = "push.entity_updated"
	TypeEntityDeleted = "push.entity_deleted"
)

// EntityUpdated is a pushed snapshot of an entity. AggregateType names the
// entity type ("order", "customer", ...) and Payload holds the decoded
// entity, typed by the transport.
type EntityUpdated struct {
	shared.BaseDomainEvent
	Payload any `json:"payload"`
}

// NewEntityUpdated creates a pushed-update event
func NewEntityUpdated(entityType, entityID string, payload any) *EntityUpdated {
	return &EntityUpdated{
		BaseDomainEvent: shared.NewBaseDomainEvent(TypeEntityUpdated, entityType, entityID),
		Payload:         payload,
	}
}

// EntityDeleted signals that an entity was deleted elsewhere
type EntityDeleted struct {
	shared.BaseDomainEvent
}

// NewEntityDeleted creates a pushed-delete event
func NewEntityDeleted(entityType, entityID string) *EntityDeleted {
	return &EntityDeleted{
		BaseDomainEvent: shared.NewBaseDomainEvent(TypeEntityDeleted, entityType, entityID),
	}
}

package shared

import "context"

// Gateway is the per-resource CRUD contract the backend exposes for every
// entity type. Create returns the persisted entity with its server-assigned
// identifier; Update accepts a full representation and returns the persisted
// result; Delete is safe to call on an already-deleted id.
type Gateway[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	FetchByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, entity *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

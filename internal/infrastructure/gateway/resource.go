package gateway

import (
	"context"
	"errors"
	"net/url"

	"github.com/edge/client/internal/domain/shared"
)

// resource provides the generic per-entity CRUD contract against
// /api/<name>. Entity-specific gateways embed it and add their extra
// lookups on top.
type resource[T any] struct {
	client *Client
	name   string
}

func newResource[T any](client *Client, name string) resource[T] {
	return resource[T]{client: client, name: name}
}

// path joins /api/<name> with optional extra segments, escaping each one.
func (r *resource[T]) path(segments ...string) string {
	p := "/api/" + r.name
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (r *resource[T]) FetchAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, "GET", r.path(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *resource[T]) FetchByID(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.do(ctx, "GET", r.path(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *resource[T]) Create(ctx context.Context, entity *T) (*T, error) {
	var created T
	if err := r.client.do(ctx, "POST", r.path(), entity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *resource[T]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	var updated T
	if err := r.client.do(ctx, "PUT", r.path(id), entity, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete is idempotent: deleting an id the server no longer knows succeeds.
func (r *resource[T]) Delete(ctx context.Context, id string) error {
	err := r.client.do(ctx, "DELETE", r.path(id), nil, nil)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

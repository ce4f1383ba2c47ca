package livesync

import (
	"sync"
)

// ListView is a local, identifier-keyed collection of one entity type, the
// shape a listing screen holds. Pushed updates replace the matching element
// in place or append when the id is new; deletes remove the element.
// Ordering of existing elements is preserved.
type ListView[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(*T) string
}

// NewListView creates a list view. idOf extracts an entity's identifier.
func NewListView[T any](idOf func(*T) string) *ListView[T] {
	return &ListView[T]{idOf: idOf}
}

// Reset replaces the whole collection, as after an initial fetch
func (v *ListView[T]) Reset(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = append([]T(nil), items...)
}

// Items returns a copy of the collection
func (v *ListView[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]T(nil), v.items...)
}

// Get returns the element with the given id
func (v *ListView[T]) Get(id string) (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for idx := range v.items {
		if v.idOf(&v.items[idx]) == id {
			return v.items[idx], true
		}
	}
	var zero T
	return zero, false
}

// ApplyUpdate replaces the element with the same id, or appends the entity
// when no element matches. Never duplicates an id.
func (v *ListView[T]) ApplyUpdate(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.idOf(&item)
	for idx := range v.items {
		if v.idOf(&v.items[idx]) == id {
			v.items[idx] = item
			return
		}
	}
	v.items = append(v.items, item)
}

// ApplyDelete removes the element with the given id; unknown ids are ignored
func (v *ListView[T]) ApplyDelete(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for idx := range v.items {
		if v.idOf(&v.items[idx]) == id {
			v.items = append(v.items[:idx], v.items[idx+1:]...)
			return
		}
	}
}

// DetailView is a local copy of a single entity, the shape a detail screen
// holds. Only a push for the same id replaces the copy; a matching delete
// clears it.
type DetailView[T any] struct {
	mu   sync.RWMutex
	item *T
	idOf func(*T) string
}

// NewDetailView creates a detail view
func NewDetailView[T any](idOf func(*T) string) *DetailView[T] {
	return &DetailView[T]{idOf: idOf}
}

// Set loads the displayed entity
func (v *DetailView[T]) Set(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.item = &item
}

// Item returns the displayed entity, or false when nothing is shown
func (v *DetailView[T]) Item() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.item == nil {
		var zero T
		return zero, false
	}
	return *v.item, true
}

// ApplyUpdate replaces the displayed entity when the pushed id matches
func (v *DetailView[T]) ApplyUpdate(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.item == nil || v.idOf(v.item) != v.idOf(&item) {
		return
	}
	v.item = &item
}

// ApplyDelete clears the view when the deleted id matches
func (v *DetailView[T]) ApplyDelete(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.item == nil || v.idOf(v.item) != id {
		return
	}
	v.item = nil
}

// entityView is the contract both view kinds share
type entityView[T any] interface {
	ApplyUpdate(item T)
	ApplyDelete(id string)
}

// Bind connects a typed view to the reconciler for one entity type. Payloads
// of a foreign type are ignored. Returns the unsubscribe function.
func Bind[T any](r *Reconciler, entityType string, view entityView[T]) func() {
	return r.Subscribe(entityType,
		func(payload any) {
			switch p := payload.(type) {
			case *T:
				view.ApplyUpdate(*p)
			case T:
				view.ApplyUpdate(p)
			}
		},
		view.ApplyDelete)
}

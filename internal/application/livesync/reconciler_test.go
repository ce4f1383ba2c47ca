package livesync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/partner"
)

func orderID(o *order.Order) string { return o.ID }

func seededOrders() []order.Order {
	a := order.NewDraft()
	a.ID = "o1"
	b := order.NewDraft()
	b.ID = "o2"
	b.Status = order.StatusPendingApproval
	return []order.Order{*a, *b}
}

func TestReconciler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("update reaches the bound view", func(t *testing.T) {
		r := NewReconciler(zap.NewNop())
		view := NewListView(orderID)
		view.Reset(seededOrders())
		Bind[order.Order](r, "order", view)

		pushed := order.NewDraft()
		pushed.ID = "o2"
		pushed.Status = order.StatusApproved
		require.NoError(t, r.Handle(ctx, NewEntityUpdated("order", "o2", pushed)))

		got, ok := view.Get("o2")
		require.True(t, ok)
		assert.Equal(t, order.StatusApproved, got.Status)
		assert.Len(t, view.Items(), 2, "replace, not duplicate")
	})

	t.Run("delete reaches the bound view", func(t *testing.T) {
		r := NewReconciler(zap.NewNop())
		view := NewListView(orderID)
		view.Reset(seededOrders())
		Bind[order.Order](r, "order", view)

		require.NoError(t, r.Handle(ctx, NewEntityDeleted("order", "o1")))

		_, ok := view.Get("o1")
		assert.False(t, ok)
		assert.Len(t, view.Items(), 1)
	})

	t.Run("event with no registered view is dropped silently", func(t *testing.T) {
		r := NewReconciler(zap.NewNop())

		pushed := order.NewDraft()
		pushed.ID = "o9"
		assert.NoError(t, r.Handle(ctx, NewEntityUpdated("order", "o9", pushed)))
		assert.NoError(t, r.Handle(ctx, NewEntityDeleted("order", "o9")))
	})

	t.Run("events only reach views of their entity type", func(t *testing.T) {
		r := NewReconciler(zap.NewNop())
		orders := NewListView(orderID)
		orders.Reset(seededOrders())
		customers := NewListView(func(c *partner.Customer) string { return c.ID })
		customers.Reset([]partner.Customer{{ID: "c1", CompanyName: "Acme"}})
		Bind[order.Order](r, "order", orders)
		Bind[partner.Customer](r, "customer", customers)

		require.NoError(t, r.Handle(ctx, NewEntityDeleted("customer", "c1")))

		assert.Len(t, orders.Items(), 2)
		assert.Empty(t, customers.Items())
	})

	t.Run("foreign payload type is ignored", func(t *testing.T) {
		r := NewReconciler(zap.NewNop())
		view := NewListView(orderID)
		view.Reset(seededOrders())
		Bind[order.Order](r, "order", view)

		require.NoError(t, r.Handle(ctx, NewEntityUpdated("order", "o1", "not an order")))
		assert.Len(t, view.Items(), 2)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		r := NewReconciler(zap.NewNop())
		view := NewListView(orderID)
		view.Reset(seededOrders())
		unbind := Bind[order.Order](r, "order", view)
		unbind()

		require.NoError(t, r.Handle(ctx, NewEntityDeleted("order", "o1")))
		assert.Len(t, view.Items(), 2)
	})
}

func TestListView(t *testing.T) {
	t.Run("update for an unknown id appends", func(t *testing.T) {
		view := NewListView(orderID)
		view.Reset(seededOrders())

		fresh := order.NewDraft()
		fresh.ID = "o3"
		view.ApplyUpdate(*fresh)

		items := view.Items()
		require.Len(t, items, 3)
		assert.Equal(t, "o3", items[2].ID, "appended at the end")
	})

	t.Run("update preserves element position", func(t *testing.T) {
		view := NewListView(orderID)
		view.Reset(seededOrders())

		updated := order.NewDraft()
		updated.ID = "o1"
		updated.Status = order.StatusCancelled
		view.ApplyUpdate(*updated)

		items := view.Items()
		assert.Equal(t, "o1", items[0].ID)
		assert.Equal(t, order.StatusCancelled, items[0].Status)
	})

	t.Run("delete of an unknown id is a no-op", func(t *testing.T) {
		view := NewListView(orderID)
		view.Reset(seededOrders())
		view.ApplyDelete("missing")
		assert.Len(t, view.Items(), 2)
	})
}

func TestDetailView(t *testing.T) {
	t.Run("only a matching id replaces the copy", func(t *testing.T) {
		view := NewDetailView(orderID)
		shown := order.NewDraft()
		shown.ID = "o1"
		view.Set(*shown)

		other := order.NewDraft()
		other.ID = "o2"
		other.Status = order.StatusShipped
		view.ApplyUpdate(*other)

		got, ok := view.Item()
		require.True(t, ok)
		assert.Equal(t, "o1", got.ID)
		assert.Equal(t, order.StatusDraft, got.Status)

		mine := order.NewDraft()
		mine.ID = "o1"
		mine.Status = order.StatusPendingApproval
		view.ApplyUpdate(*mine)

		got, _ = view.Item()
		assert.Equal(t, order.StatusPendingApproval, got.Status)
	})

	t.Run("matching delete clears the view", func(t *testing.T) {
		view := NewDetailView(orderID)
		shown := order.NewDraft()
		shown.ID = "o1"
		view.Set(*shown)

		view.ApplyDelete("o2")
		_, ok := view.Item()
		assert.True(t, ok)

		view.ApplyDelete("o1")
		_, ok = view.Item()
		assert.False(t, ok)
	})

	t.Run("empty view ignores pushes", func(t *testing.T) {
		view := NewDetailView(orderID)
		pushed := order.NewDraft()
		pushed.ID = "o1"
		view.ApplyUpdate(*pushed)
		_, ok := view.Item()
		assert.False(t, ok)
	})
}

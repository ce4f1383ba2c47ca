package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edge/client/internal/domain/order"
)

func TestDraftManager_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft when none exists", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		manager := NewDraftManager(gateway, nil, zap.NewNop())

		ord, err := manager.Resolve(ctx, "s1", "")
		require.NoError(t, err)
		assert.NotEmpty(t, ord.ID)
		assert.Equal(t, order.StatusDraft, ord.Status)
		assert.Empty(t, ord.Items)
		assert.True(t, ord.Total.IsZero())
	})

	t.Run("adopts the newest existing draft", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		older := order.NewDraft()
		older.OrderDate = time.Now().Add(-time.Hour)
		gateway.seed(older)
		newer := order.NewDraft()
		newer.OrderDate = time.Now()
		seeded := gateway.seed(newer)

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		ord, err := manager.Resolve(ctx, "s1", "")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, ord.ID)
		assert.Zero(t, gateway.snapshot()["create"])
	})

	t.Run("adopts an explicit order regardless of status", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		shipped := order.NewDraft()
		shipped.Status = order.StatusShipped
		seeded := gateway.seed(shipped)

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		ord, err := manager.Resolve(ctx, "s1", seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, ord.ID)
		assert.Equal(t, order.StatusShipped, ord.Status)
	})

	t.Run("missing explicit order falls through to draft creation", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		manager := NewDraftManager(gateway, nil, zap.NewNop())

		ord, err := manager.Resolve(ctx, "s1", "gone")
		require.NoError(t, err)
		assert.Equal(t, order.StatusDraft, ord.Status)
		assert.Equal(t, 1, gateway.snapshot()["create"])
	})

	t.Run("concurrent resolution creates at most one draft", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		manager := NewDraftManager(gateway, nil, zap.NewNop())

		const callers = 8
		var wg sync.WaitGroup
		ids := make([]string, callers)
		for idx := 0; idx < callers; idx++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				ord, err := manager.Resolve(ctx, "s1", "")
				if assert.NoError(t, err) {
					ids[slot] = ord.ID
				}
			}(idx)
		}
		wg.Wait()

		assert.Equal(t, 1, gateway.snapshot()["create"])
		for _, id := range ids[1:] {
			assert.Equal(t, ids[0], id)
		}
	})
}

func TestDraftManager_Cleanup(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an abandoned draft", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		draft := gateway.seed(order.NewDraft())

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		manager.Cleanup(ctx, draft, false)

		assert.Eventually(t, func() bool {
			return gateway.snapshot()["delete"] == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("never deletes a permanent order", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		pending := order.NewDraft()
		pending.Status = order.StatusPendingApproval
		seeded := gateway.seed(pending)

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		manager.Cleanup(ctx, seeded, false)

		time.Sleep(20 * time.Millisecond)
		assert.Zero(t, gateway.snapshot()["delete"])
	})

	t.Run("never deletes an explicitly edited order", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		draft := gateway.seed(order.NewDraft())

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		manager.Cleanup(ctx, draft, true)

		time.Sleep(20 * time.Millisecond)
		assert.Zero(t, gateway.snapshot()["delete"])
	})

	t.Run("survives a cancelled context", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		draft := gateway.seed(order.NewDraft())

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		manager.Cleanup(cancelled, draft, false)

		assert.Eventually(t, func() bool {
			return gateway.snapshot()["delete"] == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("failures are swallowed", func(t *testing.T) {
		gateway := newFakeOrderGateway()
		draft := gateway.seed(order.NewDraft())
		gateway.failDelete = assert.AnError

		manager := NewDraftManager(gateway, nil, zap.NewNop())
		manager.Cleanup(ctx, draft, false)

		assert.Eventually(t, func() bool {
			return gateway.snapshot()["delete"] == 1
		}, time.Second, 5*time.Millisecond)
		_, err := gateway.FetchByID(ctx, draft.ID)
		assert.NoError(t, err, "draft survives a failed cleanup")
	})
}

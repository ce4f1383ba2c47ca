package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/shared"
)

// draftGuardTTL bounds how long a cross-process creation key stays claimed.
// Long enough to cover a slow create, short enough that a crashed process
// does not block draft creation for the rest of the day.
const draftGuardTTL = 5 * time.Minute

type draftCall struct {
	done chan struct{}
	ord  *order.Order
	err  error
}

// DraftManager resolves the order for a new editing session and cleans up
// abandoned drafts. At most one DRAFT order is created per session even when
// resolution is triggered concurrently: in-process duplicates collapse via a
// per-session single-flight map, and an optional idempotency store collapses
// duplicates across processes that share a backend.
type DraftManager struct {
	orders order.Gateway
	guard  shared.IdempotencyStore
	logger *zap.Logger

	mu       sync.Mutex
	inflight map[string]*draftCall
}

// NewDraftManager creates a draft lifecycle manager. guard may be nil, in
// which case only in-process creation attempts are de-duplicated.
func NewDraftManager(orders order.Gateway, guard shared.IdempotencyStore, logger *zap.Logger) *DraftManager {
	return &DraftManager{
		orders:   orders,
		guard:    guard,
		logger:   logger,
		inflight: make(map[string]*draftCall),
	}
}

// Resolve determines the order a session works on. Exactly one of three paths
// runs: adopt an explicitly requested order by id, adopt the newest existing
// DRAFT, or create a fresh draft. An order adopted by id is never subject to
// draft cleanup; if it no longer exists the session falls through to the
// draft path instead of failing.
func (m *DraftManager) Resolve(ctx context.Context, sessionID, editID string) (*order.Order, error) {
	if editID != "" {
		ord, err := m.orders.FetchByID(ctx, editID)
		if err == nil {
			m.logger.Info("adopted order for editing",
				zap.String("order_id", ord.ID),
				zap.String("status", string(ord.Status)))
			return ord, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		m.logger.Warn("order to edit no longer exists, starting a new draft",
			zap.String("order_id", editID))
	}
	return m.resolveDraft(ctx, sessionID)
}

// resolveDraft adopts an existing draft or creates one, collapsing concurrent
// calls for the same session into a single execution.
func (m *DraftManager) resolveDraft(ctx context.Context, sessionID string) (*order.Order, error) {
	m.mu.Lock()
	if call, ok := m.inflight[sessionID]; ok {
		m.mu.Unlock()
		select {
		case <-call.done:
			return call.ord, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &draftCall{done: make(chan struct{})}
	m.inflight[sessionID] = call
	m.mu.Unlock()

	// Release the guard regardless of outcome.
	defer func() {
		close(call.done)
		m.mu.Lock()
		delete(m.inflight, sessionID)
		m.mu.Unlock()
	}()

	call.ord, call.err = m.adoptOrCreate(ctx, sessionID)
	return call.ord, call.err
}

func (m *DraftManager) adoptOrCreate(ctx context.Context, sessionID string) (*order.Order, error) {
	drafts, err := m.orders.FetchByStatus(ctx, order.StatusDraft)
	if err != nil {
		return nil, err
	}
	if ord := newestDraft(drafts); ord != nil {
		m.logger.Info("adopted existing draft", zap.String("order_id", ord.ID))
		return ord, nil
	}

	if m.guard != nil {
		fresh, err := m.guard.MarkProcessed(ctx, "draft:create:"+sessionID, draftGuardTTL)
		if err != nil {
			// The store is advisory here; creation proceeds without it.
			m.logger.Warn("draft creation guard unavailable", zap.Error(err))
		} else if !fresh {
			// Another process claimed creation for this session; its draft
			// should be visible by now.
			drafts, err := m.orders.FetchByStatus(ctx, order.StatusDraft)
			if err == nil {
				if ord := newestDraft(drafts); ord != nil {
					m.logger.Info("adopted draft created elsewhere", zap.String("order_id", ord.ID))
					return ord, nil
				}
			}
		}
	}

	created, err := m.orders.Create(ctx, order.NewDraft())
	if err != nil {
		return nil, err
	}
	m.logger.Info("created new draft", zap.String("order_id", created.ID))
	return created, nil
}

// newestDraft picks the most recently created draft, which wins when several
// orphans exist.
func newestDraft(drafts []order.Order) *order.Order {
	var newest *order.Order
	for idx := range drafts {
		if newest == nil || drafts[idx].OrderDate.After(newest.OrderDate) {
			newest = &drafts[idx]
		}
	}
	return newest
}

// Cleanup deletes an abandoned draft, best effort. It runs only when the
// session had no explicit edit target and the latest known status is still
// DRAFT. The delete is issued on a detached context so it survives session
// teardown; it is never retried and failures are logged only.
func (m *DraftManager) Cleanup(ctx context.Context, ord *order.Order, explicitEdit bool) {
	if ord == nil || ord.ID == "" || explicitEdit || !ord.IsDraft() {
		return
	}
	detached := context.WithoutCancel(ctx)
	orderID := ord.ID
	go func() {
		if err := m.orders.Delete(detached, orderID); err != nil {
			m.logger.Warn("draft cleanup failed", zap.String("order_id", orderID), zap.Error(err))
			return
		}
		m.logger.Info("abandoned draft deleted", zap.String("order_id", orderID))
	}()
}

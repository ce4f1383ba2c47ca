package workflow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/edge/client/internal/domain/order"
)

// Journal appends audit records to an order's embedded history and persists
// the result. The whole history array is rewritten on every append, so the
// caller must pass the freshest persisted order it holds; appending against a
// stale copy can drop records another writer added in between (accepted
// best-effort limitation, the journal is not linearizable).
type Journal struct {
	orders order.Gateway
	logger *zap.Logger
}

// NewJournal creates the audit journal service
func NewJournal(orders order.Gateway, logger *zap.Logger) *Journal {
	return &Journal{orders: orders, logger: logger}
}

// Append appends one record to the target order's history and persists the
// order. The timestamp is assigned locally when unset, and the display label
// is derived from the step key. Returns the persisted order.
func (j *Journal) Append(ctx context.Context, target *order.Order, rec order.Record) (*order.Order, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.StepLabel == "" {
		rec.StepLabel = LabelFor(rec.Step)
	}

	next := target.Clone()
	next.AppendHistory(rec)

	persisted, err := j.orders.Update(ctx, next.ID, next)
	if err != nil {
		j.logger.Error("failed to persist audit record",
			zap.String("order_id", next.ID),
			zap.String("step", rec.Step),
			zap.Error(err))
		return nil, err
	}

	j.logger.Debug("audit record appended",
		zap.String("order_id", persisted.ID),
		zap.String("step", rec.Step),
		zap.String("status", string(rec.Status)))
	return persisted, nil
}

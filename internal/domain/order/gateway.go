package order

import (
	"context"

	"github.com/edge/client/internal/domain/shared"
)

// Gateway is the order resource contract. Line-item operations mutate the
// order on the store side and return the persisted representation with all
// totals recomputed, so callers never recompute money locally.
type Gateway interface {
	shared.Gateway[Order]

	FetchByStatus(ctx context.Context, status Status) ([]Order, error)
	FetchByCustomer(ctx context.Context, customerID string) ([]Order, error)
	AddLineItem(ctx context.Context, orderID, productID string, quantity int) (*Order, error)
	UpdateLineItemQuantity(ctx context.Context, orderID, itemID string, quantity int) (*Order, error)
	RemoveLineItem(ctx context.Context, orderID, itemID string) (*Order, error)
	NextInvoiceNumber(ctx context.Context) (string, error)
}

package catalog

import (
	"context"

	"github.com/edge/client/internal/domain/shared"
)

// ProductGateway is the product resource contract, extended with the
// active-products lookup the entry step uses to offer product choices.
type ProductGateway interface {
	shared.Gateway[Product]
	FetchActive(ctx context.Context) ([]Product, error)
}

// WarehouseGateway is the warehouse resource contract
type WarehouseGateway = shared.Gateway[Warehouse]

// InventoryGateway is the inventory resource contract
type InventoryGateway = shared.Gateway[Inventory]

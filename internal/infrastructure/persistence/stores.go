package persistence

import (
	"gorm.io/gorm"

	"github.com/edge/client/internal/domain/catalog"
	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/partner"
)

// Stores bundles one store per entity type over a single database
type Stores struct {
	Orders     *OrderStore
	Customers  *CustomerStore
	Vendors    *VendorStore
	Addresses  *AddressStore
	Products   *ProductStore
	Warehouses *WarehouseStore
	Inventory  *InventoryStore
}

// NewStores builds the full store set over one database connection
func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Orders:     NewOrderStore(db),
		Customers:  NewCustomerStore(db),
		Vendors:    NewVendorStore(db),
		Addresses:  NewAddressStore(db),
		Products:   NewProductStore(db),
		Warehouses: NewWarehouseStore(db),
		Inventory:  NewInventoryStore(db),
	}
}

// Interface conformance checks
var (
	_ order.Gateway            = (*OrderStore)(nil)
	_ partner.CustomerGateway  = (*CustomerStore)(nil)
	_ partner.VendorGateway    = (*VendorStore)(nil)
	_ partner.AddressGateway   = (*AddressStore)(nil)
	_ catalog.ProductGateway   = (*ProductStore)(nil)
	_ catalog.WarehouseGateway = (*WarehouseStore)(nil)
	_ catalog.InventoryGateway = (*InventoryStore)(nil)
)

package catalog

import "github.com/edge/client/internal/domain/shared"

// Inventory tracks on-hand quantity of a product in a warehouse
type Inventory struct {
	ID          string               `json:"id,omitempty"`
	ProductID   string               `json:"productId,omitempty"`
	WarehouseID string               `json:"warehouseId,omitempty"`
	Quantity    int                  `json:"quantity"`
	Extension   shared.ExtensionData `json:"jsonData,omitempty"`
}

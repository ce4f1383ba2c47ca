package catalog

import "github.com/edge/client/internal/domain/shared"

// Warehouse is a catalog entity
type Warehouse struct {
	ID            string               `json:"id,omitempty"`
	WarehouseCode string               `json:"warehouseCode,omitempty"`
	WarehouseName string               `json:"warehouseName,omitempty"`
	Address       string               `json:"address,omitempty"`
	Description   string               `json:"description,omitempty"`
	Active        bool                 `json:"active"`
	Extension     shared.ExtensionData `json:"jsonData,omitempty"`
}

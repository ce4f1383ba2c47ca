package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/edge/client/internal/domain/shared"
)

// Product is a catalog entity. The workflow copies code, name and unit price
// onto order line items at add time; later product edits do not rewrite
// existing orders.
type Product struct {
	ID            string               `json:"id,omitempty"`
	ProductCode   string               `json:"productCode,omitempty"`
	ProductName   string               `json:"productName,omitempty"`
	Description   string               `json:"description,omitempty"`
	UnitPrice     decimal.Decimal      `json:"unitPrice"`
	Cost          decimal.Decimal      `json:"cost"`
	UnitOfMeasure string               `json:"unitOfMeasure,omitempty"`
	Active        bool                 `json:"active"`
	Extension     shared.ExtensionData `json:"jsonData,omitempty"`
}

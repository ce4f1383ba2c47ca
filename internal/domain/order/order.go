package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edge/client/internal/domain/shared"
)

// Item represents a line item in an order. LineTotal is always recomputed
// from quantity and unit price; it is never accepted from callers.
type Item struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductCode string          `json:"productCode,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// calculateLineTotal recomputes the line total from quantity and unit price
func (i *Item) calculateLineTotal() {
	i.LineTotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the central entity of the workflow. While Status is DRAFT the
// order is provisional and may be deleted by the draft lifecycle manager;
// once Status advances past DRAFT the order is permanent.
type Order struct {
	ID                string               `json:"id,omitempty"`
	OrderNumber       string               `json:"orderNumber,omitempty"`
	CustomerID        string               `json:"customerId,omitempty"`
	ShippingAddressID string               `json:"shippingAddressId,omitempty"`
	BillingAddressID  string               `json:"billingAddressId,omitempty"`
	OrderDate         time.Time            `json:"orderDate"`
	ShipDate          *time.Time           `json:"shipDate,omitempty"`
	Status            Status               `json:"status"`
	InvoiceNumber     string               `json:"invoiceNumber,omitempty"`
	InvoiceDate       *time.Time           `json:"invoiceDate,omitempty"`
	Items             []Item               `json:"items"`
	Subtotal          decimal.Decimal      `json:"subtotal"`
	Tax               decimal.Decimal      `json:"tax"`
	ShippingCost      decimal.Decimal      `json:"shippingCost"`
	Total             decimal.Decimal      `json:"total"`
	Notes             string               `json:"notes,omitempty"`
	Extension         shared.ExtensionData `json:"jsonData,omitempty"`
}

// NewDraft creates a new provisional order: DRAFT status, no items, zeroed
// monetary totals. The id is assigned by the store on create.
func NewDraft() *Order {
	return &Order{
		OrderDate:    time.Now(),
		Status:       StatusDraft,
		Items:        make([]Item, 0),
		Subtotal:     decimal.Zero,
		Tax:          decimal.Zero,
		ShippingCost: decimal.Zero,
		Total:        decimal.Zero,
	}
}

// Clone returns a deep copy. Workflow actions mutate a clone and only adopt
// it once the store accepted the update, so a failed persist leaves the
// caller's copy untouched.
func (o *Order) Clone() *Order {
	c := *o
	if o.Items != nil {
		c.Items = append([]Item(nil), o.Items...)
	}
	c.Extension = o.Extension.Clone()
	if o.ShipDate != nil {
		t := *o.ShipDate
		c.ShipDate = &t
	}
	if o.InvoiceDate != nil {
		t := *o.InvoiceDate
		c.InvoiceDate = &t
	}
	return &c
}

// CalculateTotals recalculates subtotal and total from the line items.
// Tax and shipping cost default to zero when unset.
func (o *Order) CalculateTotals() {
	subtotal := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].calculateLineTotal()
		subtotal = subtotal.Add(o.Items[idx].LineTotal)
	}
	o.Subtotal = subtotal
	o.Total = o.Subtotal.Add(o.Tax).Add(o.ShippingCost)
}

// AddItem adds a line item for the given product, merging quantities when the
// product is already present. Only allowed while the order is a draft.
func (o *Order) AddItem(productID, productCode, productName string, unitPrice decimal.Decimal, quantity int) (*Item, error) {
	if o.Status != StatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft order")
	}
	if productID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			o.Items[idx].Quantity += quantity
			o.Items[idx].calculateLineTotal()
			o.CalculateTotals()
			return &o.Items[idx], nil
		}
	}

	item := Item{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductCode: productCode,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	item.calculateLineTotal()
	o.Items = append(o.Items, item)
	o.CalculateTotals()
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItemQuantity updates the quantity of an existing line item and
// recomputes the totals. Only allowed while the order is a draft.
func (o *Order) UpdateItemQuantity(itemID string, quantity int) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft order")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items[idx].Quantity = quantity
			o.Items[idx].calculateLineTotal()
			o.CalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item and recomputes the totals.
// Only allowed while the order is a draft.
func (o *Order) RemoveItem(itemID string) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.CalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetShipDate records the actual ship date. Set once during the shipping
// step and immutable history afterwards.
func (o *Order) SetShipDate(shipDate time.Time) error {
	if o.ShipDate != nil {
		return shared.NewDomainError("INVALID_STATE", "Ship date is already set")
	}
	o.ShipDate = &shipDate
	return nil
}

// SetInvoice records the invoice number and date. Set once during the
// invoicing step and immutable history afterwards.
func (o *Order) SetInvoice(number string, date time.Time) error {
	if number == "" {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice number cannot be empty")
	}
	if o.InvoiceNumber != "" {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already set")
	}
	o.InvoiceNumber = number
	o.InvoiceDate = &date
	return nil
}

// GetItem returns a line item by its id, or nil
func (o *Order) GetItem(itemID string) *Item {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetItemByProduct returns a line item by product id, or nil
func (o *Order) GetItemByProduct(productID string) *Item {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// IsDraft returns true if the order is still provisional
func (o *Order) IsDraft() bool {
	return o.Status == StatusDraft
}

// HasCustomer returns true if a customer reference is set
func (o *Order) HasCustomer() bool {
	return o.CustomerID != ""
}

// HasItems returns true if the order has at least one line item
func (o *Order) HasItems() bool {
	return len(o.Items) > 0
}

// HasAddresses returns true if both shipping and billing addresses are set
func (o *Order) HasAddresses() bool {
	return o.ShippingAddressID != "" && o.BillingAddressID != ""
}

// AppendNote appends free text to the order's notes field, separated from
// any existing notes by a blank line.
func (o *Order) AppendNote(note string) {
	if o.Notes == "" {
		o.Notes = note
		return
	}
	o.Notes = o.Notes + "\n\n" + note
}

package gateway

import (
	"context"
	"errors"

	"github.com/edge/client/internal/domain/catalog"
	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
)

// OrderGateway implements order.Gateway over the REST contract. Line-item
// operations are executed server-side so the returned order carries the
// recomputed totals.
type OrderGateway struct {
	resource[order.Order]
}

func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{resource: newResource[order.Order](client, "orders")}
}

func (g *OrderGateway) FetchByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	var orders []order.Order
	if err := g.client.do(ctx, "GET", g.path("status", string(status)), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *OrderGateway) FetchByCustomer(ctx context.Context, customerID string) ([]order.Order, error) {
	var orders []order.Order
	if err := g.client.do(ctx, "GET", g.path("customer", customerID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *OrderGateway) AddLineItem(ctx context.Context, orderID, productID string, quantity int) (*order.Order, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	var updated order.Order
	if err := g.client.do(ctx, "POST", g.path(orderID, "items"), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *OrderGateway) UpdateLineItemQuantity(ctx context.Context, orderID, itemID string, quantity int) (*order.Order, error) {
	body := map[string]any{"quantity": quantity}
	var updated order.Order
	if err := g.client.do(ctx, "PUT", g.path(orderID, "items", itemID, "quantity"), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *OrderGateway) RemoveLineItem(ctx context.Context, orderID, itemID string) (*order.Order, error) {
	var updated order.Order
	if err := g.client.do(ctx, "DELETE", g.path(orderID, "items", itemID), nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *OrderGateway) NextInvoiceNumber(ctx context.Context) (string, error) {
	var out struct {
		InvoiceNumber string `json:"invoiceNumber"`
	}
	if err := g.client.do(ctx, "GET", g.path("invoice", "next-number"), nil, &out); err != nil {
		return "", err
	}
	return out.InvoiceNumber, nil
}

// CustomerGateway implements partner.CustomerGateway over the REST contract
type CustomerGateway struct {
	resource[partner.Customer]
}

func NewCustomerGateway(client *Client) *CustomerGateway {
	return &CustomerGateway{resource: newResource[partner.Customer](client, "customers")}
}

// VendorGateway implements partner.VendorGateway over the REST contract
type VendorGateway struct {
	resource[partner.Vendor]
}

func NewVendorGateway(client *Client) *VendorGateway {
	return &VendorGateway{resource: newResource[partner.Vendor](client, "vendors")}
}

// AddressGateway implements partner.AddressGateway over the REST contract.
// The customer-scoped lookup resolves through the customer's address
// association rather than a dedicated endpoint, which is all the backend
// offers.
type AddressGateway struct {
	resource[partner.Address]
	customers *CustomerGateway
}

func NewAddressGateway(client *Client, customers *CustomerGateway) *AddressGateway {
	return &AddressGateway{
		resource:  newResource[partner.Address](client, "addresses"),
		customers: customers,
	}
}

// FetchByCustomer returns the addresses associated with the customer.
// A missing customer or a dangling address id yields an empty or shorter
// result, not an error.
func (g *AddressGateway) FetchByCustomer(ctx context.Context, customerID string) ([]partner.Address, error) {
	customer, err := g.customers.FetchByID(ctx, customerID)
	if errors.Is(err, shared.ErrNotFound) {
		return []partner.Address{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := partner.AssociatedAddressIDs(customer)
	addresses := make([]partner.Address, 0, len(ids))
	for _, id := range ids {
		addr, err := g.FetchByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *addr)
	}
	return addresses, nil
}

// ProductGateway implements catalog.ProductGateway over the REST contract
type ProductGateway struct {
	resource[catalog.Product]
}

func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{resource: newResource[catalog.Product](client, "products")}
}

func (g *ProductGateway) FetchActive(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := g.client.do(ctx, "GET", g.path("active"), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// WarehouseGateway implements catalog.WarehouseGateway over the REST contract
type WarehouseGateway struct {
	resource[catalog.Warehouse]
}

func NewWarehouseGateway(client *Client) *WarehouseGateway {
	return &WarehouseGateway{resource: newResource[catalog.Warehouse](client, "warehouses")}
}

// InventoryGateway implements catalog.InventoryGateway over the REST contract
type InventoryGateway struct {
	resource[catalog.Inventory]
}

func NewInventoryGateway(client *Client) *InventoryGateway {
	return &InventoryGateway{resource: newResource[catalog.Inventory](client, "inventory")}
}

// Gateways bundles one gateway per entity type behind a single client
type Gateways struct {
	Orders     *OrderGateway
	Customers  *CustomerGateway
	Vendors    *VendorGateway
	Addresses  *AddressGateway
	Products   *ProductGateway
	Warehouses *WarehouseGateway
	Inventory  *InventoryGateway
}

// NewGateways builds the full gateway set over one client
func NewGateways(client *Client) *Gateways {
	customers := NewCustomerGateway(client)
	return &Gateways{
		Orders:     NewOrderGateway(client),
		Customers:  customers,
		Vendors:    NewVendorGateway(client),
		Addresses:  NewAddressGateway(client, customers),
		Products:   NewProductGateway(client),
		Warehouses: NewWarehouseGateway(client),
		Inventory:  NewInventoryGateway(client),
	}
}

// Interface conformance checks
var (
	_ order.Gateway            = (*OrderGateway)(nil)
	_ partner.CustomerGateway  = (*CustomerGateway)(nil)
	_ partner.VendorGateway    = (*VendorGateway)(nil)
	_ partner.AddressGateway   = (*AddressGateway)(nil)
	_ catalog.ProductGateway   = (*ProductGateway)(nil)
	_ catalog.WarehouseGateway = (*WarehouseGateway)(nil)
	_ catalog.InventoryGateway = (*InventoryGateway)(nil)
)

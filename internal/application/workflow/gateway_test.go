package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edge/client/internal/domain/catalog"
	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
)

// fakeOrderGateway is an in-memory order store for workflow tests. It applies
// line-item operations through the domain methods, mirroring what the real
// stores do, and supports error injection plus call counting.
type fakeOrderGateway struct {
	mu         sync.Mutex
	orders     map[string]*order.Order
	products   map[string]catalog.Product
	invoiceSeq int

	failCreate error
	failUpdate error
	failDelete error

	createCalls int
	deleteCalls int
	deletedIDs  []string
}

func newFakeOrderGateway() *fakeOrderGateway {
	return &fakeOrderGateway{
		orders: make(map[string]*order.Order),
		products: map[string]catalog.Product{
			"p1": {ID: "p1", ProductCode: "SKU-1", ProductName: "Widget", UnitPrice: decimal.NewFromFloat(10.00), Active: true},
			"p2": {ID: "p2", ProductCode: "SKU-2", ProductName: "Gadget", UnitPrice: decimal.NewFromFloat(5.50), Active: true},
		},
		invoiceSeq: 1000,
	}
}

func (g *fakeOrderGateway) FetchAll(ctx context.Context) ([]order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]order.Order, 0, len(g.orders))
	for _, o := range g.orders {
		out = append(out, *o.Clone())
	}
	return out, nil
}

func (g *fakeOrderGateway) FetchByID(ctx context.Context, id string) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o.Clone(), nil
}

func (g *fakeOrderGateway) Create(ctx context.Context, entity *order.Order) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.failCreate != nil {
		return nil, g.failCreate
	}
	stored := entity.Clone()
	stored.ID = uuid.New().String()
	stored.OrderNumber = fmt.Sprintf("ORD-%04d", len(g.orders)+1)
	g.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (g *fakeOrderGateway) Update(ctx context.Context, id string, entity *order.Order) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failUpdate != nil {
		return nil, g.failUpdate
	}
	if _, ok := g.orders[id]; !ok {
		return nil, shared.ErrNotFound
	}
	stored := entity.Clone()
	stored.ID = id
	g.orders[id] = stored
	return stored.Clone(), nil
}

func (g *fakeOrderGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls++
	if g.failDelete != nil {
		return g.failDelete
	}
	delete(g.orders, id)
	g.deletedIDs = append(g.deletedIDs, id)
	return nil
}

func (g *fakeOrderGateway) FetchByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []order.Order
	for _, o := range g.orders {
		if o.Status == status {
			out = append(out, *o.Clone())
		}
	}
	return out, nil
}

func (g *fakeOrderGateway) FetchByCustomer(ctx context.Context, customerID string) ([]order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []order.Order
	for _, o := range g.orders {
		if o.CustomerID == customerID {
			out = append(out, *o.Clone())
		}
	}
	return out, nil
}

func (g *fakeOrderGateway) AddLineItem(ctx context.Context, orderID, productID string, quantity int) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[orderID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	product, ok := g.products[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	next := o.Clone()
	if _, err := next.AddItem(product.ID, product.ProductCode, product.ProductName, product.UnitPrice, quantity); err != nil {
		return nil, err
	}
	g.orders[orderID] = next
	return next.Clone(), nil
}

func (g *fakeOrderGateway) UpdateLineItemQuantity(ctx context.Context, orderID, itemID string, quantity int) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[orderID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	next := o.Clone()
	if err := next.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	g.orders[orderID] = next
	return next.Clone(), nil
}

func (g *fakeOrderGateway) RemoveLineItem(ctx context.Context, orderID, itemID string) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[orderID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	next := o.Clone()
	if err := next.RemoveItem(itemID); err != nil {
		return nil, err
	}
	g.orders[orderID] = next
	return next.Clone(), nil
}

func (g *fakeOrderGateway) NextInvoiceNumber(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invoiceSeq++
	return fmt.Sprintf("%d", g.invoiceSeq), nil
}

func (g *fakeOrderGateway) seed(o *order.Order) *order.Order {
	g.mu.Lock()
	defer g.mu.Unlock()
	stored := o.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	g.orders[stored.ID] = stored
	return stored.Clone()
}

func (g *fakeOrderGateway) snapshot() map[string]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return map[string]int{"create": g.createCalls, "delete": g.deleteCalls}
}

// fakeCustomerGateway is an in-memory customer store
type fakeCustomerGateway struct {
	mu        sync.Mutex
	customers map[string]*partner.Customer
}

func newFakeCustomerGateway(customers ...partner.Customer) *fakeCustomerGateway {
	g := &fakeCustomerGateway{customers: make(map[string]*partner.Customer)}
	for idx := range customers {
		c := customers[idx]
		g.customers[c.ID] = &c
	}
	return g
}

func (g *fakeCustomerGateway) FetchAll(ctx context.Context) ([]partner.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]partner.Customer, 0, len(g.customers))
	for _, c := range g.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (g *fakeCustomerGateway) FetchByID(ctx context.Context, id string) (*partner.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (g *fakeCustomerGateway) Create(ctx context.Context, entity *partner.Customer) (*partner.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	copied := *entity
	copied.ID = uuid.New().String()
	g.customers[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (g *fakeCustomerGateway) Update(ctx context.Context, id string, entity *partner.Customer) (*partner.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.customers[id]; !ok {
		return nil, shared.ErrNotFound
	}
	copied := *entity
	copied.ID = id
	g.customers[id] = &copied
	out := copied
	return &out, nil
}

func (g *fakeCustomerGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.customers, id)
	return nil
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/shared"
	"github.com/edge/client/internal/infrastructure/persistence/models"
)

// Counters start here; the first generated number is the initial value
// plus one.
const (
	initialOrderNumber   = 100000
	initialInvoiceNumber = 200000
)

// OrderStore implements order.Gateway against the local database. Line-item
// operations go through the domain entity so totals are always recomputed
// before the row is written.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates a new OrderStore
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// FetchAll returns all orders
func (s *OrderStore) FetchAll(ctx context.Context) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// FetchByID returns one order by id
func (s *OrderStore) FetchByID(ctx context.Context, id string) (*order.Order, error) {
	var row models.OrderModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FetchByStatus returns all orders with the given status
func (s *OrderStore) FetchByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := s.db.WithContext(ctx).Where("status = ?", string(status)).Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// FetchByCustomer returns all orders referencing the customer
func (s *OrderStore) FetchByCustomer(ctx context.Context, customerID string) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Create persists a new order. The store assigns the id and, when absent,
// the order number; totals are recomputed from the line items before the
// row is written.
func (s *OrderStore) Create(ctx context.Context, entity *order.Order) (*order.Order, error) {
	o := entity.Clone()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CalculateTotals()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.OrderNumber == "" {
			number, err := nextSequence(tx, models.SequenceOrderNumber, initialOrderNumber)
			if err != nil {
				return err
			}
			o.OrderNumber = strconv.FormatInt(number, 10)
		} else {
			var count int64
			if err := tx.Model(&models.OrderModel{}).Where("order_number = ?", o.OrderNumber).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return shared.ErrAlreadyExists
			}
		}

		var row models.OrderModel
		row.FromDomain(o)
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the stored order with the given representation, keeping
// the totals consistent with the line items
func (s *OrderStore) Update(ctx context.Context, id string, entity *order.Order) (*order.Order, error) {
	var existing models.OrderModel
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	o := entity.Clone()
	o.ID = id
	if o.OrderNumber == "" {
		o.OrderNumber = existing.OrderNumber
	}
	o.CalculateTotals()

	var row models.OrderModel
	row.FromDomain(o)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes an order. Deleting an unknown id is not an error.
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id).Error
}

// AddLineItem adds a product to the order, copying code, name and unit price
// from the catalog, and returns the order with recomputed totals
func (s *OrderStore) AddLineItem(ctx context.Context, orderID, productID string, quantity int) (*order.Order, error) {
	o, err := s.FetchByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var product models.ProductModel
	if err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if _, err := o.AddItem(product.ID, product.ProductCode, product.ProductName, product.UnitPrice, quantity); err != nil {
		return nil, err
	}
	return s.save(ctx, o)
}

// UpdateLineItemQuantity changes a line item's quantity and returns the
// order with recomputed totals
func (s *OrderStore) UpdateLineItemQuantity(ctx context.Context, orderID, itemID string, quantity int) (*order.Order, error) {
	o, err := s.FetchByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	return s.save(ctx, o)
}

// RemoveLineItem removes a line item and returns the order with recomputed
// totals
func (s *OrderStore) RemoveLineItem(ctx context.Context, orderID, itemID string) (*order.Order, error) {
	o, err := s.FetchByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.RemoveItem(itemID); err != nil {
		return nil, err
	}
	return s.save(ctx, o)
}

// NextInvoiceNumber returns the next number from the invoice sequence
func (s *OrderStore) NextInvoiceNumber(ctx context.Context) (string, error) {
	var number int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = nextSequence(tx, models.SequenceInvoiceNumber, initialInvoiceNumber)
		return err
	})
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(number, 10), nil
}

func (s *OrderStore) save(ctx context.Context, o *order.Order) (*order.Order, error) {
	var row models.OrderModel
	row.FromDomain(o)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// nextSequence increments the named counter and returns the new value,
// creating the counter at its initial value on first use. Must run inside a
// transaction; the row is locked for the duration.
func nextSequence(tx *gorm.DB, name string, initial int64) (int64, error) {
	var seq models.SequenceModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq, "name = ?", name).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq = models.SequenceModel{Name: name, Value: initial}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("initialize sequence %s: %w", name, err)
		}
	case err != nil:
		return 0, err
	}

	seq.Value++
	if err := tx.Save(&seq).Error; err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", name, err)
	}
	return seq.Value, nil
}

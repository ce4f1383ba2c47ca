package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/shared"
)

// OrderModel is the persistence model for the Order domain entity. Line
// items and the extension bag are stored as JSON columns; the audit journal
// lives inside the extension bag and is never queried relationally.
type OrderModel struct {
	ID                string               `gorm:"type:varchar(36);primary_key"`
	OrderNumber       string               `gorm:"type:varchar(50);uniqueIndex"`
	CustomerID        string               `gorm:"type:varchar(36);index"`
	ShippingAddressID string               `gorm:"type:varchar(36)"`
	BillingAddressID  string               `gorm:"type:varchar(36)"`
	OrderDate         time.Time            `gorm:"not null"`
	ShipDate          *time.Time           `gorm:"default:null"`
	Status            string               `gorm:"type:varchar(30);not null;index"`
	InvoiceNumber     string               `gorm:"type:varchar(50)"`
	InvoiceDate       *time.Time           `gorm:"default:null"`
	Items             []order.Item         `gorm:"serializer:json"`
	Subtotal          decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Tax               decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Total             decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Notes             string               `gorm:"type:text"`
	Extension         shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *order.Order {
	return &order.Order{
		ID:                m.ID,
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		ShippingAddressID: m.ShippingAddressID,
		BillingAddressID:  m.BillingAddressID,
		OrderDate:         m.OrderDate,
		ShipDate:          m.ShipDate,
		Status:            order.Status(m.Status),
		InvoiceNumber:     m.InvoiceNumber,
		InvoiceDate:       m.InvoiceDate,
		Items:             m.Items,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		ShippingCost:      m.ShippingCost,
		Total:             m.Total,
		Notes:             m.Notes,
		Extension:         m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Order entity
func (m *OrderModel) FromDomain(o *order.Order) {
	m.ID = o.ID
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.ShippingAddressID = o.ShippingAddressID
	m.BillingAddressID = o.BillingAddressID
	m.OrderDate = o.OrderDate
	m.ShipDate = o.ShipDate
	m.Status = string(o.Status)
	m.InvoiceNumber = o.InvoiceNumber
	m.InvoiceDate = o.InvoiceDate
	m.Items = o.Items
	m.Subtotal = o.Subtotal
	m.Tax = o.Tax
	m.ShippingCost = o.ShippingCost
	m.Total = o.Total
	m.Notes = o.Notes
	m.Extension = o.Extension
}

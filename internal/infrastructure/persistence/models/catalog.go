package models

import (
	"github.com/shopspring/decimal"

	"github.com/edge/client/internal/domain/catalog"
	"github.com/edge/client/internal/domain/shared"
)

// ProductModel is the persistence model for the Product domain entity
type ProductModel struct {
	ID            string               `gorm:"type:varchar(36);primary_key"`
	ProductCode   string               `gorm:"type:varchar(50);uniqueIndex"`
	ProductName   string               `gorm:"type:varchar(200);not null"`
	Description   string               `gorm:"type:text"`
	UnitPrice     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Cost          decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	UnitOfMeasure string               `gorm:"type:varchar(20)"`
	Active        bool                 `gorm:"not null;default:true;index"`
	Extension     shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:            m.ID,
		ProductCode:   m.ProductCode,
		ProductName:   m.ProductName,
		Description:   m.Description,
		UnitPrice:     m.UnitPrice,
		Cost:          m.Cost,
		UnitOfMeasure: m.UnitOfMeasure,
		Active:        m.Active,
		Extension:     m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Product entity
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.ProductCode = p.ProductCode
	m.ProductName = p.ProductName
	m.Description = p.Description
	m.UnitPrice = p.UnitPrice
	m.Cost = p.Cost
	m.UnitOfMeasure = p.UnitOfMeasure
	m.Active = p.Active
	m.Extension = p.Extension
}

// WarehouseModel is the persistence model for the Warehouse domain entity
type WarehouseModel struct {
	ID            string               `gorm:"type:varchar(36);primary_key"`
	WarehouseCode string               `gorm:"type:varchar(50);uniqueIndex"`
	WarehouseName string               `gorm:"type:varchar(200);not null"`
	Address       string               `gorm:"type:text"`
	Description   string               `gorm:"type:text"`
	Active        bool                 `gorm:"not null;default:true"`
	Extension     shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse entity
func (m *WarehouseModel) ToDomain() *catalog.Warehouse {
	return &catalog.Warehouse{
		ID:            m.ID,
		WarehouseCode: m.WarehouseCode,
		WarehouseName: m.WarehouseName,
		Address:       m.Address,
		Description:   m.Description,
		Active:        m.Active,
		Extension:     m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Warehouse entity
func (m *WarehouseModel) FromDomain(w *catalog.Warehouse) {
	m.ID = w.ID
	m.WarehouseCode = w.WarehouseCode
	m.WarehouseName = w.WarehouseName
	m.Address = w.Address
	m.Description = w.Description
	m.Active = w.Active
	m.Extension = w.Extension
}

// InventoryModel is the persistence model for the Inventory domain entity
type InventoryModel struct {
	ID          string               `gorm:"type:varchar(36);primary_key"`
	ProductID   string               `gorm:"type:varchar(36);index"`
	WarehouseID string               `gorm:"type:varchar(36);index"`
	Quantity    int                  `gorm:"not null;default:0"`
	Extension   shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (InventoryModel) TableName() string {
	return "inventory"
}

// ToDomain converts the persistence model to a domain Inventory entity
func (m *InventoryModel) ToDomain() *catalog.Inventory {
	return &catalog.Inventory{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		Extension:   m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Inventory entity
func (m *InventoryModel) FromDomain(i *catalog.Inventory) {
	m.ID = i.ID
	m.ProductID = i.ProductID
	m.WarehouseID = i.WarehouseID
	m.Quantity = i.Quantity
	m.Extension = i.Extension
}

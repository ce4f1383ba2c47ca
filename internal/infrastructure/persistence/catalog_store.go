package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edge/client/internal/domain/catalog"
	"github.com/edge/client/internal/domain/shared"
	"github.com/edge/client/internal/infrastructure/persistence/models"
)

// ProductStore implements catalog.ProductGateway against the local database
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a new ProductStore
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// FetchAll returns all products
func (s *ProductStore) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FetchActive returns all products currently offered for sale
func (s *ProductStore) FetchActive(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := s.db.WithContext(ctx).Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FetchByID returns one product by id
func (s *ProductStore) FetchByID(ctx context.Context, id string) (*catalog.Product, error) {
	var row models.ProductModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create persists a new product, assigning the id
func (s *ProductStore) Create(ctx context.Context, entity *catalog.Product) (*catalog.Product, error) {
	p := *entity
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	var row models.ProductModel
	row.FromDomain(&p)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the stored product
func (s *ProductStore) Update(ctx context.Context, id string, entity *catalog.Product) (*catalog.Product, error) {
	if err := requireRow(s.db.WithContext(ctx), &models.ProductModel{}, id); err != nil {
		return nil, err
	}
	p := *entity
	p.ID = id
	var row models.ProductModel
	row.FromDomain(&p)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product. Deleting an unknown id is not an error.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id).Error
}

// WarehouseStore implements catalog.WarehouseGateway against the local
// database
type WarehouseStore struct {
	db *gorm.DB
}

// NewWarehouseStore creates a new WarehouseStore
func NewWarehouseStore(db *gorm.DB) *WarehouseStore {
	return &WarehouseStore{db: db}
}

// FetchAll returns all warehouses
func (s *WarehouseStore) FetchAll(ctx context.Context) ([]catalog.Warehouse, error) {
	var rows []models.WarehouseModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	warehouses := make([]catalog.Warehouse, len(rows))
	for i := range rows {
		warehouses[i] = *rows[i].ToDomain()
	}
	return warehouses, nil
}

// FetchByID returns one warehouse by id
func (s *WarehouseStore) FetchByID(ctx context.Context, id string) (*catalog.Warehouse, error) {
	var row models.WarehouseModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create persists a new warehouse, assigning the id
func (s *WarehouseStore) Create(ctx context.Context, entity *catalog.Warehouse) (*catalog.Warehouse, error) {
	w := *entity
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	var row models.WarehouseModel
	row.FromDomain(&w)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// Update replaces the stored warehouse
func (s *WarehouseStore) Update(ctx context.Context, id string, entity *catalog.Warehouse) (*catalog.Warehouse, error) {
	if err := requireRow(s.db.WithContext(ctx), &models.WarehouseModel{}, id); err != nil {
		return nil, err
	}
	w := *entity
	w.ID = id
	var row models.WarehouseModel
	row.FromDomain(&w)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// Delete removes a warehouse. Deleting an unknown id is not an error.
func (s *WarehouseStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.WarehouseModel{}, "id = ?", id).Error
}

// InventoryStore implements catalog.InventoryGateway against the local
// database
type InventoryStore struct {
	db *gorm.DB
}

// NewInventoryStore creates a new InventoryStore
func NewInventoryStore(db *gorm.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

// FetchAll returns all inventory records
func (s *InventoryStore) FetchAll(ctx context.Context) ([]catalog.Inventory, error) {
	var rows []models.InventoryModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]catalog.Inventory, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// FetchByID returns one inventory record by id
func (s *InventoryStore) FetchByID(ctx context.Context, id string) (*catalog.Inventory, error) {
	var row models.InventoryModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create persists a new inventory record, assigning the id
func (s *InventoryStore) Create(ctx context.Context, entity *catalog.Inventory) (*catalog.Inventory, error) {
	inv := *entity
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	var row models.InventoryModel
	row.FromDomain(&inv)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update replaces the stored inventory record
func (s *InventoryStore) Update(ctx context.Context, id string, entity *catalog.Inventory) (*catalog.Inventory, error) {
	if err := requireRow(s.db.WithContext(ctx), &models.InventoryModel{}, id); err != nil {
		return nil, err
	}
	inv := *entity
	inv.ID = id
	var row models.InventoryModel
	row.FromDomain(&inv)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// Delete removes an inventory record. Deleting an unknown id is not an
// error.
func (s *InventoryStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.InventoryModel{}, "id = ?", id).Error
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
	"github.com/edge/client/internal/infrastructure/persistence/models"
)

// CustomerStore implements partner.CustomerGateway against the local
// database
type CustomerStore struct {
	db *gorm.DB
}

// NewCustomerStore creates a new CustomerStore
func NewCustomerStore(db *gorm.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// FetchAll returns all customers
func (s *CustomerStore) FetchAll(ctx context.Context) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// FetchByID returns one customer by id
func (s *CustomerStore) FetchByID(ctx context.Context, id string) (*partner.Customer, error) {
	var row models.CustomerModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create persists a new customer, assigning the id
func (s *CustomerStore) Create(ctx context.Context, entity *partner.Customer) (*partner.Customer, error) {
	c := *entity
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	var row models.CustomerModel
	row.FromDomain(&c)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces the stored customer
func (s *CustomerStore) Update(ctx context.Context, id string, entity *partner.Customer) (*partner.Customer, error) {
	if err := requireRow(s.db.WithContext(ctx), &models.CustomerModel{}, id); err != nil {
		return nil, err
	}
	c := *entity
	c.ID = id
	var row models.CustomerModel
	row.FromDomain(&c)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a customer. Deleting an unknown id is not an error.
func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id).Error
}

// VendorStore implements partner.VendorGateway against the local database
type VendorStore struct {
	db *gorm.DB
}

// NewVendorStore creates a new VendorStore
func NewVendorStore(db *gorm.DB) *VendorStore {
	return &VendorStore{db: db}
}

// FetchAll returns all vendors
func (s *VendorStore) FetchAll(ctx context.Context) ([]partner.Vendor, error) {
	var rows []models.VendorModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	vendors := make([]partner.Vendor, len(rows))
	for i := range rows {
		vendors[i] = *rows[i].ToDomain()
	}
	return vendors, nil
}

// FetchByID returns one vendor by id
func (s *VendorStore) FetchByID(ctx context.Context, id string) (*partner.Vendor, error) {
	var row models.VendorModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create persists a new vendor, assigning the id
func (s *VendorStore) Create(ctx context.Context, entity *partner.Vendor) (*partner.Vendor, error) {
	v := *entity
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	var row models.VendorModel
	row.FromDomain(&v)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Update replaces the stored vendor
func (s *VendorStore) Update(ctx context.Context, id string, entity *partner.Vendor) (*partner.Vendor, error) {
	if err := requireRow(s.db.WithContext(ctx), &models.VendorModel{}, id); err != nil {
		return nil, err
	}
	v := *entity
	v.ID = id
	var row models.VendorModel
	row.FromDomain(&v)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a vendor. Deleting an unknown id is not an error.
func (s *VendorStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.VendorModel{}, "id = ?", id).Error
}

// AddressStore implements partner.AddressGateway against the local database.
// Delete cascades through every owner's association, the way the backend
// does it, so clients only ever observe consistent associations.
type AddressStore struct {
	db *gorm.DB
}

// NewAddressStore creates a new AddressStore
func NewAddressStore(db *gorm.DB) *AddressStore {
	return &AddressStore{db: db}
}

// FetchAll returns all addresses
func (s *AddressStore) FetchAll(ctx context.Context) ([]partner.Address, error) {
	var rows []models.AddressModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	addresses := make([]partner.Address, len(rows))
	for i := range rows {
		addresses[i] = *rows[i].ToDomain()
	}
	return addresses, nil
}

// FetchByID returns one address by id
func (s *AddressStore) FetchByID(ctx context.Context, id string) (*partner.Address, error) {
	var row models.AddressModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FetchByCustomer returns the addresses associated with the customer,
// resolved through the customer's association in id order. Dangling ids are
// skipped.
func (s *AddressStore) FetchByCustomer(ctx context.Context, customerID string) ([]partner.Address, error) {
	var customer models.CustomerModel
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []partner.Address{}, nil
		}
		return nil, err
	}

	ids := partner.AssociatedAddressIDs(customer.ToDomain())
	addresses := make([]partner.Address, 0, len(ids))
	for _, id := range ids {
		var row models.AddressModel
		if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		addresses = append(addresses, *row.ToDomain())
	}
	return addresses, nil
}

// Create persists a new address, assigning the id
func (s *AddressStore) Create(ctx context.Context, entity *partner.Address) (*partner.Address, error) {
	a := *entity
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	var row models.AddressModel
	row.FromDomain(&a)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces the stored address
func (s *AddressStore) Update(ctx context.Context, id string, entity *partner.Address) (*partner.Address, error) {
	if err := requireRow(s.db.WithContext(ctx), &models.AddressModel{}, id); err != nil {
		return nil, err
	}
	a := *entity
	a.ID = id
	var row models.AddressModel
	row.FromDomain(&a)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an address and its id from both association copies of
// every customer and vendor referencing it. Deleting an unknown id still
// runs the cascade and is not an error.
func (s *AddressStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customers []models.CustomerModel
		if err := tx.Find(&customers).Error; err != nil {
			return err
		}
		for i := range customers {
			c := customers[i].ToDomain()
			if !containsID(partner.AssociatedAddressIDs(c), id) {
				continue
			}
			partner.RemoveAddress(c, id)
			var row models.CustomerModel
			row.FromDomain(c)
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		var vendors []models.VendorModel
		if err := tx.Find(&vendors).Error; err != nil {
			return err
		}
		for i := range vendors {
			v := vendors[i].ToDomain()
			if !containsID(partner.AssociatedAddressIDs(v), id) {
				continue
			}
			partner.RemoveAddress(v, id)
			var row models.VendorModel
			row.FromDomain(v)
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.AddressModel{}, "id = ?", id).Error
	})
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// requireRow maps a missing row to shared.ErrNotFound before an update
func requireRow(db *gorm.DB, model any, id string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

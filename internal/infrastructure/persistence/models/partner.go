package models

import (
	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer domain entity.
// AddressIDs is stored as a JSON column; the extension bag carries a second
// copy of the association under the same key.
type CustomerModel struct {
	ID             string               `gorm:"type:varchar(36);primary_key"`
	CustomerNumber string               `gorm:"type:varchar(50);index"`
	CompanyName    string               `gorm:"type:varchar(200)"`
	FirstName      string               `gorm:"type:varchar(100)"`
	LastName       string               `gorm:"type:varchar(100)"`
	Email          string               `gorm:"type:varchar(200);index"`
	Phone          string               `gorm:"type:varchar(50)"`
	AddressIDs     []string             `gorm:"serializer:json"`
	Extension      shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		ID:             m.ID,
		CustomerNumber: m.CustomerNumber,
		CompanyName:    m.CompanyName,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		AddressIDs:     m.AddressIDs,
		Extension:      m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Customer entity
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.ID = c.ID
	m.CustomerNumber = c.CustomerNumber
	m.CompanyName = c.CompanyName
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.AddressIDs = c.AddressIDs
	m.Extension = c.Extension
}

// VendorModel is the persistence model for the Vendor domain entity
type VendorModel struct {
	ID           string               `gorm:"type:varchar(36);primary_key"`
	VendorNumber string               `gorm:"type:varchar(50);index"`
	CompanyName  string               `gorm:"type:varchar(200)"`
	FirstName    string               `gorm:"type:varchar(100)"`
	LastName     string               `gorm:"type:varchar(100)"`
	Email        string               `gorm:"type:varchar(200)"`
	Phone        string               `gorm:"type:varchar(50)"`
	AddressIDs   []string             `gorm:"serializer:json"`
	Extension    shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		ID:           m.ID,
		VendorNumber: m.VendorNumber,
		CompanyName:  m.CompanyName,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		AddressIDs:   m.AddressIDs,
		Extension:    m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Vendor entity
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.ID = v.ID
	m.VendorNumber = v.VendorNumber
	m.CompanyName = v.CompanyName
	m.FirstName = v.FirstName
	m.LastName = v.LastName
	m.Email = v.Email
	m.Phone = v.Phone
	m.AddressIDs = v.AddressIDs
	m.Extension = v.Extension
}

// AddressModel is the persistence model for the Address domain entity
type AddressModel struct {
	ID             string               `gorm:"type:varchar(36);primary_key"`
	CustomerID     string               `gorm:"type:varchar(36);index"`
	AddressType    string               `gorm:"type:varchar(20)"`
	StreetAddress1 string               `gorm:"type:varchar(200)"`
	StreetAddress2 string               `gorm:"type:varchar(200)"`
	City           string               `gorm:"type:varchar(100)"`
	State          string               `gorm:"type:varchar(100)"`
	PostalCode     string               `gorm:"type:varchar(20)"`
	Country        string               `gorm:"type:varchar(100)"`
	ContactName    string               `gorm:"type:varchar(100)"`
	ContactPhone   string               `gorm:"type:varchar(50)"`
	DefaultAddress bool                 `gorm:"not null;default:false"`
	Extension      shared.ExtensionData `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		ID:             m.ID,
		CustomerID:     m.CustomerID,
		AddressType:    m.AddressType,
		StreetAddress1: m.StreetAddress1,
		StreetAddress2: m.StreetAddress2,
		City:           m.City,
		State:          m.State,
		PostalCode:     m.PostalCode,
		Country:        m.Country,
		ContactName:    m.ContactName,
		ContactPhone:   m.ContactPhone,
		DefaultAddress: m.DefaultAddress,
		Extension:      m.Extension,
	}
}

// FromDomain populates the persistence model from a domain Address entity
func (m *AddressModel) FromDomain(a *partner.Address) {
	m.ID = a.ID
	m.CustomerID = a.CustomerID
	m.AddressType = a.AddressType
	m.StreetAddress1 = a.StreetAddress1
	m.StreetAddress2 = a.StreetAddress2
	m.City = a.City
	m.State = a.State
	m.PostalCode = a.PostalCode
	m.Country = a.Country
	m.ContactName = a.ContactName
	m.ContactPhone = a.ContactPhone
	m.DefaultAddress = a.DefaultAddress
	m.Extension = a.Extension
}

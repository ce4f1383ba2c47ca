package partner

import "github.com/edge/client/internal/domain/shared"

// Address types
const (
	AddressTypeShipping = "SHIPPING"
	AddressTypeBilling  = "BILLING"
)

// Address is an independently owned entity. Deleting an address cascades to
// every owner's association on the store side; the client only reflects the
// result on the next read.
type Address struct {
	ID             string               `json:"id,omitempty"`
	CustomerID     string               `json:"customerId,omitempty"`
	AddressType    string               `json:"addressType,omitempty"`
	StreetAddress1 string               `json:"streetAddress1,omitempty"`
	StreetAddress2 string               `json:"streetAddress2,omitempty"`
	City           string               `json:"city,omitempty"`
	State          string               `json:"state,omitempty"`
	PostalCode     string               `json:"postalCode,omitempty"`
	Country        string               `json:"country,omitempty"`
	ContactName    string               `json:"contactName,omitempty"`
	ContactPhone   string               `json:"contactPhone,omitempty"`
	DefaultAddress bool                 `json:"defaultAddress,omitempty"`
	Extension      shared.ExtensionData `json:"jsonData,omitempty"`
}

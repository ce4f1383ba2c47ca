package partner

import (
	"strings"

	"github.com/edge/client/internal/domain/shared"
)

// Vendor mirrors Customer as an address-association owner.
type Vendor struct {
	ID           string               `json:"id,omitempty"`
	VendorNumber string               `json:"vendorNumber,omitempty"`
	CompanyName  string               `json:"companyName,omitempty"`
	FirstName    string               `json:"firstName,omitempty"`
	LastName     string               `json:"lastName,omitempty"`
	Email        string               `json:"email,omitempty"`
	Phone        string               `json:"phone,omitempty"`
	AddressIDs   []string             `json:"addressIds,omitempty"`
	Extension    shared.ExtensionData `json:"jsonData,omitempty"`
}

// DisplayName returns the company name when present, otherwise the personal
// name, otherwise the email.
func (v *Vendor) DisplayName() string {
	if v.CompanyName != "" {
		return v.CompanyName
	}
	name := strings.TrimSpace(v.LastName + " " + v.FirstName)
	if name != "" {
		return name
	}
	return v.Email
}

func (v *Vendor) associationIDs() []string            { return v.AddressIDs }
func (v *Vendor) extension() shared.ExtensionData     { return v.Extension }
func (v *Vendor) setAssociationIDs(ids []string)      { v.AddressIDs = ids }
func (v *Vendor) setExtension(d shared.ExtensionData) { v.Extension = d }

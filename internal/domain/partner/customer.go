package partner

import (
	"strings"

	"github.com/edge/client/internal/domain/shared"
)

// Customer is an owner entity for address associations. AddressIDs is the
// typed association field; older records carry the same ids only inside the
// extension bag, which is why reads go through the association resolver.
type Customer struct {
	ID             string               `json:"id,omitempty"`
	CustomerNumber string               `json:"customerNumber,omitempty"`
	CompanyName    string               `json:"companyName,omitempty"`
	FirstName      string               `json:"firstName,omitempty"`
	LastName       string               `json:"lastName,omitempty"`
	Email          string               `json:"email,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	AddressIDs     []string             `json:"addressIds,omitempty"`
	Extension      shared.ExtensionData `json:"jsonData,omitempty"`
}

// DisplayName returns the company name when present, otherwise the personal
// name, otherwise the email.
func (c *Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	name := strings.TrimSpace(c.LastName + " " + c.FirstName)
	if name != "" {
		return name
	}
	return c.Email
}

func (c *Customer) associationIDs() []string            { return c.AddressIDs }
func (c *Customer) extension() shared.ExtensionData     { return c.Extension }
func (c *Customer) setAssociationIDs(ids []string)      { c.AddressIDs = ids }
func (c *Customer) setExtension(d shared.ExtensionData) { c.Extension = d }

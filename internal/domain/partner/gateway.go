package partner

import (
	"context"

	"github.com/edge/client/internal/domain/shared"
)

// CustomerGateway is the customer resource contract
type CustomerGateway = shared.Gateway[Customer]

// VendorGateway is the vendor resource contract
type VendorGateway = shared.Gateway[Vendor]

// AddressGateway is the address resource contract, extended with the
// customer-scoped lookup the entry step uses to offer address choices.
type AddressGateway interface {
	shared.Gateway[Address]
	FetchByCustomer(ctx context.Context, customerID string) ([]Address, error)
}

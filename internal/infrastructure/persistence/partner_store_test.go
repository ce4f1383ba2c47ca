package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
)

func TestCustomerStore_CRUD(t *testing.T) {
	db := newTestDB(t)
	store := NewCustomerStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, &partner.Customer{
		CompanyName: "Acme Corp",
		Email:       "sales@acme.example",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := store.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", fetched.CompanyName)

	fetched.Phone = "06-1234-5678"
	updated, err := store.Update(ctx, created.ID, fetched)
	require.NoError(t, err)
	assert.Equal(t, "06-1234-5678", updated.Phone)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = store.Update(ctx, "missing", fetched)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, store.Delete(ctx, created.ID))
	_, err = store.FetchByID(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddressStore_FetchByCustomer(t *testing.T) {
	db := newTestDB(t)
	customers := NewCustomerStore(db)
	addresses := NewAddressStore(db)
	ctx := context.Background()

	home, err := addresses.Create(ctx, &partner.Address{City: "Osaka"})
	require.NoError(t, err)
	office, err := addresses.Create(ctx, &partner.Address{City: "Tokyo"})
	require.NoError(t, err)

	t.Run("resolves the typed association in order", func(t *testing.T) {
		customer, err := customers.Create(ctx, &partner.Customer{
			CompanyName: "Typed Inc",
			AddressIDs:  []string{office.ID, home.ID, "dangling"},
		})
		require.NoError(t, err)

		got, err := addresses.FetchByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Tokyo", got[0].City)
		assert.Equal(t, "Osaka", got[1].City)
	})

	t.Run("falls back to the extension bag copy", func(t *testing.T) {
		customer, err := customers.Create(ctx, &partner.Customer{
			CompanyName: "Legacy Inc",
			Extension:   shared.ExtensionData{"addressIds": []any{home.ID}},
		})
		require.NoError(t, err)

		got, err := addresses.FetchByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Osaka", got[0].City)
	})

	t.Run("missing customer yields empty result", func(t *testing.T) {
		got, err := addresses.FetchByCustomer(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAddressStore_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	customers := NewCustomerStore(db)
	vendors := NewVendorStore(db)
	addresses := NewAddressStore(db)
	ctx := context.Background()

	doomed, err := addresses.Create(ctx, &partner.Address{City: "Nagoya"})
	require.NoError(t, err)
	kept, err := addresses.Create(ctx, &partner.Address{City: "Kyoto"})
	require.NoError(t, err)

	customer := &partner.Customer{CompanyName: "Acme Corp"}
	partner.AddAddress(customer, doomed.ID)
	partner.AddAddress(customer, kept.ID)
	customer, err = customers.Create(ctx, customer)
	require.NoError(t, err)

	vendor := &partner.Vendor{CompanyName: "Supplies Ltd"}
	partner.AddAddress(vendor, doomed.ID)
	vendor, err = vendors.Create(ctx, vendor)
	require.NoError(t, err)

	// Owner whose association only lives in the bag
	legacy, err := customers.Create(ctx, &partner.Customer{
		CompanyName: "Legacy Inc",
		Extension:   shared.ExtensionData{"addressIds": []any{doomed.ID}},
	})
	require.NoError(t, err)

	require.NoError(t, addresses.Delete(ctx, doomed.ID))

	_, err = addresses.FetchByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	refreshed, err := customers.FetchByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, partner.AssociatedAddressIDs(refreshed))
	// Both copies of the association were rewritten
	assert.Equal(t, []string{kept.ID}, refreshed.Extension.GetStringSlice("addressIds"))

	refreshedVendor, err := vendors.FetchByID(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Empty(t, partner.AssociatedAddressIDs(refreshedVendor))

	refreshedLegacy, err := customers.FetchByID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Empty(t, partner.AssociatedAddressIDs(refreshedLegacy))

	// Unknown id still succeeds
	require.NoError(t, addresses.Delete(ctx, "missing"))
}

func TestVendorStore_CRUD(t *testing.T) {
	db := newTestDB(t)
	store := NewVendorStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, &partner.Vendor{CompanyName: "Supplies Ltd"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := store.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Supplies Ltd", fetched.CompanyName)

	require.NoError(t, store.Delete(ctx, created.ID))
	_, err = store.FetchByID(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

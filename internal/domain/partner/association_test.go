package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge/client/internal/domain/shared"
)

func TestAssociatedAddressIDs(t *testing.T) {
	t.Run("typed field wins when non-empty", func(t *testing.T) {
		c := &Customer{
			AddressIDs: []string{"a1", "a2"},
			Extension:  shared.ExtensionData{"addressIds": []any{"a3"}},
		}
		assert.Equal(t, []string{"a1", "a2"}, AssociatedAddressIDs(c))
	})

	t.Run("falls back to the bag when typed field is empty", func(t *testing.T) {
		c := &Customer{
			Extension: shared.ExtensionData{"addressIds": []any{"a3", "a4"}},
		}
		assert.Equal(t, []string{"a3", "a4"}, AssociatedAddressIDs(c))
	})

	t.Run("empty when neither source has ids", func(t *testing.T) {
		assert.Empty(t, AssociatedAddressIDs(&Customer{}))
	})
}

func TestAddAddress(t *testing.T) {
	t.Run("writes both copies identically", func(t *testing.T) {
		c := &Customer{}
		AddAddress(c, "a1")
		AddAddress(c, "a2")

		assert.Equal(t, []string{"a1", "a2"}, c.AddressIDs)
		assert.Equal(t, []string{"a1", "a2"}, c.Extension.GetStringSlice("addressIds"))
	})

	t.Run("adding an existing id keeps the sequence unchanged", func(t *testing.T) {
		c := &Customer{AddressIDs: []string{"a1", "a2"}}
		AddAddress(c, "a1")

		assert.Equal(t, []string{"a1", "a2"}, c.AddressIDs)
		assert.Equal(t, []string{"a1", "a2"}, c.Extension.GetStringSlice("addressIds"))
	})

	t.Run("migrates a bag-only association into the typed field", func(t *testing.T) {
		c := &Customer{Extension: shared.ExtensionData{"addressIds": []any{"a1"}}}
		AddAddress(c, "a2")

		assert.Equal(t, []string{"a1", "a2"}, c.AddressIDs)
		assert.Equal(t, []string{"a1", "a2"}, c.Extension.GetStringSlice("addressIds"))
	})

	t.Run("preserves unrelated bag keys", func(t *testing.T) {
		c := &Customer{Extension: shared.ExtensionData{"tier": "gold"}}
		AddAddress(c, "a1")
		assert.Equal(t, "gold", c.Extension.GetString("tier"))
	})

	t.Run("the two copies never share a backing array", func(t *testing.T) {
		c := &Customer{}
		AddAddress(c, "a1")
		AddAddress(c, "a2")

		c.AddressIDs[0] = "mutated"

		assert.Equal(t, []string{"a1", "a2"}, c.Extension.GetStringSlice("addressIds"))
	})

	t.Run("works for vendors", func(t *testing.T) {
		v := &Vendor{}
		AddAddress(v, "a1")
		assert.Equal(t, []string{"a1"}, v.AddressIDs)
		assert.Equal(t, []string{"a1"}, v.Extension.GetStringSlice("addressIds"))
	})
}

func TestRemoveAddress(t *testing.T) {
	t.Run("removes from both copies", func(t *testing.T) {
		c := &Customer{}
		AddAddress(c, "a1")
		AddAddress(c, "a2")

		RemoveAddress(c, "a1")

		assert.Equal(t, []string{"a2"}, c.AddressIDs)
		assert.Equal(t, []string{"a2"}, c.Extension.GetStringSlice("addressIds"))
	})

	t.Run("removing an absent id still rewrites both copies", func(t *testing.T) {
		c := &Customer{Extension: shared.ExtensionData{"addressIds": []any{"a1"}}}
		RemoveAddress(c, "missing")

		assert.Equal(t, []string{"a1"}, c.AddressIDs)
		assert.Equal(t, []string{"a1"}, c.Extension.GetStringSlice("addressIds"))
	})
}

func TestCustomer_DisplayName(t *testing.T) {
	require.Equal(t, "Acme Corp", (&Customer{CompanyName: "Acme Corp"}).DisplayName())
	require.Equal(t, "Doe Jane", (&Customer{FirstName: "Jane", LastName: "Doe"}).DisplayName())
	require.Equal(t, "Jane", (&Customer{FirstName: "Jane"}).DisplayName())
	require.Equal(t, "x@y.z", (&Customer{Email: "x@y.z"}).DisplayName())
}

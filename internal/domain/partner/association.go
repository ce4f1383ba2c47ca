package partner

import "github.com/edge/client/internal/domain/shared"

// addressIDsKey is the legacy copy of the association inside the extension
// bag. Every write keeps it identical to the typed field so reads can fall
// back to it for records created before the typed field existed.
const addressIDsKey = "addressIds"

// AddressOwner is an entity carrying a many-to-many address association
// stored redundantly: a typed id array plus the same key in the extension
// bag. Customer and Vendor implement it.
type AddressOwner interface {
	associationIDs() []string
	extension() shared.ExtensionData
	setAssociationIDs(ids []string)
	setExtension(d shared.ExtensionData)
}

// AssociatedAddressIDs returns the owner's address ids. The typed array is
// authoritative when non-empty; otherwise the extension bag copy is used.
// The two sources are never merged.
func AssociatedAddressIDs(owner AddressOwner) []string {
	if ids := owner.associationIDs(); len(ids) > 0 {
		return ids
	}
	return owner.extension().GetStringSlice(addressIDsKey)
}

// AddAddress associates an address with the owner. Both copies of the
// association are set to the identical new sequence; the owner must then be
// persisted through its gateway for the change to take effect. Adding an
// already-associated id is a no-op.
func AddAddress(owner AddressOwner, addressID string) {
	ids := AssociatedAddressIDs(owner)
	for _, id := range ids {
		if id == addressID {
			writeBoth(owner, append([]string(nil), ids...))
			return
		}
	}
	next := make([]string, 0, len(ids)+1)
	next = append(next, ids...)
	next = append(next, addressID)
	writeBoth(owner, next)
}

// RemoveAddress dissociates an address from the owner. Removing an id that
// is not associated still rewrites both copies with the unchanged sequence.
func RemoveAddress(owner AddressOwner, addressID string) {
	ids := AssociatedAddressIDs(owner)
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != addressID {
			next = append(next, id)
		}
	}
	writeBoth(owner, next)
}

// writeBoth keeps the typed array and the bag copy byte-for-byte identical,
// which is what makes the read-time fallback safe. The bag gets its own
// backing array so mutating one copy can never reach the other.
func writeBoth(owner AddressOwner, ids []string) {
	owner.setAssociationIDs(ids)
	ext := owner.extension().Clone()
	if ext == nil {
		ext = make(shared.ExtensionData)
	}
	ext[addressIDsKey] = append([]string(nil), ids...)
	owner.setExtension(ext)
}

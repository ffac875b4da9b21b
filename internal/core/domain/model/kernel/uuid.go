package kernel

import (
	"fmt"

	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID that
// bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object of the domain. It wraps
// github.com/google/uuid so aggregates never depend on the library directly,
// and so the zero value is detectably invalid.
//
// UUID is immutable and safe for concurrent use. Construct one with NewUUID,
// UUIDFromString or UUIDFromBytes; a zero value fails Validate.
//
// Example usage:
//
//	orderID := kernel.NewUUID()
//
//	supplierID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID. This is the primary way to mint
// identifiers for new aggregates.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. It accepts the
// canonical form as well as the braced and urn:uuid: variants understood by
// uuid.Parse. Used when reconstructing aggregates from persistence or parsing
// identifiers from request paths.
//
// Example:
//
//	id, err := kernel.UUIDFromString(ctx.Param("id"))
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, typically when reading
// binary-encoded identifiers. The resulting UUID must not be the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// A zero value formats as the all-zero UUID.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for adapters that store
// identifiers in their native form. Prefer String for anything user-facing.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value. Aggregate
// constructors call this on every identifier they receive.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

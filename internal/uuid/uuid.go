package uuid

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// UUID wraps google's uuid.UUID so image IDs can be stored as BINARY(16)
// columns while still marshalling to their canonical text form in JSON.
type UUID uuid.UUID

// NewUUID returns a random v4 UUID.
func NewUUID() UUID {
	return UUID(uuid.New())
}

// Parse converts a canonical text representation into a UUID.
func Parse(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID(id), nil
}

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// Scan reads the 16 raw bytes a BINARY(16) column comes back as.
func (u *UUID) Scan(src interface{}) error {
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("UUID.Scan: expected []byte, got %T", src)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return err
	}
	*u = UUID(id)
	return nil
}

// Value hands the driver the 16-byte binary form.
func (u UUID) Value() (driver.Value, error) {
	return uuid.UUID(u).MarshalBinary()
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UUID) UnmarshalText(text []byte) error {
	id, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*u = UUID(id)
	return nil
}

package wrappers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anirudhraja/protolite/lazy"
	"github.com/anirudhraja/protolite/wire"
)

// UUIDConverter exposes a 16-byte bytes field as a uuid.UUID.
type UUIDConverter struct{}

var _ lazy.Converter[wire.Bytes, uuid.UUID] = UUIDConverter{}

// Wrap decodes the raw bytes. Anything other than 16 bytes is rejected.
func (UUIDConverter) Wrap(b wire.Bytes) (uuid.UUID, error) {
	if b.Len() != 16 {
		return uuid.Nil, fmt.Errorf("%w: got %d", ErrInvalidUUID, b.Len())
	}
	return uuid.FromBytes(b.Clone())
}

// Unwrap returns the 16 raw bytes of u.
func (UUIDConverter) Unwrap(u uuid.UUID) (wire.Bytes, error) {
	return wire.BytesOf(u[:]), nil
}

// UUIDRef is the reference type of a UUID-wrapped bytes field.
type UUIDRef = lazy.Reference[wire.Bytes, uuid.UUID]

// NewUUIDRef wraps a domain UUID.
func NewUUIDRef(u uuid.UUID) *UUIDRef {
	return lazy.FromDomain[wire.Bytes, uuid.UUID](UUIDConverter{}, u)
}

// ReadUUIDRef reads a bytes field without converting it.
func ReadUUIDRef(r *wire.Reader) (*UUIDRef, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return lazy.FromWire[wire.Bytes, uuid.UUID](UUIDConverter{}, b), nil
}

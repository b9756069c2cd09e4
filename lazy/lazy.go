// Package lazy holds the reference cells behind wrapper-typed fields.
//
// A wrapper-typed field exposes a domain value (a UUID, a time.Time) in place
// of the wire value it is encoded as. The cell defers the conversion between
// the two until one side is asked for and remembers the result, so a message
// that is decoded and re-encoded without touching the field never converts
// at all.
//
// Cells are safe for concurrent use without locking. Two goroutines may both
// convert the same cell; one result wins. Converters must therefore be pure,
// deterministic functions of their input.
package lazy

import (
	"sync/atomic"

	"github.com/anirudhraja/protolite/wire"
)

// Converter maps between a wire representation W and a domain
// representation D.
type Converter[W, D any] interface {
	// Wrap converts a decoded wire value to its domain value. It fails when
	// the wire value is not a valid encoding of the domain type.
	Wrap(W) (D, error)
	// Unwrap converts a domain value back to its wire value. It fails when
	// the domain value has no valid encoding.
	Unwrap(D) (W, error)
}

// ConverterFuncs adapts a pair of functions to Converter.
type ConverterFuncs[W, D any] struct {
	WrapFunc   func(W) (D, error)
	UnwrapFunc func(D) (W, error)
}

func (c ConverterFuncs[W, D]) Wrap(w W) (D, error)   { return c.WrapFunc(w) }
func (c ConverterFuncs[W, D]) Unwrap(d D) (W, error) { return c.UnwrapFunc(d) }

// WireCodec encodes the wire form of a wrapper-typed field.
type WireCodec[W any] interface {
	// Size returns the encoded size of w, excluding the field tag.
	Size(W) int
	// Write writes w, excluding the field tag.
	Write(*wire.Writer, W) error
	// IsDefault reports whether w is the default value proto3 omits.
	IsDefault(W) bool
}

// state is one published content of a cell. At least one form is present.
type state[W, D any] struct {
	wire      W
	domain    D
	hasWire   bool
	hasDomain bool
}

// cell is the shared machinery of Reference and CachingReference. Converting
// to the wire form always keeps the domain form. Converting to the domain form
// drops the wire form unless retain is set. Either way a cell converts at most
// once in each direction.
type cell[W, D any] struct {
	p      atomic.Pointer[state[W, D]]
	conv   Converter[W, D]
	retain bool
}

func (c *cell[W, D]) init(s *state[W, D], conv Converter[W, D], retain bool) {
	c.conv = conv
	c.retain = retain
	c.p.Store(s)
}

func (c *cell[W, D]) value() (D, error) {
	s := c.p.Load()
	if s.hasDomain {
		return s.domain, nil
	}
	d, err := c.conv.Wrap(s.wire)
	if err != nil {
		var zero D
		return zero, err
	}
	next := &state[W, D]{domain: d, hasDomain: true}
	if c.retain {
		next.wire, next.hasWire = s.wire, true
	}
	if !c.p.CompareAndSwap(s, next) {
		// Another goroutine converted first; its result is equal.
		if cur := c.p.Load(); cur.hasDomain {
			return cur.domain, nil
		}
	}
	return d, nil
}

func (c *cell[W, D]) wireValue() (W, error) {
	s := c.p.Load()
	if s.hasWire {
		return s.wire, nil
	}
	w, err := c.conv.Unwrap(s.domain)
	if err != nil {
		var zero W
		return zero, err
	}
	next := &state[W, D]{wire: w, hasWire: true, domain: s.domain, hasDomain: true}
	if !c.p.CompareAndSwap(s, next) {
		if cur := c.p.Load(); cur.hasWire {
			return cur.wire, nil
		}
	}
	return w, nil
}

// peekWire returns the wire form without converting, when it is cached.
func (c *cell[W, D]) peekWire() (W, bool) {
	s := c.p.Load()
	return s.wire, s.hasWire
}

func (c *cell[W, D]) isDomain() bool {
	return c.p.Load().hasDomain
}

// Reference is a single-slot cell holding the wire form or the domain form of
// a wrapper-typed field. Value converts wire to domain and releases the wire
// form. WireValue converts domain to wire and then keeps both, since a value
// being serialized is usually sized and written back to back.
type Reference[W, D any] struct {
	c cell[W, D]
}

// FromWire creates a Reference holding a decoded wire value.
func FromWire[W, D any](conv Converter[W, D], w W) *Reference[W, D] {
	r := &Reference[W, D]{}
	r.c.init(&state[W, D]{wire: w, hasWire: true}, conv, false)
	return r
}

// FromDomain creates a Reference holding a domain value.
func FromDomain[W, D any](conv Converter[W, D], d D) *Reference[W, D] {
	r := &Reference[W, D]{}
	r.c.init(&state[W, D]{domain: d, hasDomain: true}, conv, false)
	return r
}

// Value returns the domain form, converting and caching it on first use.
func (r *Reference[W, D]) Value() (D, error) { return r.c.value() }

// WireValue returns the wire form, converting and caching it on first use.
// A failed conversion is not cached.
func (r *Reference[W, D]) WireValue() (W, error) { return r.c.wireValue() }

// IsDomain reports whether the domain form is currently cached.
func (r *Reference[W, D]) IsDomain() bool { return r.c.isDomain() }

// Size returns the encoded size of the field value, excluding its tag. A
// domain value that cannot be encoded sizes as 0; Write reports its error.
func (r *Reference[W, D]) Size(codec WireCodec[W]) int { return size(&r.c, codec) }

// Write writes the field value, excluding its tag.
func (r *Reference[W, D]) Write(w *wire.Writer, codec WireCodec[W]) error {
	return write(&r.c, w, codec)
}

// IsDefault reports whether the field holds its default value. A domain
// value that cannot be encoded is never default, so Write gets to fail.
func (r *Reference[W, D]) IsDefault(codec WireCodec[W]) bool { return isDefault(&r.c, codec) }

// Equal compares the domain forms of r and o with eq. Both sides are
// converted; a side that fails to convert is unequal to everything.
func (r *Reference[W, D]) Equal(o *Reference[W, D], eq func(a, b D) bool) bool {
	if r == nil || o == nil {
		return r == o
	}
	return equal(&r.c, &o.c, eq)
}

// Hash hashes the domain form with h, converting it if needed.
func (r *Reference[W, D]) Hash(h func(D) uint64) uint64 { return hash(&r.c, h) }

// CachingReference is a Reference that never releases a form: after Value,
// the decoded wire form is still available for re-serialization without
// converting back.
type CachingReference[W, D any] struct {
	c cell[W, D]
}

// CachingFromWire creates a CachingReference holding a decoded wire value.
func CachingFromWire[W, D any](conv Converter[W, D], w W) *CachingReference[W, D] {
	r := &CachingReference[W, D]{}
	r.c.init(&state[W, D]{wire: w, hasWire: true}, conv, true)
	return r
}

// CachingFromDomain creates a CachingReference holding a domain value.
func CachingFromDomain[W, D any](conv Converter[W, D], d D) *CachingReference[W, D] {
	r := &CachingReference[W, D]{}
	r.c.init(&state[W, D]{domain: d, hasDomain: true}, conv, true)
	return r
}

func (r *CachingReference[W, D]) Value() (D, error)     { return r.c.value() }
func (r *CachingReference[W, D]) WireValue() (W, error) { return r.c.wireValue() }
func (r *CachingReference[W, D]) IsDomain() bool        { return r.c.isDomain() }

func (r *CachingReference[W, D]) Size(codec WireCodec[W]) int {
	return size(&r.c, codec)
}

func (r *CachingReference[W, D]) Write(w *wire.Writer, codec WireCodec[W]) error {
	return write(&r.c, w, codec)
}

func (r *CachingReference[W, D]) IsDefault(codec WireCodec[W]) bool {
	return isDefault(&r.c, codec)
}

func (r *CachingReference[W, D]) Equal(o *CachingReference[W, D], eq func(a, b D) bool) bool {
	if r == nil || o == nil {
		return r == o
	}
	return equal(&r.c, &o.c, eq)
}

func (r *CachingReference[W, D]) Hash(h func(D) uint64) uint64 { return hash(&r.c, h) }

// Codec queries read the wire form when it is cached and only otherwise
// convert from the domain form.

func size[W, D any](c *cell[W, D], codec WireCodec[W]) int {
	if w, ok := c.peekWire(); ok {
		return codec.Size(w)
	}
	w, err := c.wireValue()
	if err != nil {
		return 0
	}
	return codec.Size(w)
}

func write[W, D any](c *cell[W, D], w *wire.Writer, codec WireCodec[W]) error {
	if v, ok := c.peekWire(); ok {
		return codec.Write(w, v)
	}
	v, err := c.wireValue()
	if err != nil {
		return err
	}
	return codec.Write(w, v)
}

func isDefault[W, D any](c *cell[W, D], codec WireCodec[W]) bool {
	if w, ok := c.peekWire(); ok {
		return codec.IsDefault(w)
	}
	w, err := c.wireValue()
	if err != nil {
		return false
	}
	return codec.IsDefault(w)
}

func equal[W, D any](a, b *cell[W, D], eq func(a, b D) bool) bool {
	da, err := a.value()
	if err != nil {
		return false
	}
	db, err := b.value()
	if err != nil {
		return false
	}
	return eq(da, db)
}

func hash[W, D any](c *cell[W, D], h func(D) uint64) uint64 {
	d, err := c.value()
	if err != nil {
		return 0
	}
	return h(d)
}

package group

import (
	"errors"
	"io"
)

// ErrScalarEncoding is returned when a byte string cannot be decoded into a
// canonical scalar.
var ErrScalarEncoding = errors.New("group: invalid scalar encoding")

// Scalar represents an element of the scalar field associated with a
// cryptographic group. Scalars are integers modulo the group order.
//
// All arithmetic methods modify the receiver, store the result in it, and
// return it.
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// SetUint64 sets the receiver to v (mod order) and returns it.
	SetUint64(v uint64) Scalar
	// Bytes returns the fixed-width big-endian encoding of the scalar.
	Bytes() []byte
	// SetBytes sets the receiver from big-endian bytes of any length,
	// reduced modulo the group order.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
}

// Point represents an element of a prime-order group.
//
// The identity element is the additive identity: P + Identity = P.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a compressed encoding and returns it.
	// Returns an error if the data is not a valid group element.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group bundles a prime-order group with its scalar field.
//
// Example usage:
//
//	g := &bn254.BN254{}
//	scalar, _ := g.RandomScalar(rand.Reader)
//	point := g.NewPoint().ScalarMult(scalar, g.Generator())
type Group interface {
	// Name returns a short stable identifier such as "bn254".
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's fixed base point.
	Generator() Point
	// RandomScalar returns a uniformly random scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// HashToScalar hashes the input data to a scalar. Each part is length
	// framed, so ("ab", "c") and ("a", "bc") hash differently.
	HashToScalar(data ...[]byte) (Scalar, error)
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
	// DecodeScalar interprets data as a little-endian integer, clears the
	// bits at and above the bit length of the order, and returns the
	// resulting scalar. It fails with ErrScalarEncoding if data is wider
	// than a scalar or the value is not below the order.
	DecodeScalar(data []byte) (Scalar, error)
}

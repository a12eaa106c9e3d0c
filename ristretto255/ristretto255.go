package ristretto255

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	circl "github.com/cloudflare/circl/group"
	"github.com/f3rmion/spongefish/group"
)

// ScalarSize is the width in bytes of an encoded scalar or point.
const ScalarSize = 32

var hashDST = []byte("spongefish-ristretto255-h2s")

// groupOrder is l = 2^252 + 27742317777372353535851937790883648493.
var groupOrder, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Scalar is an integer modulo l, backed by circl's ristretto255 scalar.
type Scalar struct {
	inner circl.Scalar
}

func newScalar() *Scalar {
	return &Scalar{inner: circl.Ristretto255.NewScalar()}
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.inner.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Inv(aScalar.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.inner.SetUint64(v)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s. circl marshals
// little-endian, so the bytes are reversed.
func (s *Scalar) Bytes() []byte {
	le, err := s.inner.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return reverse(le)
}

// SetBytes sets s from big-endian bytes of any length, reduced modulo l.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	v := new(big.Int).SetBytes(data)
	s.inner.SetBigInt(v.Mod(v, groupOrder))
	return s, nil
}

// Equal reports whether s and b are equal.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.IsEqual(b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// String returns the hex encoding of s.
func (s *Scalar) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}

// Point is an element of the ristretto255 group.
type Point struct {
	inner circl.Element
}

func newPoint() *Point {
	return &Point{inner: circl.Ristretto255.Identity()}
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	negB := circl.Ristretto255.NewElement().Neg(b.(*Point).inner)
	p.inner.Add(a.(*Point).inner, negB)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.Mul(q.(*Point).inner, s.(*Scalar).inner)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(a.(*Point).inner)
	return p
}

// Bytes returns the canonical 32-byte ristretto255 encoding of p.
func (p *Point) Bytes() []byte {
	b, err := p.inner.MarshalBinaryCompress()
	if err != nil {
		panic(err)
	}
	return b
}

// SetBytes sets p from a canonical ristretto255 encoding.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	e := circl.Ristretto255.NewElement()
	if err := e.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("ristretto255: invalid point: %w", err)
	}
	p.inner = e
	return p, nil
}

// Equal reports whether p and b are the same group element.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.IsEqual(b.(*Point).inner)
}

// IsIdentity reports whether p is the identity.
func (p *Point) IsIdentity() bool {
	return p.inner.IsIdentity()
}

// String returns the hex encoding of p.
func (p *Point) String() string {
	return fmt.Sprintf("%x", p.Bytes())
}

// Ristretto255 implements [group.Group] for the ristretto255 prime-order
// group built on edwards25519.
type Ristretto255 struct{}

// Name returns "ristretto255".
func (g *Ristretto255) Name() string {
	return "ristretto255"
}

// NewScalar returns a new zero scalar.
func (g *Ristretto255) NewScalar() group.Scalar {
	return newScalar()
}

// NewPoint returns a new identity element.
func (g *Ristretto255) NewPoint() group.Point {
	return newPoint()
}

// Generator returns the canonical ristretto255 generator.
func (g *Ristretto255) Generator() group.Point {
	return &Point{inner: circl.Ristretto255.Generator()}
}

// RandomScalar reads 64 bytes from r and reduces them modulo l.
// circl's own RandomScalar ignores its reader, so sampling is done here.
func (g *Ristretto255) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return newScalar().SetBytes(buf[:])
}

// HashToScalar hashes the length-framed parts of data with circl's
// expand_message_xmd (SHA-512) hash-to-scalar.
func (g *Ristretto255) HashToScalar(data ...[]byte) (group.Scalar, error) {
	msg := group.FrameParts(data...)
	return &Scalar{inner: circl.Ristretto255.HashToScalar(msg, hashDST)}, nil
}

// Order returns l as a big-endian byte slice.
func (g *Ristretto255) Order() []byte {
	return groupOrder.Bytes()
}

// DecodeScalar decodes little-endian bytes into a scalar following the
// rules of [group.Group.DecodeScalar]. l is 253 bits wide, so the top three
// bits of a 32-byte input are cleared.
func (g *Ristretto255) DecodeScalar(data []byte) (group.Scalar, error) {
	v, err := group.DecodeLittleEndian(data, ScalarSize, groupOrder)
	if err != nil {
		return nil, err
	}
	s := newScalar()
	s.inner.SetBigInt(v)
	return s, nil
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

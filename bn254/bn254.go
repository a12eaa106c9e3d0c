package bn254

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/f3rmion/spongefish/group"
)

// hashDST is the domain separation tag used by HashToScalar.
const hashDST = "SPONGEFISH-BN254-HashToScalar-v1"

var g1Gen curve.G1Affine

func init() {
	_, _, g1Gen, _ = curve.Generators()
}

// Scalar is an element of the BN254 scalar field Fr.
// It implements [group.Scalar] by wrapping gnark-crypto's fr.Element.
type Scalar struct {
	inner fr.Element
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.inner.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Inverse(&aScalar.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.inner.SetUint64(v)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from big-endian bytes, reduced modulo r.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	s.inner.SetBigInt(new(big.Int).SetBytes(data))
	return s, nil
}

// Equal reports whether s and b are the same field element.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// String returns the decimal representation of s.
func (s *Scalar) String() string {
	return s.inner.String()
}

// Element returns a copy of the underlying field element.
func (s *Scalar) Element() fr.Element {
	return s.inner
}

// Point is a point of the BN254 G1 group in affine coordinates.
// The identity is the point at infinity.
type Point struct {
	inner curve.G1Affine
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	p.inner.Sub(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var k big.Int
	s.(*Scalar).inner.BigInt(&k)
	p.inner.ScalarMultiplication(&q.(*Point).inner, &k)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns gnark-crypto's 32-byte compressed encoding of p with the
// byte order reversed, so the x-coordinate is little-endian and the two
// compression flag bits sit in the top bits of the last byte.
func (p *Point) Bytes() []byte {
	be := p.inner.Bytes()
	out := make([]byte, len(be))
	for i := range be {
		out[len(be)-1-i] = be[i]
	}
	return out
}

// SetBytes sets p from the encoding produced by Bytes.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != curve.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("bn254: point encoding must be %d bytes, got %d",
			curve.SizeOfG1AffineCompressed, len(data))
	}
	be := make([]byte, len(data))
	for i := range data {
		be[len(data)-1-i] = data[i]
	}
	var q curve.G1Affine
	if _, err := q.SetBytes(be); err != nil {
		return nil, fmt.Errorf("bn254: invalid point: %w", err)
	}
	p.inner = q
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// String returns the hex encoding of the compressed point.
func (p *Point) String() string {
	return fmt.Sprintf("%x", p.Bytes())
}

// BN254 implements [group.Group] for the G1 group of the BN254 pairing curve
// together with its scalar field Fr. It is the pairing the Poseidon
// transcript is defined for.
type BN254 struct{}

// Name returns "bn254".
func (g *BN254) Name() string {
	return "bn254"
}

// NewScalar returns a new zero scalar.
func (g *BN254) NewScalar() group.Scalar {
	return &Scalar{}
}

// NewPoint returns a new point at infinity.
func (g *BN254) NewPoint() group.Point {
	var p Point
	p.inner.SetInfinity()
	return &p
}

// Generator returns the standard G1 generator (1, 2).
func (g *BN254) Generator() group.Point {
	var p Point
	p.inner.Set(&g1Gen)
	return &p
}

// RandomScalar reads 64 bytes from r and reduces them modulo r, which makes
// the result statistically uniform.
func (g *BN254) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := &Scalar{}
	s.inner.SetBigInt(new(big.Int).SetBytes(buf[:]))
	return s, nil
}

// HashToScalar hashes the length-framed parts of data to Fr using
// gnark-crypto's expand_message_xmd based hash-to-field.
func (g *BN254) HashToScalar(data ...[]byte) (group.Scalar, error) {
	elems, err := fr.Hash(group.FrameParts(data...), []byte(hashDST), 1)
	if err != nil {
		return nil, err
	}
	return &Scalar{inner: elems[0]}, nil
}

// Order returns r as a big-endian byte slice.
func (g *BN254) Order() []byte {
	return fr.Modulus().Bytes()
}

// DecodeScalar decodes little-endian bytes into Fr following the rules of
// [group.Group.DecodeScalar]. Fr is 254 bits wide, so the two top bits of a
// 32-byte input are cleared.
func (g *BN254) DecodeScalar(data []byte) (group.Scalar, error) {
	v, err := group.DecodeLittleEndian(data, fr.Bytes, fr.Modulus())
	if err != nil {
		return nil, err
	}
	s := &Scalar{}
	s.inner.SetBigInt(v)
	return s, nil
}

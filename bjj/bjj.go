package bjj

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/f3rmion/spongefish/group"
	"golang.org/x/crypto/blake2b"
)

const (
	scalarSize = 32
	pointSize  = 32
)

var (
	hashPrefix = []byte("spongefish-bjj-h2s")

	params = twistededwards.GetEdwardsCurve()

	// order is the prime subgroup order l, not the BN254 scalar field.
	order = new(big.Int).Set(&params.Order)
)

// Scalar is an integer modulo the Baby Jubjub subgroup order. The zero
// value is the scalar 0.
type Scalar struct {
	v big.Int
}

// mod reduces s.v into [0, order) and returns s.
func (s *Scalar) mod() *Scalar {
	s.v.Mod(&s.v, order)
	return s
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.v.Add(&a.(*Scalar).v, &b.(*Scalar).v)
	return s.mod()
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.v.Sub(&a.(*Scalar).v, &b.(*Scalar).v)
	return s.mod()
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.v.Mul(&a.(*Scalar).v, &b.(*Scalar).v)
	return s.mod()
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.v.Neg(&a.(*Scalar).v)
	return s.mod()
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	x := a.(*Scalar)
	if x.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.v.ModInverse(&x.v, order)
	return s, nil
}

func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.v.Set(&a.(*Scalar).v)
	return s
}

func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.v.SetUint64(v)
	return s.mod()
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.v.FillBytes(make([]byte, scalarSize))
}

// SetBytes sets s from big-endian bytes, reduced modulo the subgroup order.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	s.v.SetBytes(data)
	return s.mod(), nil
}

func (s *Scalar) Equal(b group.Scalar) bool {
	return s.v.Cmp(&b.(*Scalar).v) == 0
}

func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// String returns the decimal representation of s.
func (s *Scalar) String() string {
	return s.v.String()
}

// BigInt returns a copy of s as a big.Int.
func (s *Scalar) BigInt() *big.Int {
	return new(big.Int).Set(&s.v)
}

// Point is a Baby Jubjub point in affine twisted Edwards coordinates,
// wrapping gnark-crypto's PointAffine. The identity is (0, 1), so the zero
// value is not a valid point; obtain points from [BJJ.NewPoint].
type Point struct {
	inner twistededwards.PointAffine
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg twistededwards.PointAffine
	neg.Neg(&b.(*Point).inner)
	p.inner.Add(&a.(*Point).inner, &neg)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*Point).inner, &s.(*Scalar).v)
	return p
}

func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns gnark-crypto's 32-byte compressed encoding: y little-endian
// with the sign of x in the top bit.
func (p *Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes decodes a compressed point. The encoding must be canonical and
// name a point of the prime-order subgroup. p is left unchanged on error.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("bjj: point must be %d bytes, got %d", pointSize, len(data))
	}
	var q twistededwards.PointAffine
	if err := q.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("bjj: invalid point: %w", err)
	}
	if enc := q.Bytes(); !bytes.Equal(enc[:], data) || !q.IsOnCurve() {
		return nil, errors.New("bjj: invalid point: not on curve")
	}
	var torsion twistededwards.PointAffine
	if !torsion.ScalarMultiplication(&q, order).IsZero() {
		return nil, errors.New("bjj: invalid point: not in prime-order subgroup")
	}
	p.inner = q
	return p, nil
}

func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*Point).inner)
}

// IsIdentity reports whether p is (0, 1).
func (p *Point) IsIdentity() bool {
	return p.inner.IsZero()
}

// String returns the hex encoding of the compressed point.
func (p *Point) String() string {
	return fmt.Sprintf("%x", p.Bytes())
}

// BJJ implements [group.Group] for the Baby Jubjub prime-order subgroup.
type BJJ struct{}

func (g *BJJ) Name() string { return "bjj" }

func (g *BJJ) NewScalar() group.Scalar { return &Scalar{} }

// NewPoint returns the identity (0, 1).
func (g *BJJ) NewPoint() group.Point {
	p := &Point{}
	p.inner.Y.SetOne()
	return p
}

// Generator returns gnark-crypto's base point of the prime subgroup.
func (g *BJJ) Generator() group.Point {
	return &Point{inner: params.Base}
}

// RandomScalar reads 64 bytes from r and reduces them modulo the subgroup
// order.
func (g *BJJ) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := &Scalar{}
	s.v.SetBytes(buf[:])
	return s.mod(), nil
}

// HashToScalar reduces a prefixed BLAKE2b-512 digest of the length-framed
// parts of data modulo the subgroup order.
func (g *BJJ) HashToScalar(data ...[]byte) (group.Scalar, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	h.Write(hashPrefix)
	h.Write(group.FrameParts(data...))
	s := &Scalar{}
	s.v.SetBytes(h.Sum(nil))
	return s.mod(), nil
}

// Order returns the subgroup order, big-endian.
func (g *BJJ) Order() []byte {
	return order.Bytes()
}

// DecodeScalar implements [group.Group.DecodeScalar]. The order is 251 bits
// wide, so the top five bits of a 32-byte input are cleared.
func (g *BJJ) DecodeScalar(data []byte) (group.Scalar, error) {
	v, err := group.DecodeLittleEndian(data, scalarSize, order)
	if err != nil {
		return nil, err
	}
	s := &Scalar{}
	s.v.Set(v)
	return s, nil
}

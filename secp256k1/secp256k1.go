package secp256k1

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/f3rmion/spongefish/group"
	"golang.org/x/crypto/sha3"
)

const (
	// ScalarSize is the width in bytes of an encoded scalar.
	ScalarSize = 32

	// PointSize is the width in bytes of a compressed point.
	PointSize = btcec.PubKeyBytesLenCompressed
)

var hashPrefix = []byte("spongefish-secp256k1-h2s")

// curveOrder is n, the order of the secp256k1 base point.
var curveOrder = new(big.Int).Set(btcec.S256().N)

// Scalar is an integer modulo n. It implements [group.Scalar] on top of
// btcec's constant-time ModNScalar.
type Scalar struct {
	inner btcec.ModNScalar
}

// setBig sets s to v mod n.
func (s *Scalar) setBig(v *big.Int) *Scalar {
	r := new(big.Int).Mod(v, curveOrder)
	s.inner.SetByteSlice(r.FillBytes(make([]byte, ScalarSize)))
	return s
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	var negB btcec.ModNScalar
	negB.NegateVal(&b.(*Scalar).inner)
	s.inner.Add2(&a.(*Scalar).inner, &negB)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.NegateVal(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.inner.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.InverseValNonConst(&aScalar.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	return s.setBig(new(big.Int).SetUint64(v))
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from big-endian bytes of any length, reduced modulo n.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	return s.setBig(new(big.Int).SetBytes(data)), nil
}

// Equal reports whether s and b are equal.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equals(&b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// String returns the hex encoding of s.
func (s *Scalar) String() string {
	return s.inner.String()
}

// Point is a secp256k1 curve point. The point at infinity is the identity.
//
// The Jacobian representation is kept normalized with Z = 1 for finite
// points and all-zero coordinates for the identity.
type Point struct {
	inner btcec.JacobianPoint
}

func (p *Point) isInfinity() bool {
	return (p.inner.X.IsZero() && p.inner.Y.IsZero()) || p.inner.Z.IsZero()
}

func (p *Point) normalize() *Point {
	if p.isInfinity() {
		p.inner = btcec.JacobianPoint{}
		return p
	}
	p.inner.ToAffine()
	return p
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	var r btcec.JacobianPoint
	btcec.AddNonConst(&a.(*Point).inner, &b.(*Point).inner, &r)
	p.inner = r
	return p.normalize()
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var negB Point
	negB.Negate(b)
	return p.Add(a, &negB)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	if p.isInfinity() {
		return p.normalize()
	}
	p.inner.Y.Normalize().Negate(1).Normalize()
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var r btcec.JacobianPoint
	btcec.ScalarMultNonConst(&s.(*Scalar).inner, &q.(*Point).inner, &r)
	p.inner = r
	return p.normalize()
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 33-byte SEC1 compressed encoding of p. The identity
// encodes as 33 zero bytes.
func (p *Point) Bytes() []byte {
	if p.isInfinity() {
		return make([]byte, PointSize)
	}
	return btcec.JacobianToByteSlice(p.inner)
}

// SetBytes sets p from the encoding produced by Bytes.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != PointSize {
		return nil, fmt.Errorf("secp256k1: point encoding must be %d bytes, got %d",
			PointSize, len(data))
	}
	if isZero(data) {
		p.inner = btcec.JacobianPoint{}
		return p, nil
	}
	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("secp256k1: invalid point: %w", err)
	}
	pub.AsJacobian(&p.inner)
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.EquivalentNonConst(&b.(*Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.isInfinity()
}

// String returns the hex encoding of the compressed point.
func (p *Point) String() string {
	return fmt.Sprintf("%x", p.Bytes())
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Secp256k1 implements [group.Group] for the secp256k1 curve.
type Secp256k1 struct{}

// Name returns "secp256k1".
func (g *Secp256k1) Name() string {
	return "secp256k1"
}

// NewScalar returns a new zero scalar.
func (g *Secp256k1) NewScalar() group.Scalar {
	return &Scalar{}
}

// NewPoint returns a new point at infinity.
func (g *Secp256k1) NewPoint() group.Point {
	return &Point{}
}

// Generator returns the standard base point G.
func (g *Secp256k1) Generator() group.Point {
	var p Point
	btcec.GeneratorJacobian(&p.inner)
	return p.normalize()
}

// RandomScalar reads 64 bytes from r and reduces them modulo n.
func (g *Secp256k1) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return new(Scalar).setBig(new(big.Int).SetBytes(buf[:])), nil
}

// HashToScalar hashes the length-framed parts of data with SHA3-512 and
// reduces the digest modulo n.
func (g *Secp256k1) HashToScalar(data ...[]byte) (group.Scalar, error) {
	h := sha3.New512()
	h.Write(hashPrefix)
	h.Write(group.FrameParts(data...))
	return new(Scalar).setBig(new(big.Int).SetBytes(h.Sum(nil))), nil
}

// Order returns n as a big-endian byte slice.
func (g *Secp256k1) Order() []byte {
	return curveOrder.Bytes()
}

// DecodeScalar decodes little-endian bytes into a scalar following the
// rules of [group.Group.DecodeScalar]. Since n is 256 bits wide no bits
// are cleared and inputs at or above n are rejected.
func (g *Secp256k1) DecodeScalar(data []byte) (group.Scalar, error) {
	v, err := group.DecodeLittleEndian(data, ScalarSize, curveOrder)
	if err != nil {
		return nil, err
	}
	return new(Scalar).setBig(v), nil
}

package group

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// DecodeLittleEndian implements the random-bytes decoding rule shared by all
// groups in this module: data is read as a little-endian integer no wider
// than size bytes, the bits at and above order.BitLen() are cleared, and the
// masked value must be below order.
//
// Group implementations call it from DecodeScalar and convert the returned
// integer into their native scalar type.
func DecodeLittleEndian(data []byte, size int, order *big.Int) (*big.Int, error) {
	if len(data) > size {
		return nil, fmt.Errorf("%w: %d bytes exceeds scalar width %d", ErrScalarEncoding, len(data), size)
	}

	be := make([]byte, len(data))
	for i := range data {
		be[len(data)-1-i] = data[i]
	}
	v := new(big.Int).SetBytes(be)

	bits := order.BitLen()
	if v.BitLen() > bits {
		mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		mask.Sub(mask, big.NewInt(1))
		v.And(v, mask)
	}

	if v.Cmp(order) >= 0 {
		return nil, fmt.Errorf("%w: value not below group order", ErrScalarEncoding)
	}
	return v, nil
}

// Sum returns the sum of points, starting from the identity of g.
// An empty slice yields the identity.
func Sum(g Group, points []Point) Point {
	acc := g.NewPoint()
	for _, p := range points {
		acc = g.NewPoint().Add(acc, p)
	}
	return acc
}

// SumScalars returns the sum of scalars, starting from zero.
func SumScalars(g Group, scalars []Scalar) Scalar {
	acc := g.NewScalar()
	for _, s := range scalars {
		acc = g.NewScalar().Add(acc, s)
	}
	return acc
}

// FrameParts joins data into one message, each part preceded by its length
// as a 4-byte big-endian integer. HashToScalar implementations hash the
// result so that part boundaries are unambiguous.
func FrameParts(data ...[]byte) []byte {
	n := 0
	for _, d := range data {
		n += 4 + len(d)
	}
	out := make([]byte, 0, n)
	for _, d := range data {
		out = binary.BigEndian.AppendUint32(out, uint32(len(d)))
		out = append(out, d...)
	}
	return out
}

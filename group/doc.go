// Package group defines the algebra capabilities consumed by the signing
// engine: a prime-order group, its scalar field, and the byte encodings that
// connect the two.
//
// This package provides three interfaces:
//
//   - [Scalar]: elements of the scalar field (integers modulo the group order)
//   - [Point]: elements of the group (points on an elliptic curve)
//   - [Group]: factory for scalars and points, the generator, sampling, and
//     the field's random-bytes decoder
//
// The Poseidon permutation, the transcripts, and both signing protocols are
// written against these interfaces only, so the same code runs over every
// curve in this module (bn254, bjj, secp256k1, ristretto255).
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern. Operations like Add, Mul and
// ScalarMult set the receiver to the result and return it, which allows
// chaining without hidden allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// Operations that can fail return errors rather than panicking.
//
// # Scalar decoding
//
// [Group.DecodeScalar] is the bridge a Fiat-Shamir transcript uses to absorb
// a compressed point as a field element. It reads little-endian bytes, clears
// the bits at and above the bit length of the order, and rejects anything
// wider than a scalar or not below the order. Whether a group's compressed
// points survive this decoder is a property of the (field, curve) pairing:
// BN254 G1 over Fr does (only the two flag bits are cleared), the other
// groups in this module do not and must be paired with a hash transcript.
//
// # Implementing a Group
//
//  1. Create a Scalar type that wraps your field element and implements [Scalar]
//  2. Create a Point type that wraps your curve point and implements [Point]
//  3. Create a Group type that implements [Group] as a factory
//
// Implementations must keep scalars reduced modulo the group order, sample
// random scalars from the supplied reader only, and reject invalid encodings
// in SetBytes.
package group

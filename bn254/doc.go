// Package bn254 provides the BN254 (alt_bn128) G1 group and its scalar field
// Fr as an implementation of [group.Group].
//
// The Poseidon transcript is defined over this (field, curve) pairing:
// Poseidon runs over Fr, and a compressed G1 point is a 254-bit
// x-coordinate plus two flag bits, so it fits the 32-byte Fr decoder once
// the flags are cleared.
//
// # Encoding
//
// Scalars encode as 32 big-endian bytes. Points use gnark-crypto's
// compressed encoding in reverse byte order (little-endian x, flags in the
// top two bits of the last byte), matching the little-endian convention of
// [BN254.DecodeScalar]:
//
//	s, err := g.DecodeScalar(p.Bytes())
//
// fails only when the x-coordinate is at least r, which happens with
// probability around 2^-127 for points derived from random scalars.
//
// # Usage
//
//	g := &bn254.BN254{}
//	tr, err := transcript.NewPoseidon(g)
package bn254

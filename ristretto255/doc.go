// Package ristretto255 implements [group.Group] for the ristretto255 group
// using circl.
//
// Scalars encode big-endian like every other group in this module even
// though circl's own encoding is little-endian. Points use the canonical
// 32-byte ristretto255 encoding.
//
// The scalar field of ristretto255 has no registered Poseidon round table,
// so protocols over this group use a hash-backed transcript:
//
//	g := &ristretto255.Ristretto255{}
//	tr, err := transcript.NewBlake2b(g)
package ristretto255

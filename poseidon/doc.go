// Package poseidon implements the Poseidon permutation and a sponge built on
// it, over the scalar field of a [group.Group].
//
// # Parameters
//
// A permutation instance is described by [RawParams]: the number of full
// and partial rounds, the S-box exponent, (Rf+Rp)*Width round constants and
// a Width x Width mixing matrix. [NewParams] decodes and validates the table
// once; a malformed table is rejected with [ErrInvalidParams] rather than
// truncated or masked. [MustParams] panics instead, which is how built-in
// tables fail at program start.
//
// Constants are "0x"-prefixed big-endian hex. They are decoded by reversing
// the bytes and passing them through the field's little-endian decoder
// ([group.Group.DecodeScalar]), and must re-encode to the same value.
//
// # Registry
//
// Tables are registered per scalar field. [BN254x5] is registered at init:
//
//	params, err := poseidon.ParamsFor(&bn254.BN254{})
//	sponge := poseidon.NewSponge(params)
//	sponge.Update(a, b)
//	h := sponge.Squeeze()
//
// Groups whose field has no table get [ErrUnsupportedField].
package poseidon

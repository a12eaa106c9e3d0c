// Package transcript provides Fiat-Shamir transcripts for the signing
// protocols in this module.
//
// A [Transcript] absorbs points and scalars and squeezes challenge scalars.
// Protocol code only sees the interface, so the hash backend can be swapped
// without touching it. Backends:
//
//   - [Poseidon]: a Poseidon sponge over the group's scalar field. Points are
//     absorbed by reinterpreting their compressed bytes as a little-endian
//     scalar, which only works when the point width fits the scalar decoder.
//     Of the groups in this module only bn254 qualifies.
//   - [Hash] with BLAKE2b-512 ([NewBlake2b]) or SHA3-512 ([NewSHA3]): tagged,
//     length-prefixed encodings fed to a running hash. Works with any group.
//
// # Factories
//
// Protocols that need several independent transcripts take a [Factory]:
//
//	f, err := transcript.FactoryByName("poseidon", &bn254.BN254{})
//	tr, err := f()
//
// Each call returns a transcript with empty state.
package transcript

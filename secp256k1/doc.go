// Package secp256k1 implements [group.Group] for the secp256k1 curve using
// btcec.
//
// Points encode in the 33-byte SEC1 compressed form. That is one byte wider
// than a scalar, so a secp256k1 point can never be reinterpreted as a
// scalar and the Poseidon transcript refuses this group. Pair it with one of
// the hash-backed transcripts instead:
//
//	g := &secp256k1.Secp256k1{}
//	tr, err := transcript.NewSHA3(g)
package secp256k1

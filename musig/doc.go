// Package musig implements MuSig multi-signatures: n participants jointly
// produce one Schnorr-style signature that verifies under an aggregate
// public key.
//
// # Key Aggregation
//
// All public keys are absorbed, in order, into one fresh transcript to form
// the keyset challenge. Each key's coefficient is squeezed from another fresh
// transcript that absorbs the keyset challenge and the key. The aggregate key
// is sum_i pk_i * coeff_i. Every participant must use the same key order;
// reordering the keys produces a different aggregate key.
//
// # Signing
//
// Signing takes two rounds:
//
//  1. Each participant calls [MuSig.CreateNonce] and broadcasts the
//     commitment R_i.
//  2. Once all commitments are in, everyone computes aggR with
//     [MuSig.AggregateNonces] and calls [MuSig.Sign] to produce
//     s_i = r_i + c * coeff_i * sk_i, where c is squeezed from a fresh
//     transcript over aggPK, aggR and the message.
//
// [MuSig.Combine] sums the commitments and partial signatures, and
// [MuSig.Verify] checks generator * s == aggR + aggPK * c.
//
//	m := musig.New(g, transcript.PoseidonFactory(g))
//	kc, err := m.KeysetChallenge(pubKeys)
//	aggPK, err := m.AggregatePublicKeys(pubKeys, kc)
//	nonce, err := m.CreateNonce(rand.Reader)
//	// exchange nonce.Commitment
//	aggR, err := m.AggregateNonces(commitments)
//	partial, err := m.Sign(kp, msg, kc, aggPK, aggR, nonce)
//	nonce.Zero()
//	// exchange partials
//	sig, err := m.Combine(pubKeys, commitments, partials)
//	ok, err := m.Verify(sig, msg, aggPK)
//
// # Security
//
// The nonce round is the plain two-round variant. Commitments are revealed
// directly rather than first committed to by hash, so a participant that
// sees the other commitments before choosing its own can bias aggR. Running
// several signing sessions concurrently with the same keys is not safe under
// this variant. A nonce must never sign two messages; the session package
// enforces this by zeroing nonces after one use.
package musig

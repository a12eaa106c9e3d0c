// Package bjj implements [group.Group] over the prime-order subgroup of
// Baby Jubjub, the twisted Edwards curve
//
//	168700*x^2 + y^2 = 1 + 168696*x^2*y^2
//
// defined over the BN254 scalar field. Point arithmetic comes from
// gnark-crypto; scalars are integers modulo the subgroup order
//
//	l = 2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// which is smaller than the field the curve lives in.
//
// # Transcripts
//
// No Poseidon round table is registered for l, so Baby Jubjub keys are
// signed with a hash-backed transcript:
//
//	g := &bjj.BJJ{}
//	m := musig.New(g, transcript.Blake2bFactory(g))
//
// HashToScalar uses BLAKE2b-512 for the same reason.
package bjj

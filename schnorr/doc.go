// Package schnorr implements Schnorr keypairs and single-signer signatures
// over any [group.Group], with the challenge derived from a
// [transcript.Transcript].
//
// # Signing
//
// Signing absorbs the nonce commitment R, the public key and the message, in
// that order, and squeezes the challenge c. The signature is (R, s) with
// s = r + c * privateKey. Verification replays the same absorbs and checks
// generator * s == publicKey * c + R.
//
// Transcripts are stateful. Signer and verifier must each start from a
// fresh transcript of the same backend:
//
//	g := &bn254.BN254{}
//	kp, err := schnorr.GenerateKeypair(g, rand.Reader)
//	msg, err := schnorr.MessageFromBytes(g, []byte("hello"))
//
//	tr, err := transcript.NewPoseidon(g)
//	sig, err := schnorr.Sign(rand.Reader, kp, tr, msg)
//
//	tr, err = transcript.NewPoseidon(g)
//	ok, err := schnorr.Verify(g, sig, kp.PublicKey, tr, msg)
//
// Verify reports an invalid signature as false with a nil error. Errors are
// reserved for transcripts that cannot absorb the group's points.
//
// # Key Handling
//
// A [Keypair] never exposes its private key through fmt, encoding/json or
// zap. Use [Keypair.PrivateKey] to read it explicitly.
package schnorr

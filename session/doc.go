// Package session provides a high-level API for MuSig signing ceremonies.
// It wraps the primitives in the [musig] package with an interface that
// handles round ordering and prevents common mistakes like nonce reuse.
//
// For full control over the protocol, use the [musig] package directly.
//
// # Signing
//
// Each participant builds a [Signer] for the agreed, ordered key set and
// opens a one-shot [Session] per message:
//
//	signer, err := session.NewSigner(m, keypair, pubKeys)
//	if err != nil {
//		return err
//	}
//
//	// Create a signing session (generates the nonce internally)
//	sess, err := signer.NewSession(rand.Reader, msg)
//	if err != nil {
//		return err
//	}
//
//	// Send sess.Commitment() to the coordinator and wait for aggR
//
//	// Produce the partial signature (consumes the session)
//	partial, err := sess.Sign(aggR)
//
// A [Coordinator] collects the commitments, releases the aggregate nonce
// only once all of them are in, checks each partial signature and combines
// them:
//
//	coord, err := session.NewCoordinator(m, pubKeys, msg)
//	err = coord.AddCommitment(i, commitment) // for every participant
//	aggR, err := coord.AggregateNonce()
//	err = coord.AddPartial(i, partial) // for every participant
//	sig, err := coord.Finalize()
//
// A Session is designed to be used exactly once. Calling Sign a second time
// returns [ErrSessionConsumed]. The coordinator does not hash-commit the
// nonce commitments before revealing them; see the musig package for what
// that means for concurrent sessions.
//
// # Transport Agnostic
//
// This package does not handle network communication. Messages between
// participants and the coordinator travel over whatever transport the
// application uses. [RunLocal] drives a whole ceremony in one process.
package session

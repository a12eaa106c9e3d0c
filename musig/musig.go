package musig

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/schnorr"
	"github.com/f3rmion/spongefish/transcript"
)

var (
	// ErrNoParticipants is returned when a key, commitment or partial
	// signature list is empty.
	ErrNoParticipants = errors.New("musig: no participants")

	// ErrLengthMismatch is returned when key, commitment and partial
	// signature lists differ in length.
	ErrLengthMismatch = errors.New("musig: mismatched input lengths")

	// ErrNonceConsumed is returned when signing with a nonce that has been
	// zeroed.
	ErrNonceConsumed = errors.New("musig: nonce already used")
)

// MuSig runs the MuSig aggregation protocol over a group, drawing a fresh
// transcript from its factory for every hash it computes.
type MuSig struct {
	group         group.Group
	newTranscript transcript.Factory
}

// New returns a MuSig instance over g using transcripts from f.
func New(g group.Group, f transcript.Factory) *MuSig {
	return &MuSig{
		group:         g,
		newTranscript: f,
	}
}

// Group returns the group the protocol runs over.
func (m *MuSig) Group() group.Group {
	return m.group
}

// Nonce is a participant's per-signature secret r and its public commitment
// R = generator * r. A nonce must sign at most one message.
type Nonce struct {
	secret     group.Scalar
	Commitment group.Point
}

// Zero drops the secret so the nonce cannot be used again.
func (n *Nonce) Zero() {
	if n.secret != nil {
		n.secret.SetUint64(0)
		n.secret = nil
	}
}

// KeysetChallenge absorbs every public key in order into one fresh transcript
// and squeezes once. Reordering the keys changes the result.
func (m *MuSig) KeysetChallenge(pubKeys []group.Point) (group.Scalar, error) {
	if len(pubKeys) == 0 {
		return nil, ErrNoParticipants
	}
	tr, err := m.newTranscript()
	if err != nil {
		return nil, err
	}
	for i, pk := range pubKeys {
		if err := tr.AbsorbPoint(pk); err != nil {
			return nil, fmt.Errorf("public key %d: %w", i, err)
		}
	}
	return tr.SqueezeChallenge(), nil
}

// Coefficient returns the aggregation coefficient of pk: a fresh transcript
// absorbs keysetChallenge then pk and is squeezed once. The result depends
// only on the key set and the key itself, not on the key's position.
func (m *MuSig) Coefficient(keysetChallenge group.Scalar, pk group.Point) (group.Scalar, error) {
	tr, err := m.newTranscript()
	if err != nil {
		return nil, err
	}
	tr.AbsorbScalar(keysetChallenge)
	if err := tr.AbsorbPoint(pk); err != nil {
		return nil, err
	}
	return tr.SqueezeChallenge(), nil
}

// AggregatePublicKeys returns sum_i pk_i * coeff_i.
func (m *MuSig) AggregatePublicKeys(pubKeys []group.Point, keysetChallenge group.Scalar) (group.Point, error) {
	if len(pubKeys) == 0 {
		return nil, ErrNoParticipants
	}
	agg := m.group.NewPoint()
	for i, pk := range pubKeys {
		coeff, err := m.Coefficient(keysetChallenge, pk)
		if err != nil {
			return nil, fmt.Errorf("public key %d: %w", i, err)
		}
		agg.Add(agg, m.group.NewPoint().ScalarMult(coeff, pk))
	}
	return agg, nil
}

// CreateNonce samples a fresh nonce.
func (m *MuSig) CreateNonce(rng io.Reader) (*Nonce, error) {
	r, err := m.group.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sampling nonce: %w", err)
	}
	return &Nonce{
		secret:     r,
		Commitment: m.group.NewPoint().ScalarMult(r, m.group.Generator()),
	}, nil
}

// AggregateNonces returns the sum of all nonce commitments. It must only be
// called once every participant's commitment has been collected.
func (m *MuSig) AggregateNonces(commitments []group.Point) (group.Point, error) {
	if len(commitments) == 0 {
		return nil, ErrNoParticipants
	}
	return group.Sum(m.group, commitments), nil
}

// Challenge absorbs aggPubKey, aggR and msg into a fresh transcript and
// squeezes the shared signing challenge.
func (m *MuSig) Challenge(aggPubKey, aggR group.Point, msg group.Scalar) (group.Scalar, error) {
	tr, err := m.newTranscript()
	if err != nil {
		return nil, err
	}
	if err := tr.AbsorbPoint(aggPubKey); err != nil {
		return nil, err
	}
	if err := tr.AbsorbPoint(aggR); err != nil {
		return nil, err
	}
	tr.AbsorbScalar(msg)
	return tr.SqueezeChallenge(), nil
}

// Sign computes the partial signature s_i = r_i + c * coeff_i * sk_i, where
// c is the shared challenge and coeff_i is recomputed from keysetChallenge
// and kp's public key.
//
// Sign does not zero the nonce; callers that want one-shot nonces should use
// the session package or call [Nonce.Zero].
func (m *MuSig) Sign(
	kp *schnorr.Keypair,
	msg group.Scalar,
	keysetChallenge group.Scalar,
	aggPubKey, aggR group.Point,
	nonce *Nonce,
) (group.Scalar, error) {
	if nonce == nil || nonce.secret == nil {
		return nil, ErrNonceConsumed
	}

	c, err := m.Challenge(aggPubKey, aggR, msg)
	if err != nil {
		return nil, err
	}
	coeff, err := m.Coefficient(keysetChallenge, kp.PublicKey)
	if err != nil {
		return nil, err
	}

	sk := kp.PrivateKey()
	defer sk.SetUint64(0)

	s := m.group.NewScalar().Mul(c, coeff)
	s.Mul(s, sk)
	return s.Add(nonce.secret, s), nil
}

// Combine sums the partial signatures and nonce commitments of the
// participants in pubKeys into an aggregate signature (aggR, aggS). All three
// lists must be non-empty and of equal length; this is checked before any
// arithmetic.
func (m *MuSig) Combine(pubKeys, commitments []group.Point, partials []group.Scalar) (*schnorr.Signature, error) {
	if len(pubKeys) != len(partials) || len(commitments) != len(partials) {
		return nil, fmt.Errorf("%w: %d keys, %d commitments, %d partial signatures",
			ErrLengthMismatch, len(pubKeys), len(commitments), len(partials))
	}
	if len(partials) == 0 {
		return nil, ErrNoParticipants
	}
	return &schnorr.Signature{
		R: group.Sum(m.group, commitments),
		S: group.SumScalars(m.group, partials),
	}, nil
}

// Verify reports whether sig is a valid aggregate signature on msg under
// aggPubKey: generator * s == R + aggPubKey * c. A false result with a nil
// error means the signature is invalid, including an R the transcript cannot
// absorb.
func (m *MuSig) Verify(sig *schnorr.Signature, msg group.Scalar, aggPubKey group.Point) (bool, error) {
	if sig == nil || sig.R == nil || sig.S == nil || aggPubKey == nil || msg == nil {
		return false, nil
	}

	c, err := m.Challenge(aggPubKey, sig.R, msg)
	if errors.Is(err, group.ErrScalarEncoding) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	g := m.group
	lhs := g.NewPoint().ScalarMult(sig.S, g.Generator())
	rhs := g.NewPoint().ScalarMult(c, aggPubKey)
	rhs.Add(sig.R, rhs)
	return lhs.Equal(rhs), nil
}

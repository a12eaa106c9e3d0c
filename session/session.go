package session

import (
	"errors"
	"fmt"

	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/musig"
	"github.com/f3rmion/spongefish/schnorr"
)

var (
	// ErrUnknownSigner is returned when a signer's public key is not part
	// of the key set it is asked to sign for.
	ErrUnknownSigner = errors.New("session: signer not in key set")

	// ErrSessionConsumed is returned when a session is asked to sign twice.
	ErrSessionConsumed = errors.New("session: already consumed, nonce reuse prevented")

	// ErrNoncesPending is returned when the aggregate nonce or a partial
	// signature is requested before every commitment has arrived.
	ErrNoncesPending = errors.New("session: nonce commitments pending")

	// ErrPartialsPending is returned by Finalize before every partial
	// signature has arrived.
	ErrPartialsPending = errors.New("session: partial signatures pending")

	// ErrDuplicateCommitment is returned when a participant submits a second
	// nonce commitment.
	ErrDuplicateCommitment = errors.New("session: duplicate nonce commitment")

	// ErrDuplicatePartial is returned when a participant submits a second
	// partial signature.
	ErrDuplicatePartial = errors.New("session: duplicate partial signature")

	// ErrInvalidParticipant is returned for participant indices outside the
	// key set.
	ErrInvalidParticipant = errors.New("session: participant index out of range")

	// ErrInvalidCommitment is returned for a missing nonce commitment.
	ErrInvalidCommitment = errors.New("session: invalid nonce commitment")

	// ErrInvalidPartial is returned when a partial signature does not
	// satisfy generator * s_i == R_i + pk_i * c * coeff_i.
	ErrInvalidPartial = errors.New("session: invalid partial signature")

	// ErrInvalidSignature is returned by Finalize when the combined
	// signature does not verify.
	ErrInvalidSignature = errors.New("session: aggregate signature does not verify")
)

// Signer holds one participant's long-term state for a fixed key set: its
// keypair, its position in the key set, and the keyset challenge and
// aggregate key derived from it. Create instances using [NewSigner].
type Signer struct {
	musig           *musig.MuSig
	keypair         *schnorr.Keypair
	index           int
	pubKeys         []group.Point
	keysetChallenge group.Scalar
	aggPubKey       group.Point
}

// NewSigner prepares kp to sign for the ordered key set pubKeys. The key set
// must contain kp's public key; its first occurrence fixes the signer's
// index.
func NewSigner(m *musig.MuSig, kp *schnorr.Keypair, pubKeys []group.Point) (*Signer, error) {
	index := -1
	for i, pk := range pubKeys {
		if pk.Equal(kp.PublicKey) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrUnknownSigner
	}

	kc, err := m.KeysetChallenge(pubKeys)
	if err != nil {
		return nil, fmt.Errorf("computing keyset challenge: %w", err)
	}
	agg, err := m.AggregatePublicKeys(pubKeys, kc)
	if err != nil {
		return nil, fmt.Errorf("aggregating public keys: %w", err)
	}

	// Copy key set to prevent external modification
	keys := make([]group.Point, len(pubKeys))
	copy(keys, pubKeys)

	return &Signer{
		musig:           m,
		keypair:         kp,
		index:           index,
		pubKeys:         keys,
		keysetChallenge: kc,
		aggPubKey:       agg,
	}, nil
}

// Index returns the signer's position in the key set.
func (s *Signer) Index() int {
	return s.index
}

// AggregatePublicKey returns the key the combined signature verifies under.
func (s *Signer) AggregatePublicKey() group.Point {
	return s.aggPubKey
}

// KeysetChallenge returns the challenge binding the ordered key set.
func (s *Signer) KeysetChallenge() group.Scalar {
	return s.keysetChallenge
}

// MuSig returns the underlying protocol instance.
func (s *Signer) MuSig() *musig.MuSig {
	return s.musig
}

package session

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/musig"
	"github.com/f3rmion/spongefish/schnorr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Session manages a single signing operation with built-in nonce safety.
// Each session can only be used once; attempting to sign twice returns
// [ErrSessionConsumed].
//
// Create sessions using [Signer.NewSession].
type Session struct {
	mu         sync.Mutex
	signer     *Signer
	msg        group.Scalar
	nonce      *musig.Nonce
	commitment group.Point
	consumed   bool
}

// NewSession creates a signing session for msg with a fresh nonce.
func (s *Signer) NewSession(rng io.Reader, msg group.Scalar) (*Session, error) {
	nonce, err := s.musig.CreateNonce(rng)
	if err != nil {
		return nil, err
	}
	return &Session{
		signer:     s,
		msg:        s.musig.Group().NewScalar().Set(msg),
		nonce:      nonce,
		commitment: nonce.Commitment,
	}, nil
}

// Commitment returns the nonce commitment that must be sent to the
// coordinator.
func (s *Session) Commitment() group.Point {
	return s.commitment
}

// Message returns the message being signed.
func (s *Session) Message() group.Scalar {
	return s.msg
}

// Sign produces this participant's partial signature under the aggregate
// nonce aggR.
//
// This method consumes the session. After Sign returns, successfully or
// not, the nonce is zeroed and further calls return [ErrSessionConsumed].
func (s *Session) Sign(aggR group.Point) (group.Scalar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed {
		return nil, ErrSessionConsumed
	}
	s.consumed = true
	defer s.zeroNonce()

	sg := s.signer
	return sg.musig.Sign(sg.keypair, s.msg, sg.keysetChallenge, sg.aggPubKey, aggR, s.nonce)
}

func (s *Session) zeroNonce() {
	if s.nonce == nil {
		return
	}
	s.nonce.Zero()
	s.nonce = nil
}

// IsConsumed returns true if this session has already been used for signing.
func (s *Session) IsConsumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumed
}

// Coordinator collects nonce commitments and partial signatures for one
// message and enforces the round order: no aggregate nonce is released, and
// no partial signature accepted, until every participant has committed.
// It is safe for concurrent use.
type Coordinator struct {
	mu          sync.Mutex
	musig       *musig.MuSig
	pubKeys     []group.Point
	msg         group.Scalar
	kc          group.Scalar
	aggPubKey   group.Point
	commitments []group.Point
	partials    []group.Scalar
	committed   int
	signed      int
	aggR        group.Point
	challenge   group.Scalar
}

// NewCoordinator returns a coordinator for signing msg under the ordered key
// set pubKeys.
func NewCoordinator(m *musig.MuSig, pubKeys []group.Point, msg group.Scalar) (*Coordinator, error) {
	kc, err := m.KeysetChallenge(pubKeys)
	if err != nil {
		return nil, fmt.Errorf("computing keyset challenge: %w", err)
	}
	agg, err := m.AggregatePublicKeys(pubKeys, kc)
	if err != nil {
		return nil, fmt.Errorf("aggregating public keys: %w", err)
	}

	keys := make([]group.Point, len(pubKeys))
	copy(keys, pubKeys)

	return &Coordinator{
		musig:       m,
		pubKeys:     keys,
		msg:         m.Group().NewScalar().Set(msg),
		kc:          kc,
		aggPubKey:   agg,
		commitments: make([]group.Point, len(keys)),
		partials:    make([]group.Scalar, len(keys)),
	}, nil
}

// AggregatePublicKey returns the key the final signature verifies under.
func (c *Coordinator) AggregatePublicKey() group.Point {
	return c.aggPubKey
}

// AddCommitment records participant i's nonce commitment.
func (c *Coordinator) AddCommitment(i int, R group.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.pubKeys) {
		return fmt.Errorf("%w: %d", ErrInvalidParticipant, i)
	}
	if R == nil {
		return fmt.Errorf("%w from participant %d", ErrInvalidCommitment, i)
	}
	if c.commitments[i] != nil {
		return fmt.Errorf("%w from participant %d", ErrDuplicateCommitment, i)
	}
	c.commitments[i] = R
	c.committed++
	return nil
}

// AggregateNonce returns the sum of all nonce commitments. It fails with
// [ErrNoncesPending] until every participant has committed.
func (c *Coordinator) AggregateNonce() (group.Point, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aggregateNonce()
}

func (c *Coordinator) aggregateNonce() (group.Point, error) {
	if c.aggR != nil {
		return c.aggR, nil
	}
	if c.committed < len(c.pubKeys) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoncesPending, c.committed, len(c.pubKeys))
	}

	aggR, err := c.musig.AggregateNonces(c.commitments)
	if err != nil {
		return nil, err
	}
	ch, err := c.musig.Challenge(c.aggPubKey, aggR, c.msg)
	if err != nil {
		return nil, err
	}
	c.aggR = aggR
	c.challenge = ch
	return aggR, nil
}

// AddPartial records participant i's partial signature after checking it
// against the participant's commitment and public key.
func (c *Coordinator) AddPartial(i int, s group.Scalar) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.pubKeys) {
		return fmt.Errorf("%w: %d", ErrInvalidParticipant, i)
	}
	if c.aggR == nil {
		return ErrNoncesPending
	}
	if c.partials[i] != nil {
		return fmt.Errorf("%w from participant %d", ErrDuplicatePartial, i)
	}
	if s == nil {
		return fmt.Errorf("%w from participant %d", ErrInvalidPartial, i)
	}

	coeff, err := c.musig.Coefficient(c.kc, c.pubKeys[i])
	if err != nil {
		return err
	}
	g := c.musig.Group()
	lhs := g.NewPoint().ScalarMult(s, g.Generator())
	rhs := g.NewPoint().ScalarMult(g.NewScalar().Mul(c.challenge, coeff), c.pubKeys[i])
	rhs.Add(rhs, c.commitments[i])
	if !lhs.Equal(rhs) {
		return fmt.Errorf("%w from participant %d", ErrInvalidPartial, i)
	}

	c.partials[i] = s
	c.signed++
	return nil
}

// Finalize combines the partial signatures and verifies the result under the
// aggregate public key.
func (c *Coordinator) Finalize() (*schnorr.Signature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signed < len(c.pubKeys) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPartialsPending, c.signed, len(c.pubKeys))
	}

	sig, err := c.musig.Combine(c.pubKeys, c.commitments, c.partials)
	if err != nil {
		return nil, err
	}
	ok, err := c.musig.Verify(sig, c.msg, c.aggPubKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidSignature
	}
	return sig, nil
}

// RunLocal performs a complete MuSig ceremony when all keypairs are local,
// returning the signature and the aggregate public key it verifies under.
//
// Nonces are drawn from rng one participant at a time; partial signatures
// are then computed concurrently. A nil logger disables logging.
//
// This is useful for testing or single-machine setups. For distributed
// signing, use [Signer], [Session] and [Coordinator] directly.
func RunLocal(
	ctx context.Context,
	m *musig.MuSig,
	rng io.Reader,
	keypairs []*schnorr.Keypair,
	msg group.Scalar,
	logger *zap.Logger,
) (*schnorr.Signature, group.Point, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(keypairs) == 0 {
		return nil, nil, musig.ErrNoParticipants
	}

	pubKeys := make([]group.Point, len(keypairs))
	for i, kp := range keypairs {
		pubKeys[i] = kp.PublicKey
	}
	coord, err := NewCoordinator(m, pubKeys, msg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("key set aggregated",
		zap.Int("participants", len(pubKeys)),
		zap.String("aggregateKey", hex.EncodeToString(coord.AggregatePublicKey().Bytes())),
	)

	// Round 1: nonce commitments
	sessions := make([]*Session, len(keypairs))
	for i, kp := range keypairs {
		signer, err := NewSigner(m, kp, pubKeys)
		if err != nil {
			return nil, nil, fmt.Errorf("participant %d: %w", i, err)
		}
		sess, err := signer.NewSession(rng, msg)
		if err != nil {
			return nil, nil, fmt.Errorf("participant %d: %w", i, err)
		}
		if err := coord.AddCommitment(i, sess.Commitment()); err != nil {
			return nil, nil, err
		}
		sessions[i] = sess
		logger.Debug("nonce committed", zap.Int("participant", i))
	}

	aggR, err := coord.AggregateNonce()
	if err != nil {
		return nil, nil, err
	}

	// Round 2: partial signatures
	eg, egCtx := errgroup.WithContext(ctx)
	for i, sess := range sessions {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			s, err := sess.Sign(aggR)
			if err != nil {
				return fmt.Errorf("participant %d: %w", i, err)
			}
			if err := coord.AddPartial(i, s); err != nil {
				return err
			}
			logger.Debug("partial signature accepted", zap.Int("participant", i))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("ceremony aborted", zap.Error(err))
		}
		return nil, nil, err
	}

	sig, err := coord.Finalize()
	if err != nil {
		logger.Error("finalizing signature", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("signature finalized",
		zap.Int("participants", len(keypairs)),
		zap.String("signature", hex.EncodeToString(sig.Bytes())),
	)
	return sig, coord.AggregatePublicKey(), nil
}

package schnorr

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/transcript"
)

// Signature is a Schnorr signature (R, s) with R = generator * r for a
// fresh nonce r and s = r + challenge * privateKey.
type Signature struct {
	R group.Point
	S group.Scalar
}

// Bytes returns R || s using the group's point and scalar encodings.
func (sig *Signature) Bytes() []byte {
	r := sig.R.Bytes()
	s := sig.S.Bytes()
	out := make([]byte, 0, len(r)+len(s))
	out = append(out, r...)
	return append(out, s...)
}

// ParseSignature decodes a signature produced by [Signature.Bytes].
func ParseSignature(g group.Group, data []byte) (*Signature, error) {
	pointSize := len(g.Generator().Bytes())
	scalarSize := len(g.NewScalar().Bytes())
	if len(data) != pointSize+scalarSize {
		return nil, fmt.Errorf("schnorr: signature must be %d bytes, got %d", pointSize+scalarSize, len(data))
	}

	R, err := g.NewPoint().SetBytes(data[:pointSize])
	if err != nil {
		return nil, fmt.Errorf("schnorr: decoding R: %w", err)
	}
	s, err := g.NewScalar().SetBytes(data[pointSize:])
	if err != nil {
		return nil, fmt.Errorf("schnorr: decoding s: %w", err)
	}
	if !bytes.Equal(s.Bytes(), data[pointSize:]) {
		return nil, errors.New("schnorr: s is not reduced")
	}
	return &Signature{R: R, S: s}, nil
}

// MessageFromBytes maps an arbitrary byte string to a message scalar using
// the group's hash-to-scalar.
func MessageFromBytes(g group.Group, data []byte) (group.Scalar, error) {
	return g.HashToScalar([]byte("spongefish-message"), data)
}

// challenge absorbs R, the public key and the message, in that order, and
// squeezes the challenge.
func challenge(tr transcript.Transcript, R, pk group.Point, msg group.Scalar) (group.Scalar, error) {
	if err := tr.AbsorbPoint(R); err != nil {
		return nil, err
	}
	if err := tr.AbsorbPoint(pk); err != nil {
		return nil, err
	}
	tr.AbsorbScalar(msg)
	return tr.SqueezeChallenge(), nil
}

// Sign signs msg with kp. tr must be a fresh transcript; the verifier has to
// start from the same empty state.
//
// The only errors are a failing random source and a point that tr cannot
// absorb.
func Sign(rng io.Reader, kp *Keypair, tr transcript.Transcript, msg group.Scalar) (*Signature, error) {
	g := kp.g
	r, err := g.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sampling nonce: %w", err)
	}
	defer r.SetUint64(0)

	R := g.NewPoint().ScalarMult(r, g.Generator())
	c, err := challenge(tr, R, kp.PublicKey, msg)
	if err != nil {
		return nil, err
	}

	s := g.NewScalar().Mul(c, kp.privateKey)
	s.Add(r, s)
	return &Signature{R: R, S: s}, nil
}

// Verify reports whether sig is a valid signature on msg under pk, that is
// whether generator * s == pk * challenge + R. tr must be a fresh transcript.
//
// A signature with missing fields is reported as invalid, and so is one
// whose R the transcript cannot represent as a scalar (a BN254 point with
// x >= r under the Poseidon transcript). Any other error means tr is
// misconfigured for g.
func Verify(g group.Group, sig *Signature, pk group.Point, tr transcript.Transcript, msg group.Scalar) (bool, error) {
	if sig == nil || sig.R == nil || sig.S == nil || pk == nil || msg == nil {
		return false, nil
	}

	c, err := challenge(tr, sig.R, pk, msg)
	if errors.Is(err, group.ErrScalarEncoding) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	lhs := g.NewPoint().ScalarMult(sig.S, g.Generator())
	rhs := g.NewPoint().ScalarMult(c, pk)
	rhs.Add(rhs, sig.R)
	return lhs.Equal(rhs), nil
}

package transcript

import (
	"fmt"

	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/poseidon"
)

// Poseidon is a transcript backed by a Poseidon sponge over the scalar field
// of its group.
//
// Points are absorbed by reinterpreting their compressed encoding as a
// little-endian scalar, so the group's point width must not exceed its
// scalar width. Scalars are absorbed directly and challenges are sponge
// squeezes.
type Poseidon struct {
	g      group.Group
	sponge *poseidon.Sponge
}

// NewPoseidon returns an empty Poseidon transcript for g.
//
// It fails with [ErrPointEncoding] when compressed points of g are wider
// than its scalars, and with [poseidon.ErrUnsupportedField] when no round
// table is registered for the scalar field of g.
func NewPoseidon(g group.Group) (*Poseidon, error) {
	pointSize := len(g.Generator().Bytes())
	scalarSize := len(g.NewScalar().Bytes())
	if pointSize > scalarSize {
		return nil, fmt.Errorf("%w: %s points are %d bytes, scalars are %d",
			ErrPointEncoding, g.Name(), pointSize, scalarSize)
	}

	params, err := poseidon.ParamsFor(g)
	if err != nil {
		return nil, err
	}
	return &Poseidon{
		g:      g,
		sponge: poseidon.NewSponge(params),
	}, nil
}

// AbsorbPoint implements Transcript.
func (t *Poseidon) AbsorbPoint(p group.Point) error {
	s, err := t.g.DecodeScalar(p.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPointEncoding, err)
	}
	t.sponge.Update(s)
	return nil
}

// AbsorbScalar implements Transcript.
func (t *Poseidon) AbsorbScalar(s group.Scalar) {
	t.sponge.Update(s)
}

// SqueezeChallenge implements Transcript.
func (t *Poseidon) SqueezeChallenge() group.Scalar {
	return t.sponge.Squeeze()
}

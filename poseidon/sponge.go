package poseidon

import "github.com/f3rmion/spongefish/group"

// Sponge is a duplex-style sponge over a Poseidon permutation.
//
// Inputs are buffered by Update. Squeeze pads an empty buffer with a single
// zero, absorbs the buffer in chunks of Width elements (the last chunk
// right-padded with zeros) by adding each chunk into the state and
// permuting, then clears the buffer and returns state[0]. The state carries
// over between squeezes.
//
// A Sponge is not safe for concurrent use.
type Sponge struct {
	params *Params
	state  State
	buf    []group.Scalar
}

// NewSponge returns a sponge with an all-zero state and empty buffer.
func NewSponge(p *Params) *Sponge {
	return &Sponge{
		params: p,
		state:  p.NewState(),
	}
}

// Update appends copies of xs to the input buffer.
func (s *Sponge) Update(xs ...group.Scalar) {
	for _, x := range xs {
		s.buf = append(s.buf, s.params.g.NewScalar().Set(x))
	}
}

// Squeeze absorbs the buffered input and returns one field element.
func (s *Sponge) Squeeze() group.Scalar {
	g := s.params.g
	if len(s.buf) == 0 {
		s.buf = append(s.buf, g.NewScalar())
	}

	for start := 0; start < len(s.buf); start += Width {
		for i := 0; i < Width && start+i < len(s.buf); i++ {
			s.state[i].Add(s.state[i], s.buf[start+i])
		}
		s.state = s.params.Permute(s.state)
	}
	s.buf = s.buf[:0]

	return g.NewScalar().Set(s.state[0])
}

// Params returns the permutation parameters the sponge runs over.
func (s *Sponge) Params() *Params {
	return s.params
}

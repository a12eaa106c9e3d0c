package poseidon

import (
	"math/big"

	"github.com/f3rmion/spongefish/group"
)

// State is the permutation state.
type State [Width]group.Scalar

// NewState returns an all-zero state.
func (p *Params) NewState() State {
	var s State
	for i := range s {
		s[i] = p.g.NewScalar()
	}
	return s
}

// Permute applies the Poseidon permutation to in and returns the result.
// in is not modified.
//
// Rounds run in the order Rf/2 full, Rp partial, Rf/2 full. Each round adds
// its Width constants, applies the S-box (to every element in full rounds,
// to element 0 in partial rounds), then sets s[i] = sum_j MDS[i][j] * s[j].
func (p *Params) Permute(in State) State {
	s := p.NewState()
	for i := range s {
		s[i].Set(in[i])
	}

	half := p.fullRounds / 2
	rounds := p.fullRounds + p.partialRounds
	for r := 0; r < rounds; r++ {
		for i := range s {
			s[i].Add(s[i], p.constants[r*Width+i])
		}

		if r < half || r >= half+p.partialRounds {
			for i := range s {
				s[i] = p.Sbox(s[i])
			}
		} else {
			s[0] = p.Sbox(s[0])
		}

		s = p.mix(s)
	}
	return s
}

func (p *Params) mix(s State) State {
	out := p.NewState()
	t := p.g.NewScalar()
	for i := range out {
		for j := range s {
			t.Mul(p.mds[i][j], s[j])
			out[i].Add(out[i], t)
		}
	}
	return out
}

// Sbox returns x^alpha as a new scalar.
func (p *Params) Sbox(x group.Scalar) group.Scalar {
	out := p.g.NewScalar().Set(x)
	for i := uint64(1); i < p.alpha; i++ {
		out.Mul(out, x)
	}
	return out
}

// SboxInverse returns x^(1/alpha), the preimage of x under [Params.Sbox].
// Native hashing never calls it; it exists for checking circuit
// implementations that compute the inverse S-box as a witness.
func (p *Params) SboxInverse(x group.Scalar) group.Scalar {
	return exp(p.g, x, p.alphaInv)
}

// exp computes x^e by left-to-right square-and-multiply.
func exp(g group.Group, x group.Scalar, e *big.Int) group.Scalar {
	out := g.NewScalar().SetUint64(1)
	for i := e.BitLen() - 1; i >= 0; i-- {
		out.Mul(out, out)
		if e.Bit(i) == 1 {
			out.Mul(out, x)
		}
	}
	return out
}

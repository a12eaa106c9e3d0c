package musig

import (
	"crypto/rand"
	"math/big"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/f3rmion/spongefish/bjj"
	"github.com/f3rmion/spongefish/bn254"
	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/ristretto255"
	"github.com/f3rmion/spongefish/schnorr"
	"github.com/f3rmion/spongefish/secp256k1"
	"github.com/f3rmion/spongefish/transcript"
	"github.com/stretchr/testify/require"
)

func instances() map[string]*MuSig {
	bn := &bn254.BN254{}
	out := map[string]*MuSig{
		"bn254/poseidon": New(bn, transcript.PoseidonFactory(bn)),
	}
	for _, g := range []group.Group{bn, &bjj.BJJ{}, &secp256k1.Secp256k1{}, &ristretto255.Ristretto255{}} {
		out[g.Name()+"/blake2b"] = New(g, transcript.Blake2bFactory(g))
		out[g.Name()+"/sha3"] = New(g, transcript.SHA3Factory(g))
	}
	return out
}

func keypairs(t *testing.T, g group.Group, n int) ([]*schnorr.Keypair, []group.Point) {
	t.Helper()
	kps := make([]*schnorr.Keypair, n)
	pks := make([]group.Point, n)
	for i := range kps {
		kp, err := schnorr.GenerateKeypair(g, rand.Reader)
		require.NoError(t, err)
		kps[i] = kp
		pks[i] = kp.PublicKey
	}
	return kps, pks
}

// ceremony runs the full two-round protocol and returns the aggregate key and
// signature.
func ceremony(t *testing.T, m *MuSig, kps []*schnorr.Keypair, pks []group.Point, msg group.Scalar) (group.Point, *schnorr.Signature) {
	t.Helper()

	kc, err := m.KeysetChallenge(pks)
	require.NoError(t, err)
	aggPK, err := m.AggregatePublicKeys(pks, kc)
	require.NoError(t, err)

	nonces := make([]*Nonce, len(kps))
	commitments := make([]group.Point, len(kps))
	for i := range kps {
		nonces[i], err = m.CreateNonce(rand.Reader)
		require.NoError(t, err)
		commitments[i] = nonces[i].Commitment
	}
	aggR, err := m.AggregateNonces(commitments)
	require.NoError(t, err)

	partials := make([]group.Scalar, len(kps))
	for i, kp := range kps {
		partials[i], err = m.Sign(kp, msg, kc, aggPK, aggR, nonces[i])
		require.NoError(t, err)
		nonces[i].Zero()
	}

	sig, err := m.Combine(pks, commitments, partials)
	require.NoError(t, err)
	require.True(t, sig.R.Equal(aggR))
	return aggPK, sig
}

func TestMuSigSignatureValid(t *testing.T) {
	for name, m := range instances() {
		t.Run(name, func(t *testing.T) {
			g := m.Group()
			kps, pks := keypairs(t, g, 3)
			msg, err := schnorr.MessageFromBytes(g, []byte("musig"))
			require.NoError(t, err)

			aggPK, sig := ceremony(t, m, kps, pks, msg)

			ok, err := m.Verify(sig, msg, aggPK)
			require.NoError(t, err)
			require.True(t, ok)

			other := g.NewScalar().Add(msg, g.NewScalar().SetUint64(1))
			ok, err = m.Verify(sig, other, aggPK)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestSingleParticipant(t *testing.T) {
	g := &bn254.BN254{}
	m := New(g, transcript.PoseidonFactory(g))
	kps, pks := keypairs(t, g, 1)
	msg := g.NewScalar().SetUint64(9)

	aggPK, sig := ceremony(t, m, kps, pks, msg)
	ok, err := m.Verify(sig, msg, aggPK)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestKeyAggregation(t *testing.T) {
	g := &bn254.BN254{}
	m := New(g, transcript.PoseidonFactory(g))
	_, pks := keypairs(t, g, 3)

	kc, err := m.KeysetChallenge(pks)
	require.NoError(t, err)

	t.Run("MatchesCoefficientSum", func(t *testing.T) {
		agg, err := m.AggregatePublicKeys(pks, kc)
		require.NoError(t, err)

		want := g.NewPoint()
		for _, pk := range pks {
			coeff, err := m.Coefficient(kc, pk)
			require.NoError(t, err)
			want.Add(want, g.NewPoint().ScalarMult(coeff, pk))
		}
		require.True(t, agg.Equal(want))
	})

	t.Run("OrderChangesKeysetChallenge", func(t *testing.T) {
		swapped := []group.Point{pks[1], pks[0], pks[2]}
		kc2, err := m.KeysetChallenge(swapped)
		require.NoError(t, err)
		require.False(t, kc.Equal(kc2))

		agg1, err := m.AggregatePublicKeys(pks, kc)
		require.NoError(t, err)
		agg2, err := m.AggregatePublicKeys(swapped, kc2)
		require.NoError(t, err)
		require.False(t, agg1.Equal(agg2))
	})

	t.Run("SignatureBoundToKeyOrder", func(t *testing.T) {
		kps, pair := keypairs(t, g, 2)
		msg := g.NewScalar().SetUint64(11)
		aggPK, sig := ceremony(t, m, kps, pair, msg)

		swapped := []group.Point{pair[1], pair[0]}
		kcSwapped, err := m.KeysetChallenge(swapped)
		require.NoError(t, err)
		aggSwapped, err := m.AggregatePublicKeys(swapped, kcSwapped)
		require.NoError(t, err)

		ok, err := m.Verify(sig, msg, aggPK)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = m.Verify(sig, msg, aggSwapped)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("CoefficientIndependentOfPosition", func(t *testing.T) {
		a, err := m.Coefficient(kc, pks[2])
		require.NoError(t, err)
		b, err := m.Coefficient(kc, pks[2])
		require.NoError(t, err)
		require.True(t, a.Equal(b))

		c, err := m.Coefficient(kc, pks[0])
		require.NoError(t, err)
		require.False(t, a.Equal(c))
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		_, err := m.KeysetChallenge(nil)
		require.ErrorIs(t, err, ErrNoParticipants)
		_, err = m.AggregatePublicKeys(nil, kc)
		require.ErrorIs(t, err, ErrNoParticipants)
		_, err = m.AggregateNonces(nil)
		require.ErrorIs(t, err, ErrNoParticipants)
	})
}

func TestCombine(t *testing.T) {
	g := &bn254.BN254{}
	m := New(g, transcript.PoseidonFactory(g))
	_, pks := keypairs(t, g, 2)
	R := g.Generator()
	s := g.NewScalar().SetUint64(1)

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := m.Combine(pks, []group.Point{R, R}, []group.Scalar{s})
		require.ErrorIs(t, err, ErrLengthMismatch)

		_, err = m.Combine(pks[:1], []group.Point{R, R}, []group.Scalar{s, s})
		require.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := m.Combine(nil, nil, nil)
		require.ErrorIs(t, err, ErrNoParticipants)
	})

	t.Run("Sums", func(t *testing.T) {
		sig, err := m.Combine(pks, []group.Point{R, R}, []group.Scalar{s, s})
		require.NoError(t, err)
		two := g.NewScalar().SetUint64(2)
		require.True(t, sig.S.Equal(two))
		require.True(t, sig.R.Equal(g.NewPoint().ScalarMult(two, R)))
	})
}

func TestPartialSignatures(t *testing.T) {
	g := &bn254.BN254{}
	m := New(g, transcript.PoseidonFactory(g))
	kps, pks := keypairs(t, g, 2)
	msg := g.NewScalar().SetUint64(3)

	kc, err := m.KeysetChallenge(pks)
	require.NoError(t, err)
	aggPK, err := m.AggregatePublicKeys(pks, kc)
	require.NoError(t, err)

	t.Run("EachPartialVerifies", func(t *testing.T) {
		// generator * s_i == R_i + pk_i * c * coeff_i
		n0, err := m.CreateNonce(rand.Reader)
		require.NoError(t, err)
		n1, err := m.CreateNonce(rand.Reader)
		require.NoError(t, err)
		aggR, err := m.AggregateNonces([]group.Point{n0.Commitment, n1.Commitment})
		require.NoError(t, err)

		s0, err := m.Sign(kps[0], msg, kc, aggPK, aggR, n0)
		require.NoError(t, err)

		c, err := m.Challenge(aggPK, aggR, msg)
		require.NoError(t, err)
		coeff, err := m.Coefficient(kc, pks[0])
		require.NoError(t, err)

		lhs := g.NewPoint().ScalarMult(s0, g.Generator())
		rhs := g.NewPoint().ScalarMult(g.NewScalar().Mul(c, coeff), pks[0])
		rhs.Add(rhs, n0.Commitment)
		require.True(t, lhs.Equal(rhs))
	})

	t.Run("ZeroedNonceRejected", func(t *testing.T) {
		n, err := m.CreateNonce(rand.Reader)
		require.NoError(t, err)
		n.Zero()
		_, err = m.Sign(kps[0], msg, kc, aggPK, n.Commitment, n)
		require.ErrorIs(t, err, ErrNonceConsumed)
	})

	t.Run("MissingSignerFails", func(t *testing.T) {
		n0, err := m.CreateNonce(rand.Reader)
		require.NoError(t, err)
		s0, err := m.Sign(kps[0], msg, kc, aggPK, n0.Commitment, n0)
		require.NoError(t, err)

		sig, err := m.Combine(pks[:1], []group.Point{n0.Commitment}, []group.Scalar{s0})
		require.NoError(t, err)
		ok, err := m.Verify(sig, msg, aggPK)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestVerifyMalformed(t *testing.T) {
	g := &bn254.BN254{}
	m := New(g, transcript.PoseidonFactory(g))
	msg := g.NewScalar().SetUint64(3)

	ok, err := m.Verify(nil, msg, g.Generator())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = m.Verify(&schnorr.Signature{R: g.Generator()}, msg, g.Generator())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyUnabsorbableNonce(t *testing.T) {
	g := &bn254.BN254{}
	m := New(g, transcript.PoseidonFactory(g))
	kps, pks := keypairs(t, g, 2)
	msg := g.NewScalar().SetUint64(3)
	aggPK, sig := ceremony(t, m, kps, pks, msg)

	// The G1 point with the smallest x >= r is on the curve but its
	// encoding is not a canonical Fr element.
	var three fp.Element
	three.SetUint64(3)
	var R group.Point
	for x := fr.Modulus(); R == nil; x.Add(x, big.NewInt(1)) {
		var X, rhs, Y fp.Element
		X.SetBigInt(x)
		rhs.Square(&X).Mul(&rhs, &X).Add(&rhs, &three)
		if Y.Sqrt(&rhs) == nil {
			continue
		}
		be := (&curve.G1Affine{X: X, Y: Y}).Bytes()
		le := make([]byte, len(be))
		for i := range be {
			le[len(be)-1-i] = be[i]
		}
		var err error
		R, err = g.NewPoint().SetBytes(le)
		require.NoError(t, err)
	}

	ok, err := m.Verify(&schnorr.Signature{R: R, S: sig.S}, msg, aggPK)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = m.Challenge(aggPK, R, msg)
	require.ErrorIs(t, err, group.ErrScalarEncoding)
}

func TestPoseidonRejectsSecp256k1(t *testing.T) {
	g := &secp256k1.Secp256k1{}
	m := New(g, transcript.PoseidonFactory(g))
	_, pks := keypairs(t, g, 2)

	_, err := m.KeysetChallenge(pks)
	require.ErrorIs(t, err, transcript.ErrPointEncoding)
}

package schnorr

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/f3rmion/spongefish/bjj"
	"github.com/f3rmion/spongefish/bn254"
	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/ristretto255"
	"github.com/f3rmion/spongefish/secp256k1"
	"github.com/f3rmion/spongefish/transcript"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type suite struct {
	name    string
	g       group.Group
	factory transcript.Factory
}

func suites() []suite {
	var out []suite
	bn := &bn254.BN254{}
	out = append(out, suite{"bn254/poseidon", bn, transcript.PoseidonFactory(bn)})
	for _, g := range []group.Group{bn, &bjj.BJJ{}, &secp256k1.Secp256k1{}, &ristretto255.Ristretto255{}} {
		out = append(out,
			suite{g.Name() + "/blake2b", g, transcript.Blake2bFactory(g)},
			suite{g.Name() + "/sha3", g, transcript.SHA3Factory(g)},
		)
	}
	return out
}

func fresh(t *testing.T, f transcript.Factory) transcript.Transcript {
	t.Helper()
	tr, err := f()
	require.NoError(t, err)
	return tr
}

func TestSignVerify(t *testing.T) {
	for _, tc := range suites() {
		t.Run(tc.name, func(t *testing.T) {
			g := tc.g
			kp, err := GenerateKeypair(g, rand.Reader)
			require.NoError(t, err)
			msg, err := MessageFromBytes(g, []byte("hello spongefish"))
			require.NoError(t, err)

			sig, err := Sign(rand.Reader, kp, fresh(t, tc.factory), msg)
			require.NoError(t, err)

			t.Run("Valid", func(t *testing.T) {
				ok, err := Verify(g, sig, kp.PublicKey, fresh(t, tc.factory), msg)
				require.NoError(t, err)
				require.True(t, ok)
			})

			t.Run("WrongMessage", func(t *testing.T) {
				other, err := MessageFromBytes(g, []byte("goodbye spongefish"))
				require.NoError(t, err)
				ok, err := Verify(g, sig, kp.PublicKey, fresh(t, tc.factory), other)
				require.NoError(t, err)
				require.False(t, ok)
			})

			t.Run("WrongKey", func(t *testing.T) {
				other, err := GenerateKeypair(g, rand.Reader)
				require.NoError(t, err)
				ok, err := Verify(g, sig, other.PublicKey, fresh(t, tc.factory), msg)
				require.NoError(t, err)
				require.False(t, ok)
			})

			t.Run("TamperedS", func(t *testing.T) {
				bad := &Signature{R: sig.R, S: g.NewScalar().Add(sig.S, g.NewScalar().SetUint64(1))}
				ok, err := Verify(g, bad, kp.PublicKey, fresh(t, tc.factory), msg)
				require.NoError(t, err)
				require.False(t, ok)
			})

			t.Run("UsedTranscript", func(t *testing.T) {
				tr := fresh(t, tc.factory)
				tr.AbsorbScalar(msg)
				tr.SqueezeChallenge()
				ok, err := Verify(g, sig, kp.PublicKey, tr, msg)
				require.NoError(t, err)
				require.False(t, ok)
			})

			t.Run("BytesRoundtrip", func(t *testing.T) {
				parsed, err := ParseSignature(g, sig.Bytes())
				require.NoError(t, err)
				ok, err := Verify(g, parsed, kp.PublicKey, fresh(t, tc.factory), msg)
				require.NoError(t, err)
				require.True(t, ok)
			})
		})
	}
}

func TestAbsorbOrder(t *testing.T) {
	g := &bn254.BN254{}
	f := transcript.PoseidonFactory(g)
	kp, err := GenerateKeypair(g, rand.Reader)
	require.NoError(t, err)
	msg := g.NewScalar().SetUint64(42)

	// Sign with the public key absorbed before R.
	r, err := g.RandomScalar(rand.Reader)
	require.NoError(t, err)
	R := g.NewPoint().ScalarMult(r, g.Generator())
	tr := fresh(t, f)
	require.NoError(t, tr.AbsorbPoint(kp.PublicKey))
	require.NoError(t, tr.AbsorbPoint(R))
	tr.AbsorbScalar(msg)
	c := tr.SqueezeChallenge()
	s := g.NewScalar().Add(r, g.NewScalar().Mul(c, kp.PrivateKey()))

	ok, err := Verify(g, &Signature{R: R, S: s}, kp.PublicKey, fresh(t, f), msg)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyMalformed(t *testing.T) {
	g := &bn254.BN254{}
	f := transcript.PoseidonFactory(g)
	kp, err := GenerateKeypair(g, rand.Reader)
	require.NoError(t, err)
	msg := g.NewScalar().SetUint64(1)

	for name, sig := range map[string]*Signature{
		"Nil":      nil,
		"NilR":     {S: g.NewScalar()},
		"NilS":     {R: g.Generator()},
		"Identity": {R: g.NewPoint(), S: g.NewScalar()},
	} {
		t.Run(name, func(t *testing.T) {
			ok, err := Verify(g, sig, kp.PublicKey, fresh(t, f), msg)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

// pointAboveScalarField returns the G1 point with the smallest x >= r. Its
// encoding decodes to a value outside Fr.
func pointAboveScalarField(t *testing.T) group.Point {
	t.Helper()
	var three fp.Element
	three.SetUint64(3)
	for x := fr.Modulus(); ; x.Add(x, big.NewInt(1)) {
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
		p, err := (&bn254.BN254{}).NewPoint().SetBytes(le)
		require.NoError(t, err)
		return p
	}
}

func TestVerifyUnabsorbableR(t *testing.T) {
	g := &bn254.BN254{}
	f := transcript.PoseidonFactory(g)
	kp, err := GenerateKeypair(g, rand.Reader)
	require.NoError(t, err)

	R := pointAboveScalarField(t)
	_, err = g.DecodeScalar(R.Bytes())
	require.ErrorIs(t, err, group.ErrScalarEncoding)

	sig, err := ParseSignature(g, (&Signature{R: R, S: g.NewScalar().SetUint64(1)}).Bytes())
	require.NoError(t, err)

	ok, err := Verify(g, sig, kp.PublicKey, fresh(t, f), g.NewScalar().SetUint64(1))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseSignature(t *testing.T) {
	g := &secp256k1.Secp256k1{}

	t.Run("WrongLength", func(t *testing.T) {
		_, err := ParseSignature(g, make([]byte, 64))
		require.Error(t, err)
	})

	t.Run("UnreducedS", func(t *testing.T) {
		data := append(g.Generator().Bytes(), make([]byte, 32)...)
		for i := 33; i < len(data); i++ {
			data[i] = 0xff
		}
		_, err := ParseSignature(g, data)
		require.Error(t, err)
	})

	t.Run("BadPoint", func(t *testing.T) {
		data := make([]byte, 65)
		data[0] = 0x02
		for i := 1; i < 33; i++ {
			data[i] = 0xff
		}
		_, err := ParseSignature(g, data)
		require.Error(t, err)
	})
}

func TestKeypair(t *testing.T) {
	g := &bn254.BN254{}

	t.Run("NewKeypair", func(t *testing.T) {
		sk := g.NewScalar().SetUint64(5)
		kp, err := NewKeypair(g, sk)
		require.NoError(t, err)

		five := g.NewPoint().ScalarMult(g.NewScalar().SetUint64(5), g.Generator())
		require.True(t, kp.PublicKey.Equal(five))

		sk.SetUint64(6)
		require.True(t, kp.PrivateKey().Equal(g.NewScalar().SetUint64(5)), "keypair aliases caller's scalar")
	})

	t.Run("RejectsZero", func(t *testing.T) {
		_, err := NewKeypair(g, g.NewScalar())
		require.ErrorIs(t, err, ErrZeroPrivateKey)
	})

	t.Run("NeverRevealsPrivateKey", func(t *testing.T) {
		kp, err := GenerateKeypair(g, rand.Reader)
		require.NoError(t, err)
		secret := hex.EncodeToString(kp.PrivateKey().Bytes())
		decimal := fmt.Sprint(kp.PrivateKey())

		js, err := json.Marshal(kp)
		require.NoError(t, err)

		core, logs := observer.New(zap.InfoLevel)
		zap.New(core).Info("generated", zap.Object("keypair", kp))
		require.Equal(t, 1, logs.Len())

		outputs := []string{
			fmt.Sprintf("%v", kp),
			fmt.Sprintf("%+v", kp),
			fmt.Sprintf("%#v", kp),
			string(js),
			fmt.Sprint(logs.All()[0].ContextMap()),
		}
		for _, out := range outputs {
			require.NotContains(t, out, secret)
			require.NotContains(t, out, decimal)
			require.Contains(t, out, hex.EncodeToString(kp.PublicKey.Bytes()))
		}
	})
}

package bn254

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/f3rmion/spongefish/group"
)

func TestScalar(t *testing.T) {
	g := &BN254{}

	t.Run("AddSub", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)

		sum := g.NewScalar().Add(a, b)
		diff := g.NewScalar().Sub(sum, b)

		if !diff.Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		product := g.NewScalar().Mul(a, aInv)
		one := g.NewScalar().SetUint64(1)
		if !product.Equal(one) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		_, err := g.NewScalar().Invert(g.NewScalar())
		if err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		negA := g.NewScalar().Negate(a)

		if !g.NewScalar().Add(a, negA).IsZero() {
			t.Error("a + (-a) != 0")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)

		bytes := a.Bytes()
		if len(bytes) != 32 {
			t.Fatalf("scalar encoding is %d bytes, want 32", len(bytes))
		}
		restored, err := g.NewScalar().SetBytes(bytes)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("HashToScalarDeterministic", func(t *testing.T) {
		a, err := g.HashToScalar([]byte("spongefish"), []byte("bn254"))
		if err != nil {
			t.Fatal(err)
		}
		b, _ := g.HashToScalar([]byte("spongefish"), []byte("bn254"))
		c, _ := g.HashToScalar([]byte("spongefish"), []byte("bn255"))

		if !a.Equal(b) {
			t.Error("hash of equal input differs")
		}
		if a.Equal(c) {
			t.Error("hash of different input collides")
		}
	})

	t.Run("HashToScalarFramesParts", func(t *testing.T) {
		a, err := g.HashToScalar([]byte("ab"), []byte("c"))
		if err != nil {
			t.Fatal(err)
		}
		b, _ := g.HashToScalar([]byte("a"), []byte("bc"))
		c, _ := g.HashToScalar([]byte("abc"))

		if a.Equal(b) || a.Equal(c) || b.Equal(c) {
			t.Error("moving a part boundary did not change the hash")
		}
	})
}

func TestDecodeScalar(t *testing.T) {
	g := &BN254{}

	t.Run("LittleEndian", func(t *testing.T) {
		s, err := g.DecodeScalar([]byte{0x2a})
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(g.NewScalar().SetUint64(42)) {
			t.Errorf("got %v, want 42", s)
		}
	})

	t.Run("InverseOfBytes", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		be := a.Bytes()
		le := make([]byte, len(be))
		for i := range be {
			le[len(be)-1-i] = be[i]
		}

		s, err := g.DecodeScalar(le)
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(a) {
			t.Error("decoding reversed scalar bytes did not round-trip")
		}
	})

	t.Run("ClearsFlagBits", func(t *testing.T) {
		data := make([]byte, 32)
		data[0] = 7
		data[31] = 0xc0

		s, err := g.DecodeScalar(data)
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(g.NewScalar().SetUint64(7)) {
			t.Errorf("got %v, want 7", s)
		}
	})

	t.Run("RejectsModulus", func(t *testing.T) {
		be := fr.Modulus().Bytes()
		le := make([]byte, len(be))
		for i := range be {
			le[len(be)-1-i] = be[i]
		}

		_, err := g.DecodeScalar(le)
		if !errors.Is(err, group.ErrScalarEncoding) {
			t.Errorf("expected ErrScalarEncoding, got %v", err)
		}
	})

	t.Run("RejectsTooWide", func(t *testing.T) {
		_, err := g.DecodeScalar(make([]byte, 33))
		if !errors.Is(err, group.ErrScalarEncoding) {
			t.Errorf("expected ErrScalarEncoding, got %v", err)
		}
	})

	t.Run("AcceptsGeneratorBytes", func(t *testing.T) {
		// x(G) = 1.
		s, err := g.DecodeScalar(g.Generator().Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(g.NewScalar().SetUint64(1)) {
			t.Errorf("got %v, want 1", s)
		}
	})
}

func TestPoint(t *testing.T) {
	g := &BN254{}

	t.Run("AddSub", func(t *testing.T) {
		s1, _ := g.RandomScalar(rand.Reader)
		s2, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s1, g.Generator())
		Q := g.NewPoint().ScalarMult(s2, g.Generator())

		sum := g.NewPoint().Add(P, Q)
		diff := g.NewPoint().Sub(sum, Q)

		if !diff.Equal(P) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("ScalarMultDistributes", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)

		lhs := g.NewPoint().ScalarMult(g.NewScalar().Add(a, b), g.Generator())
		rhs := g.NewPoint().Add(
			g.NewPoint().ScalarMult(a, g.Generator()),
			g.NewPoint().ScalarMult(b, g.Generator()),
		)
		if !lhs.Equal(rhs) {
			t.Error("(a+b)G != aG + bG")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())

		if !g.NewPoint().Add(P, g.NewPoint().Negate(P)).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())

		bytes := P.Bytes()
		if len(bytes) != 32 {
			t.Fatalf("point encoding is %d bytes, want 32", len(bytes))
		}
		restored, err := g.NewPoint().SetBytes(bytes)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("IdentityRoundtrip", func(t *testing.T) {
		restored, err := g.NewPoint().SetBytes(g.NewPoint().Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.IsIdentity() {
			t.Error("identity bytes roundtrip failed")
		}
	})

	t.Run("SetBytesWrongLength", func(t *testing.T) {
		if _, err := g.NewPoint().SetBytes(make([]byte, 31)); err == nil {
			t.Error("expected error for short encoding")
		}
	})

	t.Run("IsIdentity", func(t *testing.T) {
		if !g.NewPoint().IsIdentity() {
			t.Error("new point should be identity")
		}
		if g.Generator().IsIdentity() {
			t.Error("generator should not be identity")
		}
	})
}

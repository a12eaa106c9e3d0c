package secp256k1

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/f3rmion/spongefish/group"
)

func TestScalar(t *testing.T) {
	g := &Secp256k1{}

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
		if !g.NewScalar().Mul(a, aInv).Equal(g.NewScalar().SetUint64(1)) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		if _, err := g.NewScalar().Invert(g.NewScalar()); err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("SetBytesReduces", func(t *testing.T) {
		// n + 5 reduces to 5.
		order := g.Order()
		data := make([]byte, len(order))
		copy(data, order)
		data[len(data)-1] += 5

		s, err := g.NewScalar().SetBytes(data)
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(g.NewScalar().SetUint64(5)) {
			t.Errorf("got %v, want 5", s)
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		restored, err := g.NewScalar().SetBytes(a.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})
}

func TestDecodeScalar(t *testing.T) {
	g := &Secp256k1{}

	t.Run("LittleEndian", func(t *testing.T) {
		s, err := g.DecodeScalar([]byte{0x00, 0x01})
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(g.NewScalar().SetUint64(256)) {
			t.Errorf("got %v, want 256", s)
		}
	})

	t.Run("RejectsAllOnes", func(t *testing.T) {
		data := make([]byte, ScalarSize)
		for i := range data {
			data[i] = 0xff
		}
		_, err := g.DecodeScalar(data)
		if !errors.Is(err, group.ErrScalarEncoding) {
			t.Errorf("expected ErrScalarEncoding, got %v", err)
		}
	})

	t.Run("RejectsCompressedPoint", func(t *testing.T) {
		_, err := g.DecodeScalar(g.Generator().Bytes())
		if !errors.Is(err, group.ErrScalarEncoding) {
			t.Errorf("expected ErrScalarEncoding, got %v", err)
		}
	})
}

func TestPoint(t *testing.T) {
	g := &Secp256k1{}

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
		if len(bytes) != PointSize {
			t.Fatalf("point encoding is %d bytes, want %d", len(bytes), PointSize)
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

	t.Run("ZeroScalarGivesIdentity", func(t *testing.T) {
		if !g.NewPoint().ScalarMult(g.NewScalar(), g.Generator()).IsIdentity() {
			t.Error("0*G != identity")
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

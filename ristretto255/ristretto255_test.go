package ristretto255

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/f3rmion/spongefish/group"
)

func TestScalar(t *testing.T) {
	g := &Ristretto255{}

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

	t.Run("BytesBigEndian", func(t *testing.T) {
		got := g.NewScalar().SetUint64(0x0102).Bytes()
		want := make([]byte, ScalarSize)
		want[30], want[31] = 0x01, 0x02
		if !bytes.Equal(got, want) {
			t.Errorf("got %x, want %x", got, want)
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

	t.Run("RandomScalarUsesReader", func(t *testing.T) {
		seed := bytes.Repeat([]byte{7}, 64)
		a, err := g.RandomScalar(bytes.NewReader(seed))
		if err != nil {
			t.Fatal(err)
		}
		b, _ := g.RandomScalar(bytes.NewReader(seed))
		if !a.Equal(b) {
			t.Error("same reader contents gave different scalars")
		}
	})
}

func TestDecodeScalar(t *testing.T) {
	g := &Ristretto255{}

	t.Run("InverseOfBytes", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		s, err := g.DecodeScalar(reverse(a.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		if !s.Equal(a) {
			t.Error("decoding reversed scalar bytes did not round-trip")
		}
	})

	t.Run("RejectsOrder", func(t *testing.T) {
		_, err := g.DecodeScalar(reverse(g.Order()))
		if !errors.Is(err, group.ErrScalarEncoding) {
			t.Errorf("expected ErrScalarEncoding, got %v", err)
		}
	})
}

func TestPoint(t *testing.T) {
	g := &Ristretto255{}

	t.Run("AddSub", func(t *testing.T) {
		s1, _ := g.RandomScalar(rand.Reader)
		s2, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s1, g.Generator())
		Q := g.NewPoint().ScalarMult(s2, g.Generator())

		diff := g.NewPoint().Sub(g.NewPoint().Add(P, Q), Q)
		if !diff.Equal(P) {
			t.Error("(P+Q)-Q != P")
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

		restored, err := g.NewPoint().SetBytes(P.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("SetBytesInvalid", func(t *testing.T) {
		bad := bytes.Repeat([]byte{0xff}, 32)
		if _, err := g.NewPoint().SetBytes(bad); err == nil {
			t.Error("expected error for non-canonical encoding")
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

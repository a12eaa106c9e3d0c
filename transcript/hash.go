package transcript

import (
	"encoding/binary"
	"hash"

	"github.com/f3rmion/spongefish/group"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Domain separation tags for absorbed values.
const (
	tagPoint     byte = 'P'
	tagScalar    byte = 'S'
	tagChallenge byte = 'C'
)

// Hash is a transcript backed by a 512-bit hash function.
//
// Each absorbed value is written as a one-byte tag, a 4-byte big-endian
// length and its canonical encoding. A challenge is the digest read as a
// little-endian integer and reduced modulo the group order. After a squeeze
// the hash restarts from the domain prefix and the previous digest, so
// later challenges depend on everything absorbed before.
type Hash struct {
	g      group.Group
	prefix []byte
	newH   func() hash.Hash
	h      hash.Hash
}

func newHash(g group.Group, name string, newH func() hash.Hash) *Hash {
	t := &Hash{
		g:      g,
		prefix: []byte("spongefish-transcript-" + name + "-v1/" + g.Name()),
		newH:   newH,
	}
	t.reset(nil)
	return t
}

// NewBlake2b returns an empty BLAKE2b-512 transcript for g.
func NewBlake2b(g group.Group) (*Hash, error) {
	return newHash(g, BackendBlake2b, func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	}), nil
}

// NewSHA3 returns an empty SHA3-512 transcript for g.
func NewSHA3(g group.Group) (*Hash, error) {
	return newHash(g, BackendSHA3, sha3.New512), nil
}

func (t *Hash) reset(chain []byte) {
	t.h = t.newH()
	t.h.Write(t.prefix)
	if chain != nil {
		t.write(tagChallenge, chain)
	}
}

func (t *Hash) write(tag byte, data []byte) {
	var hdr [5]byte
	hdr[0] = tag
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(data)))
	t.h.Write(hdr[:])
	t.h.Write(data)
}

// AbsorbPoint implements Transcript. It never fails.
func (t *Hash) AbsorbPoint(p group.Point) error {
	t.write(tagPoint, p.Bytes())
	return nil
}

// AbsorbScalar implements Transcript.
func (t *Hash) AbsorbScalar(s group.Scalar) {
	t.write(tagScalar, s.Bytes())
}

// SqueezeChallenge implements Transcript.
func (t *Hash) SqueezeChallenge() group.Scalar {
	digest := t.h.Sum(nil)

	// Little-endian interpretation before reducing mod order.
	reversed := make([]byte, len(digest))
	for i := range digest {
		reversed[i] = digest[len(digest)-1-i]
	}
	s, _ := t.g.NewScalar().SetBytes(reversed)

	t.reset(digest)
	return s
}

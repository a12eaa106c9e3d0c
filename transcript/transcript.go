package transcript

import (
	"errors"
	"fmt"

	"github.com/f3rmion/spongefish/group"
)

// ErrPointEncoding is returned when a compressed point cannot be
// reinterpreted as a scalar of the same group, which means the group is not
// usable with the Poseidon transcript.
var ErrPointEncoding = errors.New("transcript: point encoding incompatible with scalar field")

// ErrUnknownBackend is returned by [FactoryByName] for unrecognized names.
var ErrUnknownBackend = errors.New("transcript: unknown backend")

// Transcript is a Fiat-Shamir transcript. Protocols absorb the public values
// of an interaction in a fixed order and squeeze challenges from it.
//
// Implementations are stateful and not safe for concurrent use. A transcript
// belongs to one protocol instance.
type Transcript interface {
	// AbsorbPoint appends a group element to the transcript.
	AbsorbPoint(p group.Point) error
	// AbsorbScalar appends a scalar to the transcript.
	AbsorbScalar(s group.Scalar)
	// SqueezeChallenge derives a challenge from everything absorbed so far.
	SqueezeChallenge() group.Scalar
}

// Factory creates fresh transcripts.
type Factory func() (Transcript, error)

// Backend names accepted by [FactoryByName].
const (
	BackendPoseidon = "poseidon"
	BackendBlake2b  = "blake2b"
	BackendSHA3     = "sha3"
)

// Backends lists the backend names in a stable order.
var Backends = []string{BackendPoseidon, BackendBlake2b, BackendSHA3}

// PoseidonFactory returns a Factory of Poseidon transcripts over g.
func PoseidonFactory(g group.Group) Factory {
	return func() (Transcript, error) {
		return NewPoseidon(g)
	}
}

// Blake2bFactory returns a Factory of BLAKE2b transcripts over g.
func Blake2bFactory(g group.Group) Factory {
	return func() (Transcript, error) {
		return NewBlake2b(g)
	}
}

// SHA3Factory returns a Factory of SHA3 transcripts over g.
func SHA3Factory(g group.Group) Factory {
	return func() (Transcript, error) {
		return NewSHA3(g)
	}
}

// FactoryByName returns the Factory for the named backend. For the Poseidon
// backend it builds one transcript up front so that an unusable group is
// reported here rather than on first use.
func FactoryByName(name string, g group.Group) (Factory, error) {
	var f Factory
	switch name {
	case BackendPoseidon:
		f = PoseidonFactory(g)
	case BackendBlake2b:
		f = Blake2bFactory(g)
	case BackendSHA3:
		f = SHA3Factory(g)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if _, err := f(); err != nil {
		return nil, err
	}
	return f, nil
}

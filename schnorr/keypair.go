package schnorr

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/spongefish/group"
	"go.uber.org/zap/zapcore"
)

// ErrZeroPrivateKey is returned by [NewKeypair] for a zero private key.
var ErrZeroPrivateKey = errors.New("schnorr: private key is zero")

const redacted = "[redacted]"

// Keypair is a Schnorr signing key together with its public key.
//
// The private key is never printed, marshaled or logged: String, GoString,
// MarshalJSON and MarshalLogObject only reveal the public key.
type Keypair struct {
	PublicKey group.Point

	g          group.Group
	privateKey group.Scalar
}

// GenerateKeypair samples a private key uniformly from the scalar field of g
// and derives PublicKey = generator * privateKey.
func GenerateKeypair(g group.Group, rng io.Reader) (*Keypair, error) {
	for {
		sk, err := g.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("sampling private key: %w", err)
		}
		if sk.IsZero() {
			continue
		}
		return newKeypair(g, sk), nil
	}
}

// NewKeypair builds a keypair from an existing private key. The scalar is
// copied.
func NewKeypair(g group.Group, privateKey group.Scalar) (*Keypair, error) {
	if privateKey == nil || privateKey.IsZero() {
		return nil, ErrZeroPrivateKey
	}
	return newKeypair(g, g.NewScalar().Set(privateKey)), nil
}

func newKeypair(g group.Group, sk group.Scalar) *Keypair {
	return &Keypair{
		PublicKey:  g.NewPoint().ScalarMult(sk, g.Generator()),
		g:          g,
		privateKey: sk,
	}
}

// PrivateKey returns a copy of the private key.
func (k *Keypair) PrivateKey() group.Scalar {
	return k.g.NewScalar().Set(k.privateKey)
}

// Group returns the group the keypair belongs to.
func (k *Keypair) Group() group.Group {
	return k.g
}

// String implements fmt.Stringer.
func (k *Keypair) String() string {
	return fmt.Sprintf("Keypair{PublicKey: %x, PrivateKey: %s}", k.PublicKey.Bytes(), redacted)
}

// GoString implements fmt.GoStringer so that %#v does not dump fields.
func (k *Keypair) GoString() string {
	return k.String()
}

// MarshalJSON encodes only the public key.
func (k *Keypair) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Group     string `json:"group"`
		PublicKey string `json:"public_key"`
	}{
		Group:     k.g.Name(),
		PublicKey: hex.EncodeToString(k.PublicKey.Bytes()),
	})
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (k *Keypair) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("group", k.g.Name())
	enc.AddString("public_key", hex.EncodeToString(k.PublicKey.Bytes()))
	enc.AddString("private_key", redacted)
	return nil
}

package poseidon

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/f3rmion/spongefish/group"
)

// Width is the number of field elements in the permutation state.
const Width = 5

var (
	// ErrInvalidParams is returned when a round-parameter table is malformed:
	// wrong constant count, bad hex, non-canonical field elements, or an
	// exponent that is not a permutation of the field.
	ErrInvalidParams = errors.New("poseidon: invalid round parameters")

	// ErrUnsupportedField is returned when no round-parameter table is
	// registered for a group's scalar field.
	ErrUnsupportedField = errors.New("poseidon: no parameters for field")
)

// RawParams is the serialized form of a Poseidon instance. Round constants
// and matrix entries are "0x"-prefixed big-endian hex strings exactly as wide
// as an encoded scalar.
type RawParams struct {
	Name           string
	FullRounds     int
	PartialRounds  int
	Alpha          uint64
	RoundConstants []string
	MDS            [Width][Width]string
}

// Params is a validated Poseidon instance over the scalar field of a group.
// It is immutable and safe for concurrent use.
type Params struct {
	name          string
	g             group.Group
	fullRounds    int
	partialRounds int
	alpha         uint64
	alphaInv      *big.Int
	constants     []group.Scalar
	mds           [Width][Width]group.Scalar
}

// NewParams decodes and validates raw against the scalar field of g.
// Every failure wraps [ErrInvalidParams].
func NewParams(g group.Group, raw RawParams) (*Params, error) {
	if raw.FullRounds <= 0 || raw.FullRounds%2 != 0 {
		return nil, fmt.Errorf("%w: full rounds must be positive and even, got %d", ErrInvalidParams, raw.FullRounds)
	}
	if raw.PartialRounds < 0 {
		return nil, fmt.Errorf("%w: negative partial rounds %d", ErrInvalidParams, raw.PartialRounds)
	}

	order := new(big.Int).SetBytes(g.Order())
	alphaInv, err := invertExponent(raw.Alpha, order)
	if err != nil {
		return nil, err
	}

	want := (raw.FullRounds + raw.PartialRounds) * Width
	if len(raw.RoundConstants) != want {
		return nil, fmt.Errorf("%w: got %d round constants, want %d", ErrInvalidParams, len(raw.RoundConstants), want)
	}

	p := &Params{
		name:          raw.Name,
		g:             g,
		fullRounds:    raw.FullRounds,
		partialRounds: raw.PartialRounds,
		alpha:         raw.Alpha,
		alphaInv:      alphaInv,
		constants:     make([]group.Scalar, len(raw.RoundConstants)),
	}
	for i, h := range raw.RoundConstants {
		if p.constants[i], err = decodeHex(g, h); err != nil {
			return nil, fmt.Errorf("round constant %d: %w", i, err)
		}
	}
	for i := range raw.MDS {
		for j := range raw.MDS[i] {
			if p.mds[i][j], err = decodeHex(g, raw.MDS[i][j]); err != nil {
				return nil, fmt.Errorf("mds[%d][%d]: %w", i, j, err)
			}
		}
	}
	return p, nil
}

// MustParams is like [NewParams] but panics on error. It is intended for
// package-level tables that must be valid at program start.
func MustParams(g group.Group, raw RawParams) *Params {
	p, err := NewParams(g, raw)
	if err != nil {
		panic(fmt.Sprintf("poseidon: loading %q: %v", raw.Name, err))
	}
	return p
}

// invertExponent returns alpha^-1 mod (order-1), failing when x -> x^alpha is
// not a bijection of the field.
func invertExponent(alpha uint64, order *big.Int) (*big.Int, error) {
	if alpha < 3 {
		return nil, fmt.Errorf("%w: alpha %d too small", ErrInvalidParams, alpha)
	}
	a := new(big.Int).SetUint64(alpha)
	m := new(big.Int).Sub(order, big.NewInt(1))
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, fmt.Errorf("%w: gcd(%d, order-1) != 1", ErrInvalidParams, alpha)
	}
	return inv, nil
}

// decodeHex decodes a "0x"-prefixed big-endian hex string into a scalar.
// The bytes are reversed and passed through the field's little-endian
// decoder, and the result must re-encode to the same bytes, so values
// that would be masked or reduced are rejected.
func decodeHex(g group.Group, s string) (group.Scalar, error) {
	size := len(g.NewScalar().Bytes())
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		return nil, fmt.Errorf("%w: %q lacks 0x prefix", ErrInvalidParams, s)
	}
	if len(digits) != 2*size {
		return nil, fmt.Errorf("%w: %q is not %d hex digits", ErrInvalidParams, s, 2*size)
	}
	be, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	le := make([]byte, len(be))
	for i := range be {
		le[len(be)-1-i] = be[i]
	}
	v, err := g.DecodeScalar(le)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if !bytes.Equal(v.Bytes(), be) {
		return nil, fmt.Errorf("%w: %q is not a canonical field element", ErrInvalidParams, s)
	}
	return v, nil
}

// Name returns the instance name, such as "bn254-x5".
func (p *Params) Name() string { return p.name }

// Group returns the group whose scalar field the permutation runs over.
func (p *Params) Group() group.Group { return p.g }

// FullRounds returns Rf, the total number of full rounds.
func (p *Params) FullRounds() int { return p.fullRounds }

// PartialRounds returns Rp.
func (p *Params) PartialRounds() int { return p.partialRounds }

// Alpha returns the S-box exponent.
func (p *Params) Alpha() uint64 { return p.alpha }

// AlphaInverse returns the exponent of the inverse S-box.
func (p *Params) AlphaInverse() *big.Int { return new(big.Int).Set(p.alphaInv) }

// RoundConstant returns a copy of the i-th round constant.
func (p *Params) RoundConstant(i int) group.Scalar {
	return p.g.NewScalar().Set(p.constants[i])
}

// MDS returns a copy of matrix entry (i, j).
func (p *Params) MDS(i, j int) group.Scalar {
	return p.g.NewScalar().Set(p.mds[i][j])
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Params{}
)

func fieldKey(g group.Group) string {
	return hex.EncodeToString(g.Order())
}

// Register makes p the parameter set used for its field. A later
// registration for the same field replaces the earlier one.
func Register(p *Params) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[fieldKey(p.g)] = p
}

// ParamsFor returns the parameters registered for the scalar field of g.
func ParamsFor(g group.Group) (*Params, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[fieldKey(g)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedField, g.Name())
	}
	return p, nil
}

// Registered returns all registered parameter sets ordered by name.
func Registered() []*Params {
	registryMu.RLock()
	out := make([]*Params, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	registryMu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Package common holds the flags and helpers shared by the spongefish
// subcommands.
package common

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/f3rmion/spongefish/bjj"
	"github.com/f3rmion/spongefish/bn254"
	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/ristretto255"
	"github.com/f3rmion/spongefish/schnorr"
	"github.com/f3rmion/spongefish/secp256k1"
	"github.com/f3rmion/spongefish/transcript"
)

const (
	GroupKey      = "group"
	TranscriptKey = "transcript"
	MessageKey    = "message"
	ScalarKey     = "scalar"
	VerboseKey    = "verbose"
)

var (
	errMissingMessage = errors.New("--message is required")
	errUnknownGroup   = errors.New("unknown group")
	errInvalidScalar  = errors.New("message is not a scalar below the group order")
)

// Groups returns every group the CLI can sign over.
func Groups() []group.Group {
	return []group.Group{
		&bn254.BN254{},
		&bjj.BJJ{},
		&secp256k1.Secp256k1{},
		&ristretto255.Ristretto255{},
	}
}

// GroupByName looks up a group by its Name.
func GroupByName(name string) (group.Group, error) {
	names := make([]string, 0, 4)
	for _, g := range Groups() {
		if g.Name() == name {
			return g, nil
		}
		names = append(names, g.Name())
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", errUnknownGroup, name, strings.Join(names, ", "))
}

func AddFlags(flags *pflag.FlagSet) {
	flags.String(GroupKey, "bn254", "Group to sign over (bn254, bjj, secp256k1, ristretto255)")
	flags.String(TranscriptKey, transcript.BackendPoseidon, "Transcript backend (poseidon, blake2b, sha3)")
	flags.String(MessageKey, "", "Message to sign (required)")
	flags.Bool(ScalarKey, false, "Read the message as a decimal scalar instead of hashing its bytes")
	flags.Bool(VerboseKey, false, "Log at debug level")
}

type Config struct {
	Group      group.Group
	Transcript transcript.Factory
	Message    group.Scalar
	Verbose    bool
}

func ParseFlags(flags *pflag.FlagSet) (*Config, error) {
	groupName, err := flags.GetString(GroupKey)
	if err != nil {
		return nil, err
	}
	g, err := GroupByName(groupName)
	if err != nil {
		return nil, err
	}

	backend, err := flags.GetString(TranscriptKey)
	if err != nil {
		return nil, err
	}
	f, err := transcript.FactoryByName(backend, g)
	if err != nil {
		return nil, fmt.Errorf("transcript %q over %s: %w", backend, g.Name(), err)
	}

	msgStr, err := flags.GetString(MessageKey)
	if err != nil {
		return nil, err
	}
	asScalar, err := flags.GetBool(ScalarKey)
	if err != nil {
		return nil, err
	}
	msg, err := ParseMessage(g, msgStr, asScalar)
	if err != nil {
		return nil, err
	}

	verbose, err := flags.GetBool(VerboseKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Group:      g,
		Transcript: f,
		Message:    msg,
		Verbose:    verbose,
	}, nil
}

// ParseMessage turns the --message flag into a scalar. By default the bytes
// are hashed to a scalar; with asScalar set the text must be a decimal
// integer below the group order.
func ParseMessage(g group.Group, msg string, asScalar bool) (group.Scalar, error) {
	if msg == "" {
		return nil, errMissingMessage
	}
	if !asScalar {
		return schnorr.MessageFromBytes(g, []byte(msg))
	}

	v, ok := new(big.Int).SetString(msg, 10)
	order := new(big.Int).SetBytes(g.Order())
	if !ok || v.Sign() < 0 || v.Cmp(order) >= 0 {
		return nil, fmt.Errorf("%w: %q", errInvalidScalar, msg)
	}
	buf := make([]byte, len(g.NewScalar().Bytes()))
	return g.NewScalar().SetBytes(v.FillBytes(buf))
}

// NewLogger returns a console logger writing to w, at debug level when
// verbose is set and info level otherwise.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	encoderConfig := zap.NewProductionEncoderConfig()
	if verbose {
		level = zapcore.DebugLevel
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

package verify

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/f3rmion/spongefish/cmd/spongefish/common"
	"github.com/f3rmion/spongefish/group"
	"github.com/f3rmion/spongefish/schnorr"
)

const (
	PublicKeyKey = "public-key"
	SignatureKey = "signature"
)

var (
	errMissingPublicKey = errors.New("--public-key is required")
	errMissingSignature = errors.New("--signature is required")
)

func AddFlags(flags *pflag.FlagSet) {
	common.AddFlags(flags)
	flags.String(PublicKeyKey, "", "Hex encoded public key (required)")
	flags.String(SignatureKey, "", "Hex encoded signature R || s (required)")
}

type Config struct {
	*common.Config
	PublicKey group.Point
	Signature *schnorr.Signature
}

func ParseFlags(flags *pflag.FlagSet) (*Config, error) {
	base, err := common.ParseFlags(flags)
	if err != nil {
		return nil, err
	}
	g := base.Group

	pkHex, err := flags.GetString(PublicKeyKey)
	if err != nil {
		return nil, err
	}
	if pkHex == "" {
		return nil, errMissingPublicKey
	}
	pkBytes, err := hex.DecodeString(pkHex)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	pk, err := g.NewPoint().SetBytes(pkBytes)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}

	sigHex, err := flags.GetString(SignatureKey)
	if err != nil {
		return nil, err
	}
	if sigHex == "" {
		return nil, errMissingSignature
	}
	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil {
		return nil, fmt.Errorf("decoding signature: %w", err)
	}
	sig, err := schnorr.ParseSignature(g, sigBytes)
	if err != nil {
		return nil, err
	}

	return &Config{
		Config:    base,
		PublicKey: pk,
		Signature: sig,
	}, nil
}

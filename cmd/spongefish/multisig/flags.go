package multisig

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/f3rmion/spongefish/cmd/spongefish/common"
)

const ParticipantsKey = "participants"

func AddFlags(flags *pflag.FlagSet) {
	common.AddFlags(flags)
	flags.Int(ParticipantsKey, 3, "Number of in-process participants")
}

type Config struct {
	*common.Config
	Participants int
}

func ParseFlags(flags *pflag.FlagSet) (*Config, error) {
	base, err := common.ParseFlags(flags)
	if err != nil {
		return nil, err
	}

	n, err := flags.GetInt(ParticipantsKey)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("--%s must be at least 1, got %d", ParticipantsKey, n)
	}

	return &Config{
		Config:       base,
		Participants: n,
	}, nil
}

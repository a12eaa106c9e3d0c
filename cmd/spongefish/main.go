package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/spongefish/cmd/spongefish/multisig"
	"github.com/f3rmion/spongefish/cmd/spongefish/params"
	"github.com/f3rmion/spongefish/cmd/spongefish/sign"
	"github.com/f3rmion/spongefish/cmd/spongefish/verify"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:          "spongefish",
		Short:        "Schnorr and MuSig signatures with algebraic-hash transcripts",
		SilenceUsage: true,
	}
	c.AddCommand(
		sign.Command(),
		verify.Command(),
		multisig.Command(),
		params.Command(),
	)
	return c
}

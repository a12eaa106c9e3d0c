package multisig

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f3rmion/spongefish/cmd/spongefish/common"
	"github.com/f3rmion/spongefish/musig"
	"github.com/f3rmion/spongefish/schnorr"
	"github.com/f3rmion/spongefish/session"
)

var errNotVerified = errors.New("aggregate signature does not verify")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "musig",
		Short: "Runs an in-process MuSig ceremony and verifies the result",
		RunE:  musigFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func musigFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags())
	if err != nil {
		return err
	}
	logger := common.NewLogger(c.ErrOrStderr(), config.Verbose)

	g := config.Group
	keypairs := make([]*schnorr.Keypair, config.Participants)
	for i := range keypairs {
		kp, err := schnorr.GenerateKeypair(g, rand.Reader)
		if err != nil {
			return err
		}
		logger.Debug("generated keypair", zap.Int("participant", i), zap.Object("keypair", kp))
		keypairs[i] = kp
	}

	m := musig.New(g, config.Transcript)
	sig, aggPK, err := session.RunLocal(c.Context(), m, rand.Reader, keypairs, config.Message, logger)
	if err != nil {
		return err
	}

	ok, err := m.Verify(sig, config.Message, aggPK)
	if err != nil {
		return err
	}
	if !ok {
		return errNotVerified
	}

	out := c.OutOrStdout()
	for i, kp := range keypairs {
		fmt.Fprintf(out, "public-key[%d]: %x\n", i, kp.PublicKey.Bytes())
	}
	fmt.Fprintf(out, "aggregate-public-key: %x\n", aggPK.Bytes())
	fmt.Fprintf(out, "signature: %x\n", sig.Bytes())
	fmt.Fprintln(out, "valid")
	return nil
}

package sign

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f3rmion/spongefish/cmd/spongefish/common"
	"github.com/f3rmion/spongefish/schnorr"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign",
		Short: "Signs a message with a fresh keypair",
		RunE:  signFunc,
	}
	flags := c.Flags()
	common.AddFlags(flags)
	return c
}

func signFunc(c *cobra.Command, args []string) error {
	config, err := common.ParseFlags(c.Flags())
	if err != nil {
		return err
	}
	logger := common.NewLogger(c.ErrOrStderr(), config.Verbose)

	g := config.Group
	kp, err := schnorr.GenerateKeypair(g, rand.Reader)
	if err != nil {
		return err
	}
	logger.Debug("generated keypair", zap.Object("keypair", kp))

	tr, err := config.Transcript()
	if err != nil {
		return err
	}
	sig, err := schnorr.Sign(rand.Reader, kp, tr, config.Message)
	if err != nil {
		return err
	}
	logger.Debug("signed message", zap.String("message", hex.EncodeToString(config.Message.Bytes())))

	out := c.OutOrStdout()
	fmt.Fprintf(out, "public-key: %x\n", kp.PublicKey.Bytes())
	fmt.Fprintf(out, "signature: %x\n", sig.Bytes())
	return nil
}

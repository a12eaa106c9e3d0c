package verify

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f3rmion/spongefish/cmd/spongefish/common"
	"github.com/f3rmion/spongefish/schnorr"
)

// ErrInvalidSignature makes the command exit non-zero when the signature
// does not verify.
var ErrInvalidSignature = errors.New("signature verification failed")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Verifies a Schnorr signature",
		RunE:  verifyFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func verifyFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags())
	if err != nil {
		return err
	}
	logger := common.NewLogger(c.ErrOrStderr(), config.Verbose)

	tr, err := config.Transcript()
	if err != nil {
		return err
	}
	ok, err := schnorr.Verify(config.Group, config.Signature, config.PublicKey, tr, config.Message)
	if err != nil {
		return err
	}
	if !ok {
		logger.Debug("signature rejected", zap.String("group", config.Group.Name()))
		return ErrInvalidSignature
	}

	fmt.Fprintln(c.OutOrStdout(), "valid")
	return nil
}

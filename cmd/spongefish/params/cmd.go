package params

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/spongefish/poseidon"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Lists the registered Poseidon parameter sets",
		RunE:  paramsFunc,
	}
}

func paramsFunc(c *cobra.Command, _ []string) error {
	out := c.OutOrStdout()
	for _, p := range poseidon.Registered() {
		fmt.Fprintf(out, "%s\tgroup=%s width=%d full-rounds=%d partial-rounds=%d alpha=%d constants=%d\n",
			p.Name(),
			p.Group().Name(),
			poseidon.Width,
			p.FullRounds(),
			p.PartialRounds(),
			p.Alpha(),
			(p.FullRounds()+p.PartialRounds())*poseidon.Width,
		)
	}
	return nil
}

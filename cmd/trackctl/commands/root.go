// Package commands implements trackctl, an offline tool for minting and
// checking tracking codes.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "trackctl",
		Short:        "Mint, validate and inspect tracking codes",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(generateCmd(), validateCmd(), formatCmd(), zoneCmd(), routingCmd())
	return root
}

func serviceFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVarP(target, "service", "s", "", usage)
}

package commands

import (
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/tracking"

	"github.com/spf13/cobra"
)

func routingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routing <address>...",
		Short: "Print the label routing code of an address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), tracking.RoutingHash(strings.Join(args, " ")))
			return nil
		},
	}
}

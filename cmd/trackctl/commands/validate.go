package commands

import (
	"fmt"

	"shipping/internal/core/domain/model/tracking"

	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "validate <code>",
		Short: "Check a tracking code; the service is inferred unless --service is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				code tracking.Code
				err  error
			)
			if service == "" {
				code, err = tracking.ParseAny(args[0])
			} else {
				var sc tracking.ServiceClass
				if sc, err = tracking.ParseServiceClass(service); err != nil {
					return err
				}
				code, err = tracking.Parse(args[0], sc)
			}
			if err != nil {
				return fmt.Errorf("invalid code %q: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid %s code %s\n", code.Service(), code.Formatted())
			return nil
		},
	}

	serviceFlag(cmd, &service, "expected service class")
	return cmd
}

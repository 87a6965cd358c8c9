package commands

import (
	"fmt"

	"shipping/internal/core/domain/model/tracking"

	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	var (
		service   string
		count     int
		formatted bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Mint random tracking codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := tracking.ParseServiceClass(service)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}

			for range count {
				code, err := tracking.Generate(sc)
				if err != nil {
					return err
				}
				if formatted {
					fmt.Fprintln(cmd.OutOrStdout(), code.Formatted())
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), code.String())
				}
			}
			return nil
		},
	}

	serviceFlag(cmd, &service, "service class: standard, express or same-day")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of codes")
	cmd.Flags().BoolVarP(&formatted, "formatted", "f", false, "print codes grouped with spaces")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

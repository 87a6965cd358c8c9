package commands

import (
	"fmt"

	"shipping/internal/core/domain/model/tracking"

	"github.com/spf13/cobra"
)

func formatCmd() *cobra.Command {
	var (
		service string
		dashed  bool
	)

	cmd := &cobra.Command{
		Use:   "format <digits>",
		Short: "Group a bare code the way it is printed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := tracking.ParseServiceClass(service)
			if err != nil {
				return err
			}
			if !dashed {
				formatted, fErr := tracking.Format(args[0], sc)
				if fErr != nil {
					return fErr
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatted)
				return nil
			}

			code, err := tracking.NewCode(args[0], sc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code.Dashed())
			return nil
		},
	}

	serviceFlag(cmd, &service, "service class of the code")
	cmd.Flags().BoolVarP(&dashed, "dashed", "d", false, "print the validated FDX-xxxx-xxxx dashed form")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

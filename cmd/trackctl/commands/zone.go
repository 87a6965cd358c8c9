package commands

import (
	"fmt"
	"strconv"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"

	"github.com/spf13/cobra"
)

func zoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone <origin-lat> <origin-lng> <destination-lat> <destination-lng>",
		Short: "Print the great-circle distance and shipping zone between two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var values [4]float64
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				values[i] = v
			}

			origin, err := kernel.NewLatLng(values[0], values[1])
			if err != nil {
				return fmt.Errorf("origin: %w", err)
			}
			destination, err := kernel.NewLatLng(values[2], values[3])
			if err != nil {
				return fmt.Errorf("destination: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "distance %.2f mi, zone %d\n",
				origin.DistanceMiles(destination), tracking.Zone(origin, destination))
			return nil
		},
	}
}

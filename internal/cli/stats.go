package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalogue, membership and loan counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.printStatistics(cmd, lib.Statistics())
			})
		},
	}
}

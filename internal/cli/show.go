package cli

import (
	"github.com/spf13/cobra"

	"pointpair/internal/app"
)

var showBuilding string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display stored building configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ShowOptions{
			Building: showBuilding,
		}

		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().StringVar(&showBuilding, "building", "", "Show the full configuration for one building")
}

package cli

import (
	"github.com/spf13/cobra"

	"pointpair/internal/app"
)

var (
	discoverBuilding string
	discoverSave     bool
	discoverJSON     bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover <trend-log.csv>",
	Short: "Discover sensor pairs in a single trend log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.DiscoverOptions{
			Path:     args[0],
			Building: discoverBuilding,
			Save:     discoverSave,
			JSON:     discoverJSON,
		}

		return getApp().Discover(cmd.Context(), opts)
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverBuilding, "building", "", "Building name (defaults to the file name)")
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false, "Persist the discovered configuration")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Emit the result as JSON")
}

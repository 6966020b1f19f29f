package cli

import (
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <evidence.json>",
	Short: "Render fault evidence JSON as a human-readable report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Render(args[0])
	},
}

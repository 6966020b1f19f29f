package cli

import (
	"github.com/spf13/cobra"
)

var (
	formatPoint string
	formatUnit  string
)

var formatCmd = &cobra.Command{
	Use:   "format <diagnosis>",
	Short: "Inject units into a diagnosis string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().FormatDiagnosis(args[0], formatPoint, formatUnit)
	},
}

func init() {
	formatCmd.Flags().StringVar(&formatPoint, "point", "", "Point name used to infer the unit")
	formatCmd.Flags().StringVar(&formatUnit, "unit", "", "Unit override (skips inference)")
}

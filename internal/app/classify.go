package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"pointpair/internal/units"
)

// Classify prints the display unit inferred for each point name.
func (a *App) Classify(names []string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Point\tUnit")
	for _, name := range names {
		unit := units.Classify(name)
		if unit == "" {
			unit = "(none)"
		}
		fmt.Fprintf(writer, "%s\t%s\n", name, unit)
	}
	return writer.Flush()
}

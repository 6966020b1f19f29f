package app

import (
	"fmt"
	"os"

	"pointpair/internal/diagnosis"
)

// FormatDiagnosis injects units into a diagnosis string and prints it.
func (a *App) FormatDiagnosis(template, pointName, unitOverride string) error {
	_, err := fmt.Fprintln(os.Stdout, diagnosis.Format(template, pointName, unitOverride))
	return err
}

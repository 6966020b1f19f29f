package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"pointpair/internal/diagnosis"
)

// Render reads fault evidence JSON from a file (or stdin when path is "-")
// and prints the human-readable report for each record.
func (a *App) Render(path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	records, err := decodeEvidence(data)
	if err != nil {
		return fmt.Errorf("decode evidence: %w", err)
	}

	for i, ev := range records {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintln(os.Stdout, diagnosis.RenderEvidence(ev))
	}
	return nil
}

// decodeEvidence accepts either a single evidence object or an array.
func decodeEvidence(data []byte) ([]diagnosis.FaultEvidence, error) {
	var records []diagnosis.FaultEvidence
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var single diagnosis.FaultEvidence
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []diagnosis.FaultEvidence{single}, nil
}

// Package columns extracts column metadata from trend-log CSV exports.
// It reads the minimum needed for pair discovery: the header row plus
// one representative data row.
package columns

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"pointpair/internal/discovery"
)

// ErrNoHeader indicates the CSV had no header row at all.
var ErrNoHeader = errors.New("columns: csv has no header row")

// ReadSamples reads the header row and the first data row of a CSV and
// returns the ordered column samples discovery consumes. A file with a
// header but no data rows yields samples with empty values; anything
// less is a contract violation and fails fast.
func ReadSamples(r io.Reader) ([]discovery.ColumnSample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	row, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv sample row: %w", err)
	}

	samples := make([]discovery.ColumnSample, 0, len(header))
	for i, name := range header {
		sample := ""
		if i < len(row) {
			sample = strings.TrimSpace(row[i])
		}
		samples = append(samples, discovery.ColumnSample{
			Name:   strings.TrimSpace(name),
			Sample: sample,
		})
	}
	return samples, nil
}

// ScanInstanceValues collects the distinct values of one column across
// the whole file, in first-seen order. Used to verify how many sensor
// instances a log actually carries. r must be positioned at the start of
// the file (header included).
func ScanInstanceValues(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("columns: %q not found in header", column)
	}

	seen := make(map[string]bool)
	values := make([]string, 0, 2)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan %q values: %w", column, err)
		}
		if idx >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[idx])
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}

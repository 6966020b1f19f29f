// Package diagnosis renders fault-analysis text for display.
//
// Upstream components emit free-text diagnosis templates containing
// recognized numeric placeholders (Δ=…, deviation of …, Setpoint=…,
// Measured=…, CMD=…, POS=…). This package injects display units into
// those placeholders and extracts deviations back out of them. The
// placeholder grammar is a wire contract between the fault-analysis
// engine and the display layer; do not change it without a version bump.
package diagnosis

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"pointpair/internal/units"
)

var (
	deltaRe     = regexp.MustCompile(`Δ=\d+(?:\.\d+)?`)
	deviationRe = regexp.MustCompile(`(?i)deviation of \d+(?:\.\d+)?`)
	keyValueRe  = regexp.MustCompile(`(?i)(Setpoint|Measured|CMD|POS)=\d+(?:\.\d+)?`)

	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Format injects the resolved unit into every recognized numeric
// placeholder of template. The unit comes from unitOverride when given,
// otherwise from classifying pointName; when neither yields a unit the
// template is returned unchanged — a unit is never invented. An empty
// template returns empty.
func Format(template, pointName, unitOverride string) string {
	if template == "" {
		return ""
	}

	unit := resolveUnit(pointName, unitOverride)
	if unit == "" {
		return template
	}

	out := appendUnit(template, deltaRe, unit)
	out = appendUnit(out, deviationRe, unit)

	// Setpoint/Measured/CMD/POS values only carry °F or % meaningfully;
	// other units (flow, pressure) read wrong appended to these keys.
	if unit == units.UnitFahrenheit || unit == units.UnitPercent {
		out = appendUnit(out, keyValueRe, unit)
	}
	return out
}

// Deviation is a numeric deviation recovered from a diagnosis template.
type Deviation struct {
	Text      string  // the matched numeric text, verbatim
	Unit      string  // resolved display unit ("" if none)
	Formatted string  // magnitude-formatted value with unit appended
	Delta     float64 // parsed numeric value
}

// ExtractDeviation pulls the deviation magnitude out of a template,
// trying Δ=<n> first and then "deviation of <n>". It returns nil when
// neither placeholder is present.
func ExtractDeviation(template, pointName, unitOverride string) *Deviation {
	match := deltaRe.FindString(template)
	if match == "" {
		match = deviationRe.FindString(template)
	}
	if match == "" {
		return nil
	}

	text := numberRe.FindString(match)
	delta, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}

	unit := resolveUnit(pointName, unitOverride)
	return &Deviation{
		Text:      text,
		Unit:      unit,
		Formatted: FormatValue(text) + unit,
		Delta:     delta,
	}
}

// FormatValue renders a raw numeric string with magnitude-dependent
// precision: <0.01 → 4 decimals, <1 → 2, <100 → 1, otherwise none.
// Non-numeric input renders as the literal placeholder "—".
func FormatValue(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "—"
	}
	return FormatFloat(v)
}

// FormatFloat is FormatValue for an already-parsed value.
func FormatFloat(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(placesFor(v))
}

func placesFor(v float64) int32 {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 0.01:
		return 4
	case abs < 1:
		return 2
	case abs < 100:
		return 1
	default:
		return 0
	}
}

func resolveUnit(pointName, unitOverride string) string {
	if unitOverride != "" {
		return unitOverride
	}
	return units.Classify(pointName)
}

// appendUnit rewrites every match so the unit directly follows the
// trailing number. All patterns end at the number, so appending to the
// whole match is exact.
func appendUnit(s string, re *regexp.Regexp, unit string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		return m + unit
	})
}

// Package units maps building-automation point names to display units.
//
// Classification is by ordered precedence: the first category whose
// predicate matches wins, so a name carrying both a damper token and a
// temperature token resolves to "%" because the percent category is
// tried first. The order is part of the package contract.
package units

import "strings"

// Category names, exported for callers that want to report what matched.
const (
	UnitPercent    = "%"
	UnitFahrenheit = "°F"
	UnitInchesWC   = "in.w.c."
	UnitCFM        = "CFM"
	UnitRH         = "%RH"
	UnitPPM        = "ppm"
)

// category is one precedence level: a set of whole-segment tokens and a
// set of bare substrings, either of which qualifies a name.
type category struct {
	name       string
	unit       string
	tokens     []string
	substrings []string
}

// categories is evaluated strictly in order. Token matches compare whole
// separator-delimited segments; substring matches run against the full
// uppercased name (for compound segments like "ZNTEMP").
var categories = []category{
	{
		name: "position",
		unit: UnitPercent,
		tokens: []string{
			"CMD", "POS", "DMP", "DMPR", "VLV", "OAD", "RAD", "EAD",
			"VFD", "SPD", "PCT",
		},
		substrings: []string{"DAMPER", "VALVE", "SPEED"},
	},
	{
		name: "temperature",
		unit: UnitFahrenheit,
		tokens: []string{
			"SAT", "RAT", "MAT", "OAT", "DAT", "ZNT", "ZN", "RM",
			"ROOM", "CHW", "HW",
		},
		substrings: []string{"TEMP", "TMP"},
	},
	{
		name:       "pressure",
		unit:       UnitInchesWC,
		tokens:     []string{"SP", "DP"},
		substrings: []string{"STATIC", "PRESS", "PRES"},
	},
	{
		name:       "flow",
		unit:       UnitCFM,
		tokens:     []string{"CFM"},
		substrings: []string{"FLOW", "AIRFLOW"},
	},
	{
		name:       "humidity",
		unit:       UnitRH,
		tokens:     []string{"RH"},
		substrings: []string{"HUM"},
	},
	{
		name:       "co2",
		unit:       UnitPPM,
		tokens:     []string{"CO2", "PPM"},
		substrings: []string{},
	},
}

// Classify returns the display unit for a point name, or "" when the name
// matches no known category. It is pure and never fails.
func Classify(pointName string) string {
	upper := strings.ToUpper(pointName)
	segments := splitSegments(upper)

	for _, cat := range categories {
		if cat.matches(upper, segments) {
			return cat.unit
		}
	}
	return ""
}

func (c category) matches(upper string, segments []string) bool {
	for _, sub := range c.substrings {
		if strings.Contains(upper, sub) {
			return true
		}
	}
	for _, tok := range c.tokens {
		for _, seg := range segments {
			if seg == tok {
				return true
			}
		}
	}
	return false
}

// splitSegments breaks an uppercased point name on any non-alphanumeric
// separator ("SA_TEMP", "SA-TEMP", "SA TEMP" all yield [SA TEMP]).
func splitSegments(upper string) []string {
	return strings.FieldsFunc(upper, func(r rune) bool {
		switch {
		case r >= 'A' && r <= 'Z':
			return false
		case r >= '0' && r <= '9':
			return false
		}
		return true
	})
}

package discovery

import (
	"fmt"
	"strings"
)

// pairTemplate is one known HVAC point-pair shape. Side A carries the
// setpoint/command aliases, side B the measured/feedback aliases.
// Aliases are stored pre-normalized (uppercase, separators stripped).
type pairTemplate struct {
	name     string
	aliasesA []string
	aliasesB []string
	eps      float64
	unit     string
	group    string
	pairType PairType
}

// pairTemplates is tried strictly in order; earlier templates claim
// columns first and matching never backtracks.
var pairTemplates = []pairTemplate{
	{
		name:     "SAT",
		aliasesA: []string{"SATSPT", "SATSP", "SASPT", "DASPT", "DATSPT", "SUPPLYAIRTEMPSP"},
		aliasesB: []string{"SATEMP", "DATEMP", "SUPPLYAIRTEMP", "DISCHAIRTEMP", "SAT", "DAT"},
		eps:      2, unit: "°F", group: "sat", pairType: PairMeasSetp,
	},
	{
		name:     "ZONE_TEMP",
		aliasesA: []string{"ZNTSPT", "ZNSPT", "ZONETEMPSP", "RMSPT", "RMTEMPSPT", "ROOMSPT"},
		aliasesB: []string{"ZNTEMP", "ZONETEMP", "RMTEMP", "ROOMTEMP", "ZNT"},
		eps:      2, unit: "°F", group: "zone", pairType: PairMeasSetp,
	},
	{
		name:     "SA_PRESS",
		aliasesA: []string{"SASPSPT", "SASPSTPT", "STATICSPT", "DSPSPT", "DUCTSTATICSP"},
		aliasesB: []string{"SASP", "STATICPRESS", "DSP", "DUCTSTATIC"},
		eps:      0.25, unit: "in.w.c.", group: "press", pairType: PairMeasSetp,
	},
	{
		name:     "CHW_VLV",
		aliasesA: []string{"CHWVLVCMD", "CHWVCMD", "CLGVLVCMD", "CCVCMD"},
		aliasesB: []string{"CHWVLVPOS", "CHWVPOS", "CLGVLVPOS", "CCVPOS"},
		eps:      5, unit: "%", group: "chw", pairType: PairCmdPos,
	},
	{
		name:     "HW_VLV",
		aliasesA: []string{"HWVLVCMD", "HWVCMD", "HTGVLVCMD", "HCVCMD"},
		aliasesB: []string{"HWVLVPOS", "HWVPOS", "HTGVLVPOS", "HCVPOS"},
		eps:      5, unit: "%", group: "hw", pairType: PairCmdPos,
	},
	{
		name:     "OAD",
		aliasesA: []string{"OADCMD", "OADMPRCMD", "OADAMPERCMD", "OSADMPRCMD"},
		aliasesB: []string{"OADPOS", "OADMPRPOS", "OADAMPERPOS", "OSADMPRPOS"},
		eps:      5, unit: "%", group: "damper", pairType: PairCmdPos,
	},
	{
		name:     "RAD",
		aliasesA: []string{"RADCMD", "RADMPRCMD", "RADAMPERCMD"},
		aliasesB: []string{"RADPOS", "RADMPRPOS", "RADAMPERPOS"},
		eps:      5, unit: "%", group: "damper", pairType: PairCmdPos,
	},
	{
		name:     "SF_SPD",
		aliasesA: []string{"SFSPDCMD", "SFVFDCMD", "SFCMD", "FANSPDCMD"},
		aliasesB: []string{"SFSPD", "SFVFDSPD", "SFPOS", "FANSPD"},
		eps:      5, unit: "%", group: "fan", pairType: PairCmdPos,
	},
	{
		name:     "AIRFLOW",
		aliasesA: []string{"CFMSPT", "FLOWSPT", "AIRFLOWSP", "SACFMSPT"},
		aliasesB: []string{"CFM", "AIRFLOW", "SAFLOW"},
		eps:      100, unit: "CFM", group: "flow", pairType: PairMeasSetp,
	},
	{
		name:     "HUMIDITY",
		aliasesA: []string{"RHSPT", "HUMSPT", "ZNRHSPT"},
		aliasesB: []string{"RH", "HUM", "ZNRH"},
		eps:      5, unit: "%RH", group: "hum", pairType: PairMeasSetp,
	},
	{
		name:     "CO2",
		aliasesA: []string{"CO2SPT", "CO2SP"},
		aliasesB: []string{"CO2PPM", "CO2"},
		eps:      75, unit: "ppm", group: "co2", pairType: PairMeasSetp,
	},
}

// fallbackSuffix is one generic A/B suffix pattern for phase 2.
type fallbackSuffix struct {
	a, b string
}

// fallbackSuffixes is tried in order against still-unused columns.
var fallbackSuffixes = []fallbackSuffix{
	{"_A", "_B"},
	{"A", "B"},
	{"_1", "_2"},
	{"_PRIMARY", "_SECONDARY"},
	{"_IN", "_OUT"},
}

// fallbackExclusions keep non-HVAC metadata out of phase 2. A column
// whose normalized name contains any of these never joins a generic pair.
var fallbackExclusions = []string{
	"LITE", "LIGHT", "LTG", "OCC", "EZONE", "SCHED", "MODE", "STATUS",
	"STS", "ALARM", "ALM", "DATE", "TIME", "TIMESTAMP",
}

const fallbackEps = 2

// MatchHvac pairs flat HVAC point columns. Phase 1 walks the known
// template table; phase 2 pairs leftover columns by generic A/B suffixes.
// The used set is threaded through both phases so no column lands in two
// pairs.
func MatchHvac(columns []ColumnSample) []SensorPairConfig {
	used := make(map[string]bool, len(columns))

	pairs := matchTemplates(columns, used)
	pairs = append(pairs, matchFallback(columns, used)...)
	return pairs
}

func matchTemplates(columns []ColumnSample, used map[string]bool) []SensorPairConfig {
	pairs := make([]SensorPairConfig, 0)
	for _, tpl := range pairTemplates {
		a := findAlias(columns, tpl.aliasesA, used, "")
		if a == "" {
			continue
		}
		b := findAlias(columns, tpl.aliasesB, used, a)
		if b == "" {
			continue
		}

		used[a] = true
		used[b] = true
		pairs = append(pairs, SensorPairConfig{
			Name:     tpl.name,
			Group:    tpl.group,
			ColA:     a,
			ColB:     b,
			PairType: tpl.pairType,
			Eps:      tpl.eps,
			Unit:     tpl.unit,
		})
	}
	return pairs
}

// findAlias returns the first unused column (in supplied order) whose
// normalized name equals or contains one of the normalized aliases,
// skipping the column named by exclude.
func findAlias(columns []ColumnSample, aliases []string, used map[string]bool, exclude string) string {
	for _, col := range columns {
		if used[col.Name] || col.Name == exclude {
			continue
		}
		norm := normalizeName(col.Name)
		for _, alias := range aliases {
			if norm == alias || strings.Contains(norm, alias) {
				return col.Name
			}
		}
	}
	return ""
}

func matchFallback(columns []ColumnSample, used map[string]bool) []SensorPairConfig {
	pairs := make([]SensorPairConfig, 0)
	for _, sfx := range fallbackSuffixes {
		for _, col := range columns {
			if used[col.Name] || isExcluded(col.Name) {
				continue
			}
			base, ok := stripSuffix(col.Name, sfx.a)
			if !ok {
				continue
			}

			partner := findPartner(columns, used, base, sfx.b, col.Name)
			if partner == "" {
				continue
			}

			used[col.Name] = true
			used[partner] = true
			pairs = append(pairs, SensorPairConfig{
				Name:     fallbackName(base, len(pairs)),
				Group:    "custom",
				ColA:     col.Name,
				ColB:     partner,
				PairType: PairMeasSetp,
				Eps:      fallbackEps,
				Unit:     "",
			})
		}
	}
	return pairs
}

func findPartner(columns []ColumnSample, used map[string]bool, base, suffix, self string) string {
	for _, col := range columns {
		if used[col.Name] || col.Name == self || isExcluded(col.Name) {
			continue
		}
		otherBase, ok := stripSuffix(col.Name, suffix)
		if !ok {
			continue
		}
		if strings.EqualFold(otherBase, base) {
			return col.Name
		}
	}
	return ""
}

// stripSuffix removes a case-insensitive suffix, reporting whether the
// name actually carried it.
func stripSuffix(name, suffix string) (string, bool) {
	if len(name) <= len(suffix) {
		return "", false
	}
	tail := name[len(name)-len(suffix):]
	if !strings.EqualFold(tail, suffix) {
		return "", false
	}
	return name[:len(name)-len(suffix)], true
}

func fallbackName(base string, position int) string {
	trimmed := strings.Trim(base, "_- ")
	if trimmed == "" {
		return fmt.Sprintf("PAIR_%d", position+1)
	}
	return trimmed
}

func isExcluded(name string) bool {
	norm := normalizeName(name)
	for _, token := range fallbackExclusions {
		if strings.Contains(norm, token) {
			return true
		}
	}
	return false
}

// normalizeName uppercases and strips the separators BAS exports disagree
// on, so "SA_Temp", "SA-TEMP", and "sa temp" all compare equal.
func normalizeName(name string) string {
	upper := strings.ToUpper(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, upper)
}

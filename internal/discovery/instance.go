package discovery

import (
	"regexp"
	"strconv"
	"strings"
)

// instanceSuffixRe accepts PREFIX_I and PREFIX_Instance. The Instance
// suffix is case-insensitive; the bare _I suffix is not, so a lowercase
// trailing i never qualifies. The segment of PREFIX adjacent to the
// suffix must additionally satisfy instanceStemRe.
var (
	instanceSuffixRe = regexp.MustCompile(`^(.+)_(?:I|(?i:Instance))$`)
	instanceStemRe   = regexp.MustCompile(`^[A-Z]{2,5}$`)
)

// metadataSuffixes are measurement-column suffixes that describe sensor
// health or bookkeeping rather than a physical reading. They never form
// pairs.
var metadataSuffixes = []string{
	"Err", "ErrCnt", "Error", "Health", "Healthy", "Status", "Flag",
	"Flags", "Rate", "SampleRate", "Hz",
}

// measurementType is one entry of the fixed allow-list of recognized
// per-instance measurements. Unknown suffixes are silently skipped so
// arbitrary metadata columns never produce spurious pairs.
type measurementType struct {
	suffix string
	eps    float64
	unit   string
}

var measurementTypes = []measurementType{
	{"AccX", 0.5, "m/s²"},
	{"AccY", 0.5, "m/s²"},
	{"AccZ", 0.5, "m/s²"},
	{"GyrX", 0.1, "rad/s"},
	{"GyrY", 0.1, "rad/s"},
	{"GyrZ", 0.1, "rad/s"},
	{"Temp", 1, "°C"},
	{"Alt", 2, "m"},
	{"Press", 1, "hPa"},
	{"Lat", 0.0001, "°"},
	{"Lng", 0.0001, "°"},
	{"Lon", 0.0001, "°"},
	{"Spd", 0.5, "m/s"},
	{"Speed", 0.5, "m/s"},
}

// DetectInstanceColumn scans columns in order and returns the first one
// that encodes a multi-instance sensor scheme, or "" when the log uses
// flat HVAC point naming.
//
// A column qualifies only when its name matches the instance-suffix
// shape, its sample parses as an integer in [0, 9], and at least one
// sibling measurement column shares its prefix. The sibling requirement
// exists to keep unrelated columns that merely end in _I (an energy-zone
// interior point, say) from being read as instance indices.
func DetectInstanceColumn(columns []ColumnSample) string {
	for _, col := range columns {
		prefix := instancePrefix(col.Name)
		if prefix == "" {
			continue
		}
		if !isSmallInt(col.Sample) {
			continue
		}
		if hasSiblingMeasurements(columns, prefix, col.Name) {
			return col.Name
		}
	}
	return ""
}

// MatchInstances produces symmetric instance-vs-instance pairs for the
// measurement columns sharing instanceCol's prefix. Each recognized
// measurement yields exactly one pair comparing instance 0 against
// instance 1; this is an agreement check between redundant sensors, not
// a command/feedback check.
func MatchInstances(columns []ColumnSample, instanceCol string) []SensorPairConfig {
	prefix := instancePrefix(instanceCol)
	if prefix == "" {
		return []SensorPairConfig{}
	}

	pairs := make([]SensorPairConfig, 0)
	for _, col := range columns {
		if col.Name == instanceCol {
			continue
		}
		if instancePrefix(col.Name) != "" {
			// another instance-suffixed column, not a measurement
			continue
		}
		if !strings.HasPrefix(col.Name, prefix+"_") {
			continue
		}

		suffix := strings.TrimPrefix(col.Name, prefix+"_")
		if isMetadataSuffix(suffix) {
			continue
		}

		mt, ok := lookupMeasurement(suffix)
		if !ok {
			continue
		}

		pairs = append(pairs, SensorPairConfig{
			Name:     col.Name,
			Group:    "custom",
			ColA:     col.Name + "_I0",
			ColB:     col.Name + "_I1",
			PairType: PairCustom,
			Eps:      mt.eps,
			Unit:     mt.unit,
		})
	}
	return pairs
}

// VerifyInstances resolves the single-instance ambiguity once the caller
// has seen the whole file: pairs whose instance-1 side was never observed
// are flagged in SingleInstanceSensors rather than silently kept or
// dropped. observed holds the distinct raw values of the instance column.
func VerifyInstances(result Result, observed []string) Result {
	if result.InstanceCol == "" || len(observed) == 0 {
		return result
	}

	seen := make(map[string]bool, len(observed))
	for _, v := range observed {
		seen[strings.TrimSpace(v)] = true
	}
	if seen["1"] {
		return result
	}

	flagged := make([]string, 0, len(result.Pairs))
	for _, p := range result.Pairs {
		flagged = append(flagged, p.Name)
	}
	result.SingleInstanceSensors = flagged
	return result
}

// instancePrefix returns the measurement prefix encoded by an
// instance-suffixed column name ("IMU" for "IMU_I"), or "" when the name
// does not have the instance shape. The stem check (2–5 uppercase
// letters) applies to the segment right before the suffix, so "E_ZONE_I"
// still has the shape; it is the sibling requirement that rejects it.
func instancePrefix(name string) string {
	m := instanceSuffixRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	prefix := m[1]
	segments := strings.Split(prefix, "_")
	if !instanceStemRe.MatchString(segments[len(segments)-1]) {
		return ""
	}
	return prefix
}

func isSmallInt(sample string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(sample))
	if err != nil {
		return false
	}
	return n >= 0 && n <= 9
}

func hasSiblingMeasurements(columns []ColumnSample, prefix, self string) bool {
	for _, col := range columns {
		if col.Name == self {
			continue
		}
		if instancePrefix(col.Name) != "" {
			continue
		}
		if strings.HasPrefix(col.Name, prefix+"_") {
			return true
		}
	}
	return false
}

func isMetadataSuffix(suffix string) bool {
	for _, meta := range metadataSuffixes {
		if strings.EqualFold(suffix, meta) {
			return true
		}
	}
	return false
}

func lookupMeasurement(suffix string) (measurementType, bool) {
	for _, mt := range measurementTypes {
		if strings.EqualFold(mt.suffix, suffix) {
			return mt, true
		}
	}
	return measurementType{}, false
}

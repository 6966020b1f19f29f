// Package discovery infers comparable sensor pairs from the header and
// one sample row of a building-automation trend log.
//
// The pipeline is a pure function of one ordered column-sample set: no
// shared state, no I/O, no errors in normal operation. "Nothing matched"
// is an empty result, which callers surface as a configure-manually
// state.
package discovery

// ColumnSample is one observed CSV column with a representative value
// from the first data row. Supplied by an external column-discovery
// collaborator; order matters and is used as a tie-break in matching.
type ColumnSample struct {
	Name   string `json:"name"`
	Sample string `json:"sample"`
}

// PairType selects the semantic labels used when rendering a pair's
// faults. It does not change the comparison logic.
type PairType string

const (
	// PairCmdPos compares an actuator command against its feedback position.
	PairCmdPos PairType = "cmd_pos"
	// PairMeasSetp compares a measured value against its setpoint.
	PairMeasSetp PairType = "meas_setp"
	// PairCustom compares two instances of the same physical sensor.
	PairCustom PairType = "custom"
)

// SensorPairConfig is one comparable pair: two columns in the data
// source, the maximum allowed disagreement before a fault is declared,
// and a display unit (never used in comparison math).
type SensorPairConfig struct {
	Name     string   `json:"name"`
	Group    string   `json:"group"`
	ColA     string   `json:"col_a"`
	ColB     string   `json:"col_b"`
	PairType PairType `json:"pair_type"`
	Eps      float64  `json:"eps"`
	Unit     string   `json:"unit"`
	RangeMin *float64 `json:"range_min,omitempty"`
	RangeMax *float64 `json:"range_max,omitempty"`
}

// Result is one discovery outcome. Transient: recomputed on every
// invocation and persisted only through the configuration store.
type Result struct {
	Pairs       []SensorPairConfig `json:"pairs"`
	InstanceCol string             `json:"instance_col,omitempty"`

	// SingleInstanceSensors lists instance-mode pairs whose second
	// instance was never observed in the data. Populated by
	// VerifyInstances; discovery itself sees a single sample row and
	// cannot judge multiplicity.
	SingleInstanceSensors []string `json:"single_instance_sensors,omitempty"`
}

// scheme is the two-state dispatch decision: a trend log either encodes
// a multi-instance sensor layout or a flat HVAC point layout.
type scheme struct {
	instanceCol string
}

func (s scheme) isInstance() bool { return s.instanceCol != "" }

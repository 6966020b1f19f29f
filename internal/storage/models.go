package storage

import (
	"time"

	"pointpair/internal/discovery"
)

// BuildingConfig is a building's persisted pair configuration: exactly
// the discovery output boundary — the pair array plus the optional
// instance column. Replaced wholesale on save; deleted with the building.
type BuildingConfig struct {
	Building    string                       `json:"building"`
	InstanceCol string                       `json:"instance_col,omitempty"`
	Pairs       []discovery.SensorPairConfig `json:"pairs"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// ConfigSummary is the listing view of a stored configuration.
type ConfigSummary struct {
	Building    string    `json:"building"`
	InstanceCol string    `json:"instance_col,omitempty"`
	PairCount   int       `json:"pair_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pointpair/internal/discovery"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
	// ErrNotFound indicates no configuration exists for the building.
	ErrNotFound = errors.New("storage: building config not found")
)

const (
	upsertConfigSQL = `INSERT INTO building_configs (
        building,
        instance_col,
        pairs,
        updated_at
    ) VALUES (
        $1,$2,$3,now()
    )
    ON CONFLICT (building) DO UPDATE
    SET
        instance_col = EXCLUDED.instance_col,
        pairs        = EXCLUDED.pairs,
        updated_at   = now();`

	getConfigSQL = `SELECT
        building,
        instance_col,
        pairs,
        updated_at
    FROM building_configs
    WHERE building = $1;`

	listConfigsSQL = `SELECT
        building,
        instance_col,
        jsonb_array_length(pairs),
        updated_at
    FROM building_configs
    ORDER BY building;`

	deleteConfigSQL = `DELETE FROM building_configs WHERE building = $1;`
)

// ConfigStore defines operations for building configuration persistence.
type ConfigStore interface {
	UpsertConfig(ctx context.Context, cfg BuildingConfig) error
	GetConfig(ctx context.Context, building string) (BuildingConfig, error)
	ListConfigs(ctx context.Context) ([]ConfigSummary, error)
	DeleteConfig(ctx context.Context, building string) error
}

// Store is the pgx-backed configuration store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// UpsertConfig replaces a building's stored configuration.
func (s *Store) UpsertConfig(ctx context.Context, cfg BuildingConfig) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	pairs, err := json.Marshal(cfg.Pairs)
	if err != nil {
		return fmt.Errorf("marshal pairs: %w", err)
	}

	var instanceCol interface{}
	if cfg.InstanceCol != "" {
		instanceCol = cfg.InstanceCol
	}

	if _, execErr := pool.Exec(ctx, upsertConfigSQL, cfg.Building, instanceCol, pairs); execErr != nil {
		return fmt.Errorf("upsert building config: %w", execErr)
	}
	return nil
}

// GetConfig loads one building's configuration.
func (s *Store) GetConfig(ctx context.Context, building string) (BuildingConfig, error) {
	pool, err := s.getPool()
	if err != nil {
		return BuildingConfig{}, err
	}

	var (
		cfg         BuildingConfig
		instanceCol *string
		pairsJSON   []byte
	)

	row := pool.QueryRow(ctx, getConfigSQL, building)
	if scanErr := row.Scan(&cfg.Building, &instanceCol, &pairsJSON, &cfg.UpdatedAt); scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return BuildingConfig{}, ErrNotFound
		}
		return BuildingConfig{}, fmt.Errorf("get building config: %w", scanErr)
	}

	if instanceCol != nil {
		cfg.InstanceCol = *instanceCol
	}

	cfg.Pairs = make([]discovery.SensorPairConfig, 0)
	if err := json.Unmarshal(pairsJSON, &cfg.Pairs); err != nil {
		return BuildingConfig{}, fmt.Errorf("unmarshal pairs: %w", err)
	}
	return cfg, nil
}

// ListConfigs summarises all stored configurations.
func (s *Store) ListConfigs(ctx context.Context) ([]ConfigSummary, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listConfigsSQL)
	if queryErr != nil {
		return nil, fmt.Errorf("list building configs: %w", queryErr)
	}
	defer rows.Close()

	summaries := make([]ConfigSummary, 0)
	for rows.Next() {
		var (
			summary     ConfigSummary
			instanceCol *string
		)
		if err := rows.Scan(&summary.Building, &instanceCol, &summary.PairCount, &summary.UpdatedAt); err != nil {
			return nil, err
		}
		if instanceCol != nil {
			summary.InstanceCol = *instanceCol
		}
		summaries = append(summaries, summary)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return summaries, nil
}

// DeleteConfig removes a building's configuration.
func (s *Store) DeleteConfig(ctx context.Context, building string) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	cmdTag, execErr := pool.Exec(ctx, deleteConfigSQL, building)
	if execErr != nil {
		return fmt.Errorf("delete building config: %w", execErr)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ConfigStore = (*Store)(nil)

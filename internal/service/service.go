// Package service watches a trend-log inbox and runs pair discovery for
// every new upload, persisting the resulting configuration and notifying
// operators. Discovery itself stays pure; this package owns all the I/O
// around it.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pointpair/internal/alerting"
	"pointpair/internal/columns"
	"pointpair/internal/discovery"
	"pointpair/internal/logging"
	"pointpair/internal/scheduler"
	"pointpair/internal/storage"
)

// Watcher scans an inbox directory and runs discovery once per new file.
type Watcher struct {
	inbox    string
	sched    *scheduler.Scheduler
	store    storage.ConfigStore
	notifier alerting.Notifier
	logger   zerolog.Logger

	// processed maps file path to the modification time last handled, so
	// a re-uploaded (rewritten) file triggers a fresh discovery.
	processed map[string]time.Time
}

// NewWatcher constructs the inbox watcher. store and notifier may be nil;
// discovery results are then only logged.
func NewWatcher(inbox string, sched *scheduler.Scheduler, store storage.ConfigStore, notifier alerting.Notifier, logger zerolog.Logger) *Watcher {
	return &Watcher{
		inbox:     inbox,
		sched:     sched,
		store:     store,
		notifier:  notifier,
		logger:    logging.Component(logger, "watcher"),
		processed: make(map[string]time.Time),
	}
}

// Run blocks, scanning the inbox on the configured cadence until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.sched == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return w.sched.Run(ctx, w.Scan)
}

// Scan performs one pass over the inbox, handling every new or rewritten
// CSV. Per-file failures are logged and skipped; the pass itself only
// fails when the inbox is unreadable.
func (w *Watcher) Scan(ctx context.Context, _ time.Time) error {
	entries, err := os.ReadDir(w.inbox)
	if err != nil {
		return fmt.Errorf("read inbox %s: %w", w.inbox, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		path := filepath.Join(w.inbox, entry.Name())
		info, err := entry.Info()
		if err != nil {
			w.logger.Error().Err(err).Str("file", path).Msg("stat failed")
			continue
		}
		if last, ok := w.processed[path]; ok && !info.ModTime().After(last) {
			continue
		}

		if err := w.handleFile(ctx, path); err != nil {
			w.logger.Error().Err(err).Str("file", path).Msg("discovery failed")
			continue
		}
		w.processed[path] = info.ModTime()
	}
	return nil
}

func (w *Watcher) handleFile(ctx context.Context, path string) error {
	result, err := DiscoverFile(path)
	if err != nil {
		return err
	}

	building := buildingName(path)
	logger := w.logger.With().Str("building", building).Logger()
	logger.Info().
		Int("pairs", len(result.Pairs)).
		Str("instance_col", result.InstanceCol).
		Msg("discovery complete")

	if w.store != nil {
		cfg := storage.BuildingConfig{
			Building:    building,
			InstanceCol: result.InstanceCol,
			Pairs:       result.Pairs,
		}
		if err := w.store.UpsertConfig(ctx, cfg); err != nil {
			return fmt.Errorf("persist config: %w", err)
		}
	}

	if w.notifier != nil {
		event := alerting.EventPairsDiscovered
		if len(result.Pairs) == 0 {
			event = alerting.EventNoPairsFound
		}
		note := alerting.Notification{
			Building:              building,
			Event:                 event,
			PairCount:             len(result.Pairs),
			InstanceCol:           result.InstanceCol,
			SingleInstanceSensors: result.SingleInstanceSensors,
		}
		if err := w.notifier.Notify(ctx, note); err != nil {
			logger.Error().Err(err).Msg("failed to dispatch notification")
		}
	}

	return nil
}

// DiscoverFile runs pair discovery on one trend-log CSV. The header and
// first data row feed the pipeline; when an instance column is detected
// the file is re-read to verify which instances actually appear.
func DiscoverFile(path string) (discovery.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return discovery.Result{}, fmt.Errorf("open %s: %w", path, err)
	}

	samples, err := columns.ReadSamples(file)
	file.Close()
	if err != nil {
		return discovery.Result{}, fmt.Errorf("sample %s: %w", path, err)
	}

	result := discovery.Discover(samples)
	if result.InstanceCol == "" {
		return result, nil
	}

	file, err = os.Open(path)
	if err != nil {
		return discovery.Result{}, fmt.Errorf("reopen %s: %w", path, err)
	}
	defer file.Close()

	observed, err := columns.ScanInstanceValues(file, result.InstanceCol)
	if err != nil {
		return discovery.Result{}, fmt.Errorf("scan instances in %s: %w", path, err)
	}
	return discovery.VerifyInstances(result, observed), nil
}

// buildingName derives a building identifier from an upload's filename.
func buildingName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pointpair/internal/alerting"
	"pointpair/internal/storage"
)

type fakeStore struct {
	saved []storage.BuildingConfig
}

func (f *fakeStore) UpsertConfig(_ context.Context, cfg storage.BuildingConfig) error {
	f.saved = append(f.saved, cfg)
	return nil
}

func (f *fakeStore) GetConfig(context.Context, string) (storage.BuildingConfig, error) {
	return storage.BuildingConfig{}, storage.ErrNotFound
}

func (f *fakeStore) ListConfigs(context.Context) ([]storage.ConfigSummary, error) {
	return nil, nil
}

func (f *fakeStore) DeleteConfig(context.Context, string) error { return nil }

type fakeNotifier struct {
	notes []alerting.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, note alerting.Notification) error {
	f.notes = append(f.notes, note)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWatcherScanDiscoversAndPersists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ahu-7.csv", "SAT_SPT,SA_TEMP\n55,54.2\n")
	writeFile(t, dir, "notes.txt", "not a trend log")

	store := &fakeStore{}
	notifier := &fakeNotifier{}
	w := NewWatcher(dir, nil, store, notifier, zerolog.Nop())

	if err := w.Scan(context.Background(), time.Now()); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d configs, want 1", len(store.saved))
	}
	cfg := store.saved[0]
	if cfg.Building != "ahu-7" || len(cfg.Pairs) != 1 || cfg.Pairs[0].Name != "SAT" {
		t.Fatalf("config wrong: %+v", cfg)
	}

	if len(notifier.notes) != 1 || notifier.notes[0].Event != alerting.EventPairsDiscovered {
		t.Fatalf("notes = %+v", notifier.notes)
	}

	// second pass: nothing new, nothing reprocessed
	if err := w.Scan(context.Background(), time.Now()); err != nil {
		t.Fatalf("second Scan: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("unchanged file reprocessed: %d saves", len(store.saved))
	}
}

func TestWatcherScanNoPairsFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty-building.csv", "RANDOM_XYZ,OTHER\n1,2\n")

	notifier := &fakeNotifier{}
	w := NewWatcher(dir, nil, nil, notifier, zerolog.Nop())

	if err := w.Scan(context.Background(), time.Now()); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(notifier.notes) != 1 || notifier.notes[0].Event != alerting.EventNoPairsFound {
		t.Fatalf("expected configure-manually event, got %+v", notifier.notes)
	}
}

func TestDiscoverFileVerifiesInstances(t *testing.T) {
	dir := t.TempDir()
	// instance column present but only instance 0 ever appears
	path := writeFile(t, dir, "drone.csv",
		"TimeUS,IMU_I,IMU_AccX,IMU_AccY\n1,0,0.1,0.2\n2,0,0.1,0.2\n")

	result, err := DiscoverFile(path)
	if err != nil {
		t.Fatalf("DiscoverFile: %v", err)
	}
	if result.InstanceCol != "IMU_I" {
		t.Fatalf("InstanceCol = %q", result.InstanceCol)
	}
	if len(result.SingleInstanceSensors) != len(result.Pairs) || len(result.Pairs) == 0 {
		t.Fatalf("single-instance pairs not flagged: %+v", result)
	}
}

func TestDiscoverFileMissing(t *testing.T) {
	if _, err := DiscoverFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"pointpair/internal/discovery"
	"pointpair/internal/service"
	"pointpair/internal/storage"
)

// Discover runs pair discovery against a single trend log and prints the result.
func (a *App) Discover(ctx context.Context, opts DiscoverOptions) error {
	result, err := service.DiscoverFile(opts.Path)
	if err != nil {
		return err
	}

	if opts.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		printResult(result)
	}

	if !opts.Save {
		return nil
	}

	building := opts.Building
	if building == "" {
		base := filepath.Base(opts.Path)
		building = strings.TrimSuffix(base, filepath.Ext(base))
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot save configuration")
	}
	defer closeStore()

	cfg := storage.BuildingConfig{
		Building:    building,
		InstanceCol: result.InstanceCol,
		Pairs:       result.Pairs,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := store.UpsertConfig(ctx, cfg); err != nil {
		return err
	}

	a.Logger.Info().Str("building", building).Int("pairs", len(result.Pairs)).Msg("configuration saved")
	return nil
}

func printResult(result discovery.Result) {
	if len(result.Pairs) == 0 {
		fmt.Fprintln(os.Stdout, "no sensor pairs found; configure pairs manually")
		return
	}

	if result.InstanceCol != "" {
		fmt.Fprintf(os.Stdout, "instance column: %s\n", result.InstanceCol)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Pair\tGroup\tCol A\tCol B\tType\tEps\tUnit")
	for _, pair := range result.Pairs {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%g\t%s\n",
			pair.Name,
			pair.Group,
			pair.ColA,
			pair.ColB,
			pair.PairType,
			pair.Eps,
			pair.Unit,
		)
	}
	writer.Flush()

	for _, name := range result.SingleInstanceSensors {
		fmt.Fprintf(os.Stdout, "warning: %s only ever reports instance 0\n", name)
	}
}

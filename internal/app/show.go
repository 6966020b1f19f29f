package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pointpair/internal/storage"
)

// Show prints stored building configurations.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show configurations")
	}
	defer closeStore()

	if opts.Building != "" {
		return a.showBuilding(ctx, store, opts.Building)
	}

	summaries, err := store.ListConfigs(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stdout, "no configurations found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Building\tInstance Col\tPairs\tUpdated (UTC)")
	for _, summary := range summaries {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%d\t%s\n",
			summary.Building,
			summary.InstanceCol,
			summary.PairCount,
			summary.UpdatedAt.UTC().Format(time.RFC3339),
		)
	}
	writer.Flush()
	return nil
}

func (a *App) showBuilding(ctx context.Context, store storage.ConfigStore, building string) error {
	cfg, err := store.GetConfig(ctx, building)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "building: %s\n", cfg.Building)
	if cfg.InstanceCol != "" {
		fmt.Fprintf(os.Stdout, "instance column: %s\n", cfg.InstanceCol)
	}
	fmt.Fprintf(os.Stdout, "updated: %s\n", cfg.UpdatedAt.UTC().Format(time.RFC3339))

	if len(cfg.Pairs) == 0 {
		fmt.Fprintln(os.Stdout, "no pairs configured")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Pair\tGroup\tCol A\tCol B\tType\tEps\tUnit")
	for _, pair := range cfg.Pairs {
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
	return nil
}

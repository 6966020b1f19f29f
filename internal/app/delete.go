package app

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Delete removes a building's stored configuration.
func (a *App) Delete(ctx context.Context, building string) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot delete configuration")
	}
	defer closeStore()

	if err := store.DeleteConfig(ctx, building); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "deleted configuration for %s\n", building)
	return nil
}

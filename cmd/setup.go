package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"lbx/internal/repositories"
	"lbx/internal/shared"
)

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("created config file", "path", path)
	return r.writePlainln("Wrote %s. Fill in your credentials before logging in.", path)
}

// SetupDatabase opens the film id cache and applies pending migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Data.CachePath
	if path == "" {
		return fmt.Errorf("%w: data.cache_path is empty", shared.ErrInvalidConfig)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	count, err := repositories.NewFilmRepository(db).Count()
	if err != nil {
		return err
	}

	return r.writePlainln("Cache ready at %s (%d films cached).", path, count)
}

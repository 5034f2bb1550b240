package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"lbx/internal/export"
	"lbx/internal/shared"
)

// PersonSearch shows a person's filmography with the films from the
// watched history flagged.
func (r *Runner) PersonSearch(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: person name", shared.ErrMissingArgument)
	}
	if err := r.requireTMDB(); err != nil {
		return err
	}

	person, err := r.tmdb.SearchPerson(ctx, name)
	if err != nil {
		return err
	}

	credits, err := r.tmdb.Filmography(ctx, person)
	if err != nil {
		return err
	}

	if watched, err := r.store.ReadWatched(); err != nil {
		r.logger.Warn("skipping watched check", "err", err)
	} else if r.connector != nil {
		credits = export.MarkWatched(ctx, credits, watched, r.connector, r.logger)
	}

	title := fmt.Sprintf("%s (%s)", person.Name, person.KnownForDepartment)
	r.renderer.Table(title, creditsHeaders, creditRows(credits))

	return nil
}

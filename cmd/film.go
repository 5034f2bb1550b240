package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"lbx/internal/letterboxd"
	"lbx/internal/render"
	"lbx/internal/shared"
	"lbx/internal/ui"
)

func slugArg(cmd *cli.Command) (string, error) {
	slug := strings.TrimSpace(cmd.StringArg("slug"))
	if slug == "" {
		return "", fmt.Errorf("%w: film slug", shared.ErrMissingArgument)
	}
	return slug, nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatRating(rating *float64) string {
	if rating == nil {
		return "Unrated"
	}
	return fmt.Sprintf("%g/10", *rating)
}

// FilmStatus shows the user's state for one film.
func (r *Runner) FilmStatus(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	meta, err := r.connector.Metadata(ctx, slug)
	if err != nil {
		return err
	}

	r.renderer.Details([]render.Pair{
		{Key: "Film", Value: slug},
		{Key: "Watched", Value: yesNo(meta.Watched)},
		{Key: "Liked", Value: yesNo(meta.Liked)},
		{Key: "Watchlisted", Value: yesNo(meta.Watchlisted)},
		{Key: "Rating", Value: formatRating(meta.Rating)},
	})

	return nil
}

// FilmShow renders TMDB details and ASCII poster art for a film.
func (r *Runner) FilmShow(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.requireConnector(); err != nil {
		return err
	}
	if err := r.requireTMDB(); err != nil {
		return err
	}

	tmdbID, err := r.connector.TMDBID(ctx, slug)
	if err != nil {
		return err
	}

	details, err := r.tmdb.MovieDetails(ctx, tmdbID)
	if err != nil {
		return err
	}

	if details.PosterURL != "" {
		if err := r.renderer.Poster(details.PosterURL); err != nil {
			r.logger.Warn("failed to render poster", "err", err)
		}
	}
	r.renderer.FilmDetails(*details)

	return nil
}

// FilmRate rates a film on the half-star scale.
func (r *Runner) FilmRate(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	rating := int(cmd.Int("rating"))
	opts := letterboxd.OperationOptions{Rating: rating}
	if err := r.connector.Perform(ctx, letterboxd.OpUpdateRating, slug, opts); err != nil {
		return err
	}

	if rating == 0 {
		return r.writePlainln("Cleared rating for %s.", slug)
	}
	return r.writePlainln("Rated %s %d/10.", slug, rating)
}

// FilmLike adds or removes a film from the liked films.
func (r *Runner) FilmLike(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	op := letterboxd.OpLike
	if cmd.Bool("undo") {
		op = letterboxd.OpUnlike
	}
	if err := r.connector.Perform(ctx, op, slug, letterboxd.OperationOptions{}); err != nil {
		return err
	}

	return r.writePlainln("%s: %s.", op.String(), slug)
}

// FilmWatch marks or un-marks a film as watched.
func (r *Runner) FilmWatch(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	op := letterboxd.OpMarkWatched
	if cmd.Bool("undo") {
		op = letterboxd.OpMarkUnwatched
	}
	if err := r.connector.Perform(ctx, op, slug, letterboxd.OperationOptions{}); err != nil {
		return err
	}

	return r.writePlainln("%s: %s.", op.String(), slug)
}

// FilmWatchlist adds or removes a film from the watchlist.
func (r *Runner) FilmWatchlist(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	op := letterboxd.OpAddToWatchlist
	if cmd.Bool("remove") {
		op = letterboxd.OpRemoveFromWatchlist
	}
	if err := r.connector.Perform(ctx, op, slug, letterboxd.OperationOptions{}); err != nil {
		return err
	}

	return r.writePlainln("%s: %s.", op.String(), slug)
}

// FilmDiary adds a diary entry for a film.
func (r *Runner) FilmDiary(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	payload := letterboxd.DiaryPayload{
		ViewingDate: time.Now(),
		Rating:      int(cmd.Int("rating")),
		Liked:       cmd.Bool("liked"),
		Rewatch:     cmd.Bool("rewatch"),
		Tags:        cmd.StringSlice("tag"),
	}
	if date := cmd.String("date"); date != "" {
		viewed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("%w: date %q is not YYYY-MM-DD", shared.ErrInvalidInput, date)
		}
		payload.ViewingDate = viewed
		payload.SpecifiedDate = true
	}

	opts := letterboxd.OperationOptions{Diary: &payload}
	if err := r.connector.Perform(ctx, letterboxd.OpAddToDiary, slug, opts); err != nil {
		return err
	}

	return r.writePlainln("Added diary entry for %s.", slug)
}

// FilmDo performs a named operation, or picks one interactively when no
// name is given.
func (r *Runner) FilmDo(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	var op letterboxd.Operation
	if name := cmd.String("operation"); name != "" {
		op, err = letterboxd.ParseOperation(name)
		if err != nil {
			return err
		}
	} else {
		ops := letterboxd.Operations()
		options := make([]ui.Option, len(ops))
		for i, o := range ops {
			options[i] = ui.Option{Label: o.String()}
		}

		idx, err := r.pick(fmt.Sprintf("Operation for %s", slug), options)
		if err != nil {
			return err
		}
		if idx < 0 {
			return r.writePlainln("Cancelled.")
		}
		op = ops[idx]
	}

	opts := letterboxd.OperationOptions{Rating: int(cmd.Int("rating"))}
	if op == letterboxd.OpAddToDiary {
		opts.Diary = &letterboxd.DiaryPayload{ViewingDate: time.Now(), Rating: opts.Rating}
	}

	if err := r.connector.Perform(ctx, op, slug, opts); err != nil {
		return err
	}

	return r.writePlainln("%s: %s.", op.String(), slug)
}

// FilmOpen opens the film page in the system browser.
func (r *Runner) FilmOpen(ctx context.Context, cmd *cli.Command) error {
	slug, err := slugArg(cmd)
	if err != nil {
		return err
	}
	if err := r.requireConnector(); err != nil {
		return err
	}

	pageURL := r.connector.FilmPageURL(slug)
	if err := shared.OpenBrowser(pageURL); err != nil {
		return err
	}

	return r.writePlainln("Opened %s", pageURL)
}

package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	"lbx/internal/export"
	"lbx/internal/letterboxd"
	"lbx/internal/models"
	"lbx/internal/shared"
	"lbx/internal/ui"
)

// viewOptions are the shared table flags, falling back to the
// configured render defaults.
type viewOptions struct {
	sort        string
	ascending   bool
	limit       int
	interactive bool
}

func (r *Runner) viewOptions(cmd *cli.Command) viewOptions {
	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = r.config.Render.Limit
	}

	ascending := r.config.Render.Ascending
	if cmd.IsSet("asc") {
		ascending = cmd.Bool("asc")
	}

	return viewOptions{
		sort:        cmd.String("sort"),
		ascending:   ascending,
		limit:       limit,
		interactive: cmd.Bool("interactive"),
	}
}

func clamp[T any](entries []T, limit int) []T {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// ExportDownload downloads and unpacks the account data export.
func (r *Runner) ExportDownload(ctx context.Context, cmd *cli.Command) error {
	if r.exporter == nil {
		return fmt.Errorf("exporter not initialized")
	}
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}

	files, err := r.exporter.Download(ctx, r.config.Data.Directory)
	if err != nil {
		return err
	}

	return r.writePlainln("Extracted %d files to %s.", len(files), r.config.Data.Directory)
}

// ExportWatchlist shows the watchlist.
func (r *Runner) ExportWatchlist(ctx context.Context, cmd *cli.Command) error {
	opts := r.viewOptions(cmd)

	entries, err := r.store.ReadWatchlist()
	if err != nil {
		return err
	}

	if cmd.Bool("shuffle") {
		entries = export.Shuffle(entries)
	} else {
		export.SortWatchlist(entries, opts.sort, opts.ascending)
	}
	entries = clamp(entries, opts.limit)

	r.renderer.Table("Watchlist", watchlistHeaders, watchlistRows(entries))

	if opts.interactive {
		films := make([]models.Film, len(entries))
		for i, e := range entries {
			films[i] = e.Film
		}
		return r.interactFilm(ctx, films)
	}
	return nil
}

// ExportDiary shows the diary.
func (r *Runner) ExportDiary(ctx context.Context, cmd *cli.Command) error {
	opts := r.viewOptions(cmd)

	entries, err := r.store.ReadDiary()
	if err != nil {
		return err
	}

	export.SortDiary(entries, opts.sort, opts.ascending)
	entries = clamp(entries, opts.limit)

	r.renderer.Table("Diary", diaryHeaders, diaryRows(entries))

	if opts.interactive {
		films := make([]models.Film, len(entries))
		for i, e := range entries {
			films[i] = e.Film
		}
		return r.interactFilm(ctx, films)
	}
	return nil
}

// ExportRatings shows the ratings, optionally filtered to a rating set.
func (r *Runner) ExportRatings(ctx context.Context, cmd *cli.Command) error {
	opts := r.viewOptions(cmd)

	entries, err := r.store.ReadRatings()
	if err != nil {
		return err
	}

	if raw := cmd.StringSlice("rating"); len(raw) > 0 {
		ratings := make([]float64, 0, len(raw))
		for _, value := range raw {
			rating, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%w: rating %q is not a number", shared.ErrInvalidInput, value)
			}
			ratings = append(ratings, rating)
		}
		entries = export.FilterByRating(entries, ratings)
	}

	export.SortRatings(entries, opts.sort, opts.ascending)
	entries = clamp(entries, opts.limit)

	r.renderer.Table("Ratings", ratingsHeaders, ratingsRows(entries))

	if opts.interactive {
		films := make([]models.Film, len(entries))
		for i, e := range entries {
			films[i] = e.Film
		}
		return r.interactFilm(ctx, films)
	}
	return nil
}

// ExportWatched shows the watched history.
func (r *Runner) ExportWatched(ctx context.Context, cmd *cli.Command) error {
	opts := r.viewOptions(cmd)

	entries, err := r.store.ReadWatched()
	if err != nil {
		return err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		less := entries[i].WatchedAt.Before(entries[j].WatchedAt)
		if opts.ascending {
			return less
		}
		return !less
	})
	entries = clamp(entries, opts.limit)

	r.renderer.Table("Watched", watchedHeaders, watchedRows(entries))

	if opts.interactive {
		films := make([]models.Film, len(entries))
		for i, e := range entries {
			films[i] = e.Film
		}
		return r.interactFilm(ctx, films)
	}
	return nil
}

// ExportLists shows a saved list joined with the user's ratings, with
// mean and time-weighted mean summary lines.
func (r *Runner) ExportLists(ctx context.Context, cmd *cli.Command) error {
	opts := r.viewOptions(cmd)

	names, err := r.store.ListNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: no saved lists", shared.ErrNoExportData)
	}

	name, path, err := r.chooseList(cmd, names)
	if err != nil || path == "" {
		return err
	}

	entries, err := r.store.ReadList(path)
	if err != nil {
		return err
	}

	if ratings, err := r.store.ReadRatings(); err == nil {
		entries = export.JoinRatings(entries, ratings)
	} else {
		r.logger.Warn("skipping ratings join", "err", err)
	}

	if r.config.TMDB.GetListRuntimes {
		r.fillRuntimes(ctx, entries)
	}

	export.SortList(entries, opts.sort, opts.ascending)
	entries = clamp(entries, opts.limit)

	r.renderer.Table(name, listHeaders, listRows(entries))

	if mean := export.MeanRating(entries); mean > 0 {
		r.renderer.Println("Mean rating: %.2f", mean)
	}
	if weighted := export.TimeWeightedMeanRating(entries); weighted > 0 {
		r.renderer.Println("Time-weighted mean rating: %.2f", weighted)
	}

	if opts.interactive {
		films := make([]models.Film, len(entries))
		for i, e := range entries {
			films[i] = e.Film
		}
		return r.interactFilm(ctx, films)
	}
	return nil
}

// chooseList resolves the list to show from the name argument, or via
// the picker when no name is given.
func (r *Runner) chooseList(cmd *cli.Command, names map[string]string) (string, string, error) {
	if name := cmd.StringArg("name"); name != "" {
		path, ok := names[name]
		if !ok {
			return "", "", fmt.Errorf("%w: no list named %q", shared.ErrNoExportData, name)
		}
		return name, path, nil
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	options := make([]ui.Option, len(sorted))
	for i, name := range sorted {
		options[i] = ui.Option{Label: name}
	}

	idx, err := r.pick("Lists", options)
	if err != nil {
		return "", "", err
	}
	if idx < 0 {
		return "", "", nil
	}

	return sorted[idx], names[sorted[idx]], nil
}

// fillRuntimes annotates list entries with TMDB runtimes. Failures are
// logged and leave the runtime at zero.
func (r *Runner) fillRuntimes(ctx context.Context, entries []models.ListEntry) {
	if r.tmdb == nil || r.connector == nil {
		r.logger.Warn("list runtimes require a TMDB api key")
		return
	}

	for i := range entries {
		tmdbID, err := r.connector.TMDBIDFromURL(ctx, entries[i].URL)
		if err != nil {
			r.logger.Warn("failed to resolve TMDB id", "film", entries[i].Title, "err", err)
			continue
		}

		runtime, err := r.tmdb.MovieRuntime(ctx, tmdbID)
		if err != nil {
			r.logger.Warn("failed to fetch runtime", "film", entries[i].Title, "err", err)
			continue
		}
		entries[i].Runtime = runtime
	}
}

// interactFilm lets the user pick a film from a rendered view and run
// an operation on it.
func (r *Runner) interactFilm(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}
	if err := r.requireConnector(); err != nil {
		return err
	}

	options := make([]ui.Option, len(films))
	for i, film := range films {
		options[i] = ui.Option{Label: film.Title, Detail: film.URL}
	}
	idx, err := r.pick("Pick a film", options)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}
	film := films[idx]

	slug := film.Slug
	if slug == "" {
		// exports carry boxd.it short links; the slug is on the page
		slug, err = r.connector.Slug(ctx, film.URL)
		if err != nil {
			return err
		}
	}

	ops := letterboxd.Operations()
	opOptions := make([]ui.Option, len(ops))
	for i, op := range ops {
		opOptions[i] = ui.Option{Label: op.String()}
	}
	opIdx, err := r.pick(fmt.Sprintf("Operation for %s", film.Title), opOptions)
	if err != nil {
		return err
	}
	if opIdx < 0 {
		return nil
	}
	op := ops[opIdx]

	opts := letterboxd.OperationOptions{}
	switch op {
	case letterboxd.OpAddToDiary:
		opts.Diary = &letterboxd.DiaryPayload{ViewingDate: time.Now()}
	case letterboxd.OpUpdateRating:
		ratingOptions := make([]ui.Option, 11)
		for i := range ratingOptions {
			ratingOptions[i] = ui.Option{Label: fmt.Sprintf("%d/10", i)}
		}
		ratingIdx, err := r.pick("Rating", ratingOptions)
		if err != nil {
			return err
		}
		if ratingIdx < 0 {
			return nil
		}
		opts.Rating = ratingIdx
	}

	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}
	if err := r.connector.Perform(ctx, op, slug, opts); err != nil {
		return err
	}

	return r.writePlainln("%s: %s.", op.String(), film.Title)
}

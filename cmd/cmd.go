// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml to fill in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the film id cache and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles session management
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Letterboxd session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in with the configured username and password",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check the current session state",
				Action: r.AuthStatus,
			},
			{
				Name:  "session",
				Usage: "Import a browser session from a cURL command instead of logging in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing the cURL command",
					},
				},
				Action: r.AuthSession,
			},
		},
	}
}

// filmCommand handles per-film operations
func filmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "film",
		Usage: "Operate on a single film by its title slug",
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "Show your watched/liked/watchlisted/rating state for a film",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Action:    r.FilmStatus,
			},
			{
				Name:      "show",
				Usage:     "Show film details with ASCII poster art",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Action:    r.FilmShow,
			},
			{
				Name:      "rate",
				Usage:     "Rate a film (0-10 half-star scale, 0 clears)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "rating",
						Aliases:  []string{"r"},
						Usage:    "Rating between 0 and 10",
						Required: true,
					},
				},
				Action: r.FilmRate,
			},
			{
				Name:      "like",
				Usage:     "Add a film to your liked films",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "undo",
						Usage: "Remove the film from your liked films instead",
					},
				},
				Action: r.FilmLike,
			},
			{
				Name:      "watch",
				Usage:     "Mark a film as watched",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "undo",
						Usage: "Un-mark the film as watched instead",
					},
				},
				Action: r.FilmWatch,
			},
			{
				Name:      "watchlist",
				Usage:     "Add a film to your watchlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "remove",
						Usage: "Remove the film from your watchlist instead",
					},
				},
				Action: r.FilmWatchlist,
			},
			{
				Name:      "diary",
				Usage:     "Add a diary entry for a film",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Viewing date (YYYY-MM-DD, defaults to today)",
					},
					&cli.IntFlag{
						Name:    "rating",
						Aliases: []string{"r"},
						Usage:   "Rating between 0 and 10 (0 leaves the film unrated)",
					},
					&cli.BoolFlag{
						Name:  "liked",
						Usage: "Also like the film",
					},
					&cli.BoolFlag{
						Name:  "rewatch",
						Usage: "Mark the entry as a rewatch",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag for the entry (repeatable)",
					},
				},
				Action: r.FilmDiary,
			},
			{
				Name:      "do",
				Usage:     "Perform a named film operation, or pick one interactively",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "operation",
						Usage: "Operation display name (e.g. \"Add to watchlist\")",
					},
					&cli.IntFlag{
						Name:    "rating",
						Aliases: []string{"r"},
						Usage:   "Rating for rating operations",
					},
				},
				Action: r.FilmDo,
			},
			{
				Name:      "open",
				Usage:     "Open the film page in the browser",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Action:    r.FilmOpen,
			},
		},
	}
}

// exportCommand handles the CSV account exports
func exportCommand(r *Runner) *cli.Command {
	viewFlags := func(extra ...cli.Flag) []cli.Flag {
		flags := []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Column to sort by (Date, Name, Year, Rating)",
			},
			&cli.BoolFlag{
				Name:  "asc",
				Usage: "Sort ascending",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"L"},
				Usage:   "Maximum number of rows to show",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Pick a film from the table and perform an operation on it",
			},
		}
		return append(flags, extra...)
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Work with the CSV account exports",
		Commands: []*cli.Command{
			{
				Name:   "download",
				Usage:  "Download and unpack the account data export",
				Action: r.ExportDownload,
			},
			{
				Name:  "watchlist",
				Usage: "Show your watchlist",
				Flags: viewFlags(&cli.BoolFlag{
					Name:  "shuffle",
					Usage: "Shuffle instead of sorting",
				}),
				Action: r.ExportWatchlist,
			},
			{
				Name:   "diary",
				Usage:  "Show your diary",
				Flags:  viewFlags(),
				Action: r.ExportDiary,
			},
			{
				Name:  "ratings",
				Usage: "Show your ratings",
				Flags: viewFlags(&cli.StringSliceFlag{
					Name:  "rating",
					Usage: "Only show entries with these ratings (repeatable)",
				}),
				Action: r.ExportRatings,
			},
			{
				Name:   "watched",
				Usage:  "Show your watched history",
				Flags:  viewFlags(),
				Action: r.ExportWatched,
			},
			{
				Name:      "lists",
				Usage:     "Show a saved list with your ratings joined in",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     viewFlags(),
				Action:    r.ExportLists,
			},
		},
	}
}

// personCommand handles TMDB person lookups
func personCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "person",
		Usage: "TMDB person lookups",
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Show a person's filmography cross-checked against your watched history",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.PersonSearch,
			},
		},
	}
}

package main

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"lbx/internal/letterboxd"
	"lbx/internal/repositories"
	"lbx/internal/shared"
	"lbx/internal/tmdb"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("LBX_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("ignoring malformed config.toml: %v", err)
		}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		logger.Fatalf("failed to create cookie jar: %v", err)
	}
	// One client for the whole session so the login cookies apply to
	// scraping, mutations and the export download alike.
	httpClient := &http.Client{Jar: jar, Timeout: 30 * time.Second}

	var cache letterboxd.FilmCache
	if config.Data.CachePath != "" {
		if db, err := shared.NewDatabase(config.Data.CachePath); err != nil {
			logger.Warnf("film id cache disabled: %v", err)
		} else if err := shared.RunMigrations(db); err != nil {
			logger.Warnf("film id cache disabled: %v", err)
			db.Close()
		} else {
			shared.ConfigureDatabase(db, 1, 1)
			cache = repositories.NewFilmCacheAdapter(repositories.NewFilmRepository(db))
		}
	}

	siteLogger := shared.WithLogger(logger, "scope", "letterboxd")
	client := letterboxd.NewClient("", httpClient, cache, siteLogger)
	auth := letterboxd.NewAuth(config.Letterboxd.Username, config.Letterboxd.Password, "", httpClient, siteLogger)
	connector := letterboxd.NewAuthConnector(client, auth, siteLogger)
	exporter := letterboxd.NewExporter(auth, "", httpClient, siteLogger)

	var tmdbClient *tmdb.Client
	if config.TMDB.APIKey != "" {
		if c, err := tmdb.NewClient(config.TMDB.APIKey, "", httpClient); err == nil {
			tmdbClient = c
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Connector:  connector,
		Exporter:   exporter,
		TMDB:       tmdbClient,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "lbx",
		Usage:    "Track, rate and browse your Letterboxd films from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

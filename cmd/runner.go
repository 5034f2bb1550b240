package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"lbx/internal/export"
	"lbx/internal/letterboxd"
	"lbx/internal/render"
	"lbx/internal/shared"
	"lbx/internal/tmdb"
	"lbx/internal/ui"
)

// Runner holds all dependencies for CLI commands and provides methods
// for each command action.
type Runner struct {
	config     *shared.Config
	connector  *letterboxd.AuthConnector
	exporter   *letterboxd.Exporter
	store      *export.Store
	tmdb       *tmdb.Client
	renderer   *render.Renderer
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	// pick is swapped out in tests to avoid running a TUI.
	pick func(title string, options []ui.Option) (int, error)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Connector  *letterboxd.AuthConnector
	Exporter   *letterboxd.Exporter
	Store      *export.Store
	TMDB       *tmdb.Client
	Renderer   *render.Renderer
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Pick       func(title string, options []ui.Option) (int, error)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewRenderer(opts.Output, opts.Config.Render.PosterColumns, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = export.NewStore(opts.Config.Data.Directory, opts.Logger)
	}
	if opts.Pick == nil {
		opts.Pick = ui.Pick
	}

	return &Runner{
		config:     opts.Config,
		connector:  opts.Connector,
		exporter:   opts.Exporter,
		store:      opts.Store,
		tmdb:       opts.TMDB,
		renderer:   opts.Renderer,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		pick:       opts.Pick,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, filmCommand, exportCommand, personCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireConnector fails early when the session client was not wired up.
func (r *Runner) requireConnector() error {
	if r.connector == nil {
		return fmt.Errorf("letterboxd connector not initialized")
	}
	return nil
}

// ensureLoggedIn logs the session in on first use.
func (r *Runner) ensureLoggedIn(ctx context.Context) error {
	if err := r.requireConnector(); err != nil {
		return err
	}
	if r.connector.Auth().LoggedIn() {
		return nil
	}
	return r.connector.Auth().Login(ctx)
}

// requireTMDB fails early when the TMDB client was not configured.
func (r *Runner) requireTMDB() error {
	if r.tmdb == nil {
		return fmt.Errorf("%w: set tmdb.api_key in config.toml", shared.ErrMissingCredentials)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

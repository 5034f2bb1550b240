package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"lbx/internal/shared"
)

// AuthLogin authenticates the session with the configured credentials.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLoggedIn(ctx); err != nil {
		return err
	}
	return r.writePlainln("Logged in as %s.", r.config.Letterboxd.Username)
}

// AuthStatus reports the session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireConnector(); err != nil {
		return err
	}

	auth := r.connector.Auth()
	if !auth.LoggedIn() {
		return r.writePlainln("Not logged in.")
	}
	if _, err := auth.UserCookie(); err != nil {
		return r.writePlainln("Session is stale; log in again.")
	}

	return r.writePlainln("Logged in.")
}

// AuthSession imports browser session cookies parsed from a cURL command.
func (r *Runner) AuthSession(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireConnector(); err != nil {
		return err
	}

	var headers *shared.CurlHeaders
	var err error
	switch {
	case cmd.String("curl-file") != "":
		headers, err = shared.ParseCurlFile(cmd.String("curl-file"))
	case cmd.String("curl") != "":
		headers, err = shared.ParseCurlCommand([]byte(cmd.String("curl")))
	default:
		return fmt.Errorf("%w: --curl or --curl-file", shared.ErrMissingArgument)
	}
	if err != nil {
		return err
	}

	if err := r.connector.Auth().ImportSession(headers.Cookies()); err != nil {
		return err
	}

	return r.writePlainln("Session imported.")
}

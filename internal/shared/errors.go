package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrUnknownOperation   = fmt.Errorf("unknown film operation")

	// Authentication errors
	ErrLoginFailed = fmt.Errorf("login failed")
	ErrNotLoggedIn = fmt.Errorf("not logged in")
	ErrMissingCSRF = fmt.Errorf("missing CSRF cookie")
	ErrMissingUser = fmt.Errorf("missing user cookie")

	// Remote failures: non-2xx status or an explicit false result flag
	ErrRequestFailed = fmt.Errorf("request failed")
	ErrFilmNotFound  = fmt.Errorf("film not found")
	ErrNoExportData  = fmt.Errorf("no export data found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidRating   = fmt.Errorf("rating out of range")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)

package letterboxd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"lbx/internal/shared"
)

const (
	userCookieName = "letterboxd.user.CURRENT"
	csrfCookieName = "com.xk72.webparts.csrf"
	loginPath      = "/user/login.do"
)

// Auth owns the login session: cookie jar state, CSRF token access and
// the logged-in flag. The http.Client is shared with [Client] so the
// session cookies apply to every request.
type Auth struct {
	username   string
	password   string
	baseURL    string
	httpClient *http.Client
	loggedIn   bool
	logger     *log.Logger
}

// NewAuth creates an Auth bound to the given session client.
func NewAuth(username, password, baseURL string, httpClient *http.Client, logger *log.Logger) *Auth {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Auth{
		username:   username,
		password:   password,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// LoggedIn reports whether a login has succeeded on this session.
func (a *Auth) LoggedIn() bool {
	return a.loggedIn
}

// Login authenticates the session.
//
// A GET on the site root seeds the cookie jar with the CSRF cookie;
// the login endpoint then receives the credentials plus the __csrf
// field. A JSON body with result "success" marks the session as
// logged in.
func (a *Auth) Login(ctx context.Context) error {
	if a.username == "" || a.password == "" {
		return fmt.Errorf("%w: letterboxd username and password required", shared.ErrMissingCredentials)
	}

	if err := a.seedCookies(ctx); err != nil {
		return err
	}

	token, err := a.CSRFToken()
	if err != nil {
		return err
	}

	form := url.Values{
		"username": {a.username},
		"password": {a.password},
		"__csrf":   {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrLoginFailed, resp.StatusCode)
	}

	var body struct {
		Result   string   `json:"result"`
		Messages []string `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}

	if body.Result != "success" {
		if len(body.Messages) > 0 {
			return fmt.Errorf("%w: %s", shared.ErrLoginFailed, strings.Join(body.Messages, "; "))
		}
		return fmt.Errorf("%w: result %q", shared.ErrLoginFailed, body.Result)
	}

	a.loggedIn = true
	a.logger.Info("logged in", "username", a.username)
	return nil
}

// CSRFToken returns the per-session anti-forgery token from the cookie jar.
func (a *Auth) CSRFToken() (string, error) {
	value, ok := a.cookie(csrfCookieName)
	if !ok {
		return "", shared.ErrMissingCSRF
	}
	return value, nil
}

// UserCookie returns the signed user cookie required by the metadata endpoint.
func (a *Auth) UserCookie() (string, error) {
	value, ok := a.cookie(userCookieName)
	if !ok {
		return "", shared.ErrMissingUser
	}
	return value, nil
}

// ImportSession installs cookies captured from a browser session
// (e.g. parsed from a "Copy as cURL" command) into the jar.
//
// The session counts as logged in once the user cookie is present;
// no password is needed.
func (a *Auth) ImportSession(cookies map[string]string) error {
	if len(cookies) == 0 {
		return fmt.Errorf("%w: no cookies to import", shared.ErrInvalidInput)
	}

	base, err := url.Parse(a.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	jarCookies := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		jarCookies = append(jarCookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	a.httpClient.Jar.SetCookies(base, jarCookies)

	if _, ok := a.cookie(userCookieName); ok {
		a.loggedIn = true
		a.logger.Info("imported browser session")
		return nil
	}

	return fmt.Errorf("%w: session import did not include it", shared.ErrMissingUser)
}

// seedCookies issues a GET on the site root so the jar holds the CSRF cookie.
func (a *Auth) seedCookies(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to seed session cookies: %w", err)
	}
	defer resp.Body.Close()

	return nil
}

func (a *Auth) cookie(name string) (string, bool) {
	if a.httpClient == nil || a.httpClient.Jar == nil {
		return "", false
	}

	base, err := url.Parse(a.baseURL)
	if err != nil {
		return "", false
	}

	for _, c := range a.httpClient.Jar.Cookies(base) {
		if c.Name == name && c.Value != "" {
			return c.Value, true
		}
	}

	return "", false
}

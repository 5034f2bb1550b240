package letterboxd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"lbx/internal/shared"
)

// FilmUserMetadata is the flat summary reduced from the batched
// metadata facets for one film.
//
// Rating is nil when the user has not rated the film; the endpoint's
// missing-key and explicit-null cases are reported identically.
type FilmUserMetadata struct {
	Watched     bool
	Liked       bool
	Watchlisted bool
	Rating      *float64
}

// DiaryPayload describes a diary entry to create.
type DiaryPayload struct {
	ViewingDate   time.Time
	SpecifiedDate bool
	Rating        int // 0-10 half-star scale; 0 leaves the film unrated
	Liked         bool
	Rewatch       bool
	Tags          []string
}

// AuthConnector performs user-specific Letterboxd operations on top of
// the public [Client]. All calls require a prior successful login on
// the shared session.
type AuthConnector struct {
	*Client
	auth   *Auth
	logger *log.Logger
}

// NewAuthConnector creates an AuthConnector over a public client and
// its session auth.
func NewAuthConnector(client *Client, auth *Auth, logger *log.Logger) *AuthConnector {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &AuthConnector{
		Client: client,
		auth:   auth,
		logger: logger,
	}
}

// Auth exposes the session auth collaborator.
func (c *AuthConnector) Auth() *Auth {
	return c.auth
}

// Perform dispatches a registered operation against a film slug,
// checking the login precondition before any handler runs.
func (c *AuthConnector) Perform(ctx context.Context, op Operation, slug string, opts OperationOptions) error {
	if !c.auth.LoggedIn() {
		return fmt.Errorf("%w: cannot perform %q", shared.ErrNotLoggedIn, op.String())
	}

	entry, ok := registry[op]
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrUnknownOperation, int(op))
	}

	c.logger.Info("performing operation", "operation", entry.name, "film", slug)
	return entry.apply(ctx, c, slug, opts)
}

// metadataFacets are the batched request categories; each value is the
// film reference in "film:<id>" form.
var metadataFacets = []string{"posters", "likeables", "watchables", "ratables"}

// Metadata fetches the current user's metadata for a film.
func (c *AuthConnector) Metadata(ctx context.Context, slug string) (*FilmUserMetadata, error) {
	if !c.auth.LoggedIn() {
		return nil, fmt.Errorf("%w: cannot fetch personalized metadata", shared.ErrNotLoggedIn)
	}

	if _, err := c.auth.UserCookie(); err != nil {
		return nil, err
	}

	filmID, err := c.FilmID(ctx, slug)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	for _, facet := range metadataFacets {
		form.Set(facet, "film:"+filmID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, metadataURL(c.baseURL), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: metadata status %d", shared.ErrRequestFailed, resp.StatusCode)
	}

	var body struct {
		Result     bool `json:"result"`
		Watchables []struct {
			Watched bool `json:"watched"`
		} `json:"watchables"`
		Likeables []struct {
			Liked bool `json:"liked"`
		} `json:"likeables"`
		Rateables []struct {
			Rating *float64 `json:"rating"`
		} `json:"rateables"`
		FilmsInWatchlist []json.Number `json:"filmsInWatchlist"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}

	if !body.Result {
		return nil, fmt.Errorf("%w: metadata response indicates failure", shared.ErrRequestFailed)
	}

	meta := &FilmUserMetadata{
		Watchlisted: len(body.FilmsInWatchlist) > 0,
	}
	for _, w := range body.Watchables {
		if w.Watched {
			meta.Watched = true
			break
		}
	}
	for _, l := range body.Likeables {
		if l.Liked {
			meta.Liked = true
			break
		}
	}
	for _, r := range body.Rateables {
		if r.Rating != nil {
			meta.Rating = r.Rating
			break
		}
	}

	c.logger.Debug("fetched metadata", "film", slug,
		"watched", meta.Watched, "liked", meta.Liked, "watchlisted", meta.Watchlisted)
	return meta, nil
}

// SetRating rates a film. Ratings use the site's half-star scale:
// integers in [0, 10] where 0 clears the rating.
func (c *AuthConnector) SetRating(ctx context.Context, slug string, rating int) error {
	if rating < 0 || rating > 10 {
		return fmt.Errorf("%w: %d not in [0, 10]", shared.ErrInvalidRating, rating)
	}

	filmID, err := c.FilmID(ctx, slug)
	if err != nil {
		return err
	}

	form := url.Values{"rating": {strconv.Itoa(rating)}}
	if err := c.postForm(ctx, operationURLByID(c.baseURL, filmID, "rate"), form); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	c.logger.Info("rated film", "film", slug, "rating", rating)
	return nil
}

// SetLiked marks a film as liked or unliked.
func (c *AuthConnector) SetLiked(ctx context.Context, slug string, liked bool) error {
	filmID, err := c.FilmID(ctx, slug)
	if err != nil {
		return err
	}

	form := url.Values{"liked": {strconv.FormatBool(liked)}}
	if err := c.postForm(ctx, operationURLByID(c.baseURL, filmID, "like"), form); err != nil {
		return fmt.Errorf("failed to update like status: %w", err)
	}

	c.logger.Info("updated like status", "film", slug, "liked", liked)
	return nil
}

// SetWatched marks a film as watched or unwatched.
func (c *AuthConnector) SetWatched(ctx context.Context, slug string, watched bool) error {
	filmID, err := c.FilmID(ctx, slug)
	if err != nil {
		return err
	}

	form := url.Values{"watched": {strconv.FormatBool(watched)}}
	if err := c.postForm(ctx, operationURLByID(c.baseURL, filmID, "watch"), form); err != nil {
		return fmt.Errorf("failed to update watched status: %w", err)
	}

	c.logger.Info("updated watched status", "film", slug, "watched", watched)
	return nil
}

// SetWatchlisted adds or removes a film from the watchlist. These
// endpoints address the film by slug rather than id.
func (c *AuthConnector) SetWatchlisted(ctx context.Context, slug string, watchlisted bool) error {
	endpoint := addWatchlistURL(c.baseURL, slug)
	if !watchlisted {
		endpoint = removeWatchlistURL(c.baseURL, slug)
	}

	if err := c.postForm(ctx, endpoint, url.Values{}); err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}

	c.logger.Info("updated watchlist", "film", slug, "watchlisted", watchlisted)
	return nil
}

// AddDiaryEntry posts a new diary entry for a film.
func (c *AuthConnector) AddDiaryEntry(ctx context.Context, slug string, entry DiaryPayload) error {
	filmID, err := c.FilmID(ctx, slug)
	if err != nil {
		return err
	}

	form := url.Values{
		"filmId":        {filmID},
		"specifiedDate": {strconv.FormatBool(entry.SpecifiedDate)},
		"liked":         {strconv.FormatBool(entry.Liked)},
		"rewatch":       {strconv.FormatBool(entry.Rewatch)},
	}
	if entry.SpecifiedDate {
		form.Set("viewingDateStr", entry.ViewingDate.Format("2006-01-02"))
	}
	if entry.Rating > 0 {
		if entry.Rating > 10 {
			return fmt.Errorf("%w: %d not in [0, 10]", shared.ErrInvalidRating, entry.Rating)
		}
		form.Set("rating", strconv.Itoa(entry.Rating))
	}
	for _, tag := range entry.Tags {
		form.Add("tag", tag)
	}

	if err := c.postForm(ctx, saveDiaryURL(c.baseURL), form); err != nil {
		return fmt.Errorf("failed to add diary entry: %w", err)
	}

	c.logger.Info("added diary entry", "film", slug)
	return nil
}

// postForm sends a mutation POST with the session CSRF token attached
// and validates the {"result": bool} response contract.
func (c *AuthConnector) postForm(ctx context.Context, endpoint string, form url.Values) error {
	token, err := c.auth.CSRFToken()
	if err != nil {
		return err
	}
	form.Set("__csrf", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrRequestFailed, resp.StatusCode)
	}

	var body struct {
		Result bool `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !body.Result {
		return fmt.Errorf("%w: response indicates failure", shared.ErrRequestFailed)
	}

	return nil
}

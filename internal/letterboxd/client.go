package letterboxd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"lbx/internal/shared"
)

const defaultBaseURL = "https://letterboxd.com"

// FilmCache caches slug → id lookups across runs.
//
// Implemented by repositories.FilmCacheAdapter; a nil cache disables caching.
type FilmCache interface {
	// LBID returns the cached Letterboxd film id for a slug.
	LBID(slug string) (string, bool)
	// PutLBID stores the Letterboxd film id for a slug.
	PutLBID(slug, id string) error
	// TMDBID returns the cached TMDB id for a slug.
	TMDBID(slug string) (int, bool)
	// PutTMDBID stores the TMDB id for a slug.
	PutTMDBID(slug string, id int) error
}

// Client performs unauthenticated Letterboxd lookups by scraping film pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      FilmCache
	logger     *log.Logger
}

// NewClient creates a Client. The http.Client is shared with [Auth] so
// both sides see the same cookie jar; when nil a jar-backed client with
// a 30 second timeout is created.
func NewClient(baseURL string, httpClient *http.Client, cache FilmCache, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
	}
}

// BaseURL returns the configured site base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FilmPageURL returns the public film page URL for a slug.
func (c *Client) FilmPageURL(slug string) string {
	return fmt.Sprintf("%s/film/%s/", c.baseURL, slug)
}

// FilmID resolves a film slug to the site's internal film id.
//
// The id comes from the data-film-id attribute on the film page and is
// cached once resolved.
func (c *Client) FilmID(ctx context.Context, slug string) (string, error) {
	if c.cache != nil {
		if id, ok := c.cache.LBID(slug); ok {
			return id, nil
		}
	}

	doc, err := c.fetchPage(ctx, c.FilmPageURL(slug))
	if err != nil {
		return "", err
	}

	id, ok := doc.Find("[data-film-id]").First().Attr("data-film-id")
	if !ok || id == "" {
		return "", fmt.Errorf("%w: no film id on page for %q", shared.ErrFilmNotFound, slug)
	}

	if c.cache != nil {
		if err := c.cache.PutLBID(slug, id); err != nil {
			c.logger.Warn("failed to cache film id", "slug", slug, "err", err)
		}
	}

	c.logger.Debug("resolved film id", "slug", slug, "id", id)
	return id, nil
}

// TMDBIDFromURL resolves the TMDB id of a film from any film page URL,
// including the boxd.it short links found in CSV exports.
func (c *Client) TMDBIDFromURL(ctx context.Context, pageURL string) (int, error) {
	slug := slugFromPageURL(pageURL)
	if slug != "" && c.cache != nil {
		if id, ok := c.cache.TMDBID(slug); ok {
			return id, nil
		}
	}

	doc, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return 0, err
	}

	href, ok := doc.Find(`a[data-track-action="TMDb"]`).First().Attr("href")
	if !ok {
		return 0, fmt.Errorf("%w: no TMDB link on %s", shared.ErrFilmNotFound, pageURL)
	}

	id, err := parseTMDBLink(href)
	if err != nil {
		return 0, err
	}

	// Short links redirect to the canonical film page; recover the slug
	// from the document so the id can be cached.
	if slug == "" {
		if canonical, ok := doc.Find(`meta[property="og:url"]`).Attr("content"); ok {
			slug = slugFromPageURL(canonical)
		}
	}
	if slug != "" && c.cache != nil {
		if id, ok := c.cache.LBID(slug); !ok || id == "" {
			if filmID, ok := doc.Find("[data-film-id]").First().Attr("data-film-id"); ok {
				if err := c.cache.PutLBID(slug, filmID); err != nil {
					c.logger.Warn("failed to cache film id", "slug", slug, "err", err)
				}
			}
		}
		if err := c.cache.PutTMDBID(slug, id); err != nil {
			c.logger.Warn("failed to cache TMDB id", "slug", slug, "err", err)
		}
	}

	return id, nil
}

// Slug resolves the title slug behind any film page URL, following
// boxd.it short links to the canonical page.
func (c *Client) Slug(ctx context.Context, pageURL string) (string, error) {
	if slug := slugFromPageURL(pageURL); slug != "" {
		return slug, nil
	}

	doc, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	if canonical, ok := doc.Find(`meta[property="og:url"]`).Attr("content"); ok {
		if slug := slugFromPageURL(canonical); slug != "" {
			return slug, nil
		}
	}

	return "", fmt.Errorf("%w: no film page behind %s", shared.ErrFilmNotFound, pageURL)
}

// TMDBID resolves the TMDB id for a film slug.
func (c *Client) TMDBID(ctx context.Context, slug string) (int, error) {
	if c.cache != nil {
		if id, ok := c.cache.TMDBID(slug); ok {
			return id, nil
		}
	}
	return c.TMDBIDFromURL(ctx, c.FilmPageURL(slug))
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", shared.ErrFilmNotFound, pageURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d for %s", shared.ErrRequestFailed, resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return doc, nil
}

// slugFromPageURL extracts the slug from a /film/<slug>/ URL, or "" for
// short links that haven't been resolved yet.
func slugFromPageURL(pageURL string) string {
	const marker = "/film/"
	idx := strings.Index(pageURL, marker)
	if idx < 0 {
		return ""
	}
	rest := pageURL[idx+len(marker):]
	if end := strings.IndexByte(rest, '/'); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// parseTMDBLink extracts the numeric id from a themoviedb.org movie URL.
func parseTMDBLink(href string) (int, error) {
	trimmed := strings.TrimSuffix(href, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return 0, fmt.Errorf("malformed TMDB link %q", href)
	}

	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed TMDB link %q: %w", href, err)
	}

	return id, nil
}

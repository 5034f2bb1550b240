// TMDB API client for person and movie lookups.
//
// Response types based on https://developer.themoviedb.org/reference (v3)
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"lbx/internal/models"
	"lbx/internal/shared"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	posterImageBase = "https://image.tmdb.org/t/p/w500"
)

// Person represents a TMDB person search result.
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	KnownForDepartment string `json:"known_for_department"`
}

// movieCredit is one crew credit in a person's filmography.
type movieCredit struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Department  string `json:"department"`
}

// Movie represents TMDB movie details.
type Movie struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
	Runtime       int    `json:"runtime"`
	PosterPath    string `json:"poster_path"`
	Overview      string `json:"overview"`
}

// Client provides TMDB API lookups using a v3 API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a TMDB client. A nil http.Client falls back to
// http.DefaultClient.
func NewClient(apiKey, baseURL string, httpClient *http.Client) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: tmdb api_key", shared.ErrMissingCredentials)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

// doRequest performs a GET request against the TMDB API.
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	apiURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			StatusMessage string `json:"status_message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.StatusMessage != "" {
			return fmt.Errorf("%w: tmdb status %d: %s", shared.ErrRequestFailed, resp.StatusCode, errResp.StatusMessage)
		}
		return fmt.Errorf("%w: tmdb status %d", shared.ErrRequestFailed, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchPerson returns the best person match for a name.
func (c *Client) SearchPerson(ctx context.Context, name string) (*Person, error) {
	var response struct {
		Results []Person `json:"results"`
	}

	query := url.Values{"query": {name}}
	if err := c.doRequest(ctx, "/search/person", query, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("no person found for %q", name)
	}

	return &response.Results[0], nil
}

// Filmography returns a person's crew credits filtered to their
// known-for department, sorted by release date.
func (c *Client) Filmography(ctx context.Context, person *Person) ([]models.PersonCredit, error) {
	var response struct {
		Crew []movieCredit `json:"crew"`
	}

	endpoint := fmt.Sprintf("/person/%d/movie_credits", person.ID)
	if err := c.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}

	var credits []models.PersonCredit
	for _, credit := range response.Crew {
		if credit.Department != person.KnownForDepartment {
			continue
		}

		released, _ := time.Parse("2006-01-02", credit.ReleaseDate)
		credits = append(credits, models.PersonCredit{
			TMDBID:      credit.ID,
			Title:       credit.Title,
			ReleaseDate: released,
			Department:  credit.Department,
		})
	}

	sort.Slice(credits, func(i, j int) bool {
		return credits[i].ReleaseDate.Before(credits[j].ReleaseDate)
	})

	return credits, nil
}

// MovieDetails retrieves movie details by TMDB id.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*models.FilmDetails, error) {
	var movie Movie
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	if err := c.doRequest(ctx, endpoint, nil, &movie); err != nil {
		return nil, err
	}

	details := &models.FilmDetails{
		Title:         movie.Title,
		OriginalTitle: movie.OriginalTitle,
		ReleaseDate:   movie.ReleaseDate,
		Runtime:       movie.Runtime,
		Overview:      movie.Overview,
	}
	if movie.PosterPath != "" {
		details.PosterURL = posterImageBase + movie.PosterPath
	}

	return details, nil
}

// MovieRuntime retrieves just the runtime in minutes for a movie.
func (c *Client) MovieRuntime(ctx context.Context, movieID int) (int, error) {
	details, err := c.MovieDetails(ctx, movieID)
	if err != nil {
		return 0, err
	}
	return details.Runtime, nil
}

package models

import (
	"strings"
	"time"
)

// Film represents a film reference from a CSV export.
//
// URL is the short Letterboxd URI (boxd.it) from the export; Slug is
// the title-based path component and is only set once known.
type Film struct {
	Title string
	Year  int
	URL   string
	Slug  string
}

// WatchlistEntry is one row of watchlist.csv.
type WatchlistEntry struct {
	Film
	AddedAt time.Time
}

// DiaryEntry is one row of diary.csv.
type DiaryEntry struct {
	Film
	WatchedAt time.Time
	Rating    float64
	Rewatch   bool
	Tags      []string
}

// RatingEntry is one row of ratings.csv.
type RatingEntry struct {
	Film
	RatedAt time.Time
	Rating  float64
}

// WatchedEntry is one row of watched.csv.
type WatchedEntry struct {
	Film
	WatchedAt time.Time
}

// ListEntry is one row of a saved list CSV, optionally joined with the
// user's rating and a TMDB runtime.
type ListEntry struct {
	Film
	Position int
	Rating   float64 // 0 when the film is unrated
	Runtime  int     // minutes; 0 when unknown
}

// PersonCredit is a single filmography credit returned by TMDB.
type PersonCredit struct {
	TMDBID      int
	Title       string
	ReleaseDate time.Time
	Department  string
	Watched     bool
}

// FilmDetails holds display metadata for a single film.
type FilmDetails struct {
	Title         string
	OriginalTitle string
	ReleaseDate   string
	Runtime       int
	PosterURL     string
	Overview      string
}

// SlugFromURL extracts the title-based slug from a /film/<slug>/ URL.
// Returns "" when the URL does not point at a film page.
func SlugFromURL(url string) string {
	const marker = "/film/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return ""
	}
	rest := url[idx+len(marker):]
	if end := strings.IndexByte(rest, '/'); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

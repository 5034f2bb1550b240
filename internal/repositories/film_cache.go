package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// FilmCacheAdapter implements letterboxd.FilmCache using FilmRepository.
//
// Lookup misses are reported as a false ok rather than an error so the
// client falls back to scraping; duplicate inserts are silently
// ignored (UNIQUE constraint upserts).
type FilmCacheAdapter struct {
	repo *FilmRepository
}

// NewFilmCacheAdapter creates a new FilmCacheAdapter with the given repository
func NewFilmCacheAdapter(repo *FilmRepository) *FilmCacheAdapter {
	return &FilmCacheAdapter{repo: repo}
}

// LBID returns the cached Letterboxd id for a slug.
func (a *FilmCacheAdapter) LBID(slug string) (string, bool) {
	film, err := a.repo.Get(slug)
	if err != nil || film.LBID == "" {
		return "", false
	}
	return film.LBID, true
}

// PutLBID stores the Letterboxd id for a slug.
func (a *FilmCacheAdapter) PutLBID(slug, id string) error {
	if err := a.repo.PutLBID(slug, id); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache film: %w", err)
	}
	return nil
}

// TMDBID returns the cached TMDB id for a slug.
func (a *FilmCacheAdapter) TMDBID(slug string) (int, bool) {
	film, err := a.repo.Get(slug)
	if err != nil || film.TMDBID == 0 {
		return 0, false
	}
	return film.TMDBID, true
}

// PutTMDBID stores the TMDB id for a slug. The slug row is created
// first when the Letterboxd id has not been cached yet.
func (a *FilmCacheAdapter) PutTMDBID(slug string, id int) error {
	err := a.repo.PutTMDBID(slug, id)
	if errors.Is(err, sql.ErrNoRows) {
		if err := a.repo.PutLBID(slug, ""); err != nil {
			return fmt.Errorf("failed to cache film: %w", err)
		}
		err = a.repo.PutTMDBID(slug, id)
	}
	if err != nil {
		return fmt.Errorf("failed to cache TMDB id: %w", err)
	}
	return nil
}

package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// CachedFilm is one row of the films cache table.
type CachedFilm struct {
	Slug      string
	LBID      string
	TMDBID    int // 0 when not yet resolved
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FilmRepository caches film id lookups in SQLite.
type FilmRepository struct {
	db *sql.DB
}

// NewFilmRepository creates a new FilmRepository with the given database connection
func NewFilmRepository(db *sql.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// Get retrieves a cached film by slug. Returns sql.ErrNoRows when absent.
func (r *FilmRepository) Get(slug string) (*CachedFilm, error) {
	query := `
		SELECT slug, lb_id, COALESCE(tmdb_id, 0), created_at, updated_at
		FROM films
		WHERE slug = ?
	`

	var film CachedFilm
	err := r.db.QueryRow(query, slug).Scan(
		&film.Slug,
		&film.LBID,
		&film.TMDBID,
		&film.CreatedAt,
		&film.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &film, nil
}

// PutLBID stores the Letterboxd id for a slug, inserting or updating as needed.
func (r *FilmRepository) PutLBID(slug, lbID string) error {
	query := `
		INSERT INTO films (slug, lb_id) VALUES (?, ?)
		ON CONFLICT(slug) DO UPDATE SET lb_id = excluded.lb_id, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, slug, lbID); err != nil {
		return fmt.Errorf("failed to cache film id: %w", err)
	}

	return nil
}

// PutTMDBID stores the TMDB id for a slug that already has a cached Letterboxd id.
func (r *FilmRepository) PutTMDBID(slug string, tmdbID int) error {
	query := `
		UPDATE films SET tmdb_id = ?, updated_at = CURRENT_TIMESTAMP WHERE slug = ?
	`

	result, err := r.db.Exec(query, tmdbID, slug)
	if err != nil {
		return fmt.Errorf("failed to cache TMDB id: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Count returns the number of cached films.
func (r *FilmRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM films").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count films: %w", err)
	}
	return count, nil
}

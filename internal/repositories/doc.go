// Package repositories provides the persistence layer for the film id cache.
//
// The cache stores slug → Letterboxd id and slug → TMDB id pairs so
// repeated lookups skip the film page scrape.
package repositories

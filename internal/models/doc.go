// Package models defines domain entities shared across the lbx packages.
//
// The package contains lightweight structs passed between layers:
//   - [Film] : A film reference as it appears in the CSV account exports
//   - [DiaryEntry], [RatingEntry], [WatchedEntry], [ListEntry] : Per-export rows
//   - [PersonCredit] : One filmography credit from a TMDB person lookup
//   - [FilmDetails] : Rich film metadata assembled for terminal display
//
// Entities backed by the SQLite cache live in internal/repositories.
package models

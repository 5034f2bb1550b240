// Package letterboxd implements the Letterboxd connectors.
//
// # Public client
//
// [Client] handles unauthenticated lookups: resolving a film slug to
// the site's internal film id and to its TMDB id by scraping the film
// page. Lookups go through a [FilmCache] so repeated runs skip the
// network.
//
// # Authenticated connector
//
// [AuthConnector] layers user-specific operations on top of [Client]:
// fetching per-film user metadata (watched / liked / watchlisted /
// rating facets) and performing mutations (rate, like, watch,
// watchlist, diary). All mutations POST a small form carrying the
// session's CSRF token and treat a non-200 status or a false "result"
// flag as [shared.ErrRequestFailed].
//
// # Operations registry
//
// Named operations are a closed [Operation] enum mapped to handler
// functions, so every registered operation has a real handler at
// compile time. [ParseOperation] maps display names to the enum and
// fails with [shared.ErrUnknownOperation] for anything unregistered.
//
// # Error handling
//
// Errors wrap sentinels from internal/shared:
//   - [shared.ErrNotLoggedIn] : authenticated call before Login
//   - [shared.ErrUnknownOperation] : dispatch of an unregistered name
//   - [shared.ErrInvalidRating] : rating outside [0, 10]
//   - [shared.ErrRequestFailed] : non-2xx status or result=false
package letterboxd

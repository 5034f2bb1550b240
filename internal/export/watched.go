package export

import (
	"context"

	"github.com/charmbracelet/log"
	"lbx/internal/models"
)

// TMDBResolver resolves a film page URL to its TMDB id. Implemented by
// letterboxd.Client.
type TMDBResolver interface {
	TMDBIDFromURL(ctx context.Context, pageURL string) (int, error)
}

// MarkWatched flags each credit that appears in the watched history.
//
// watched.csv carries no TMDB id, so a title match alone risks mixing
// up films that share a name. Candidates with a matching title are
// disambiguated by resolving the TMDB id behind their Letterboxd URI.
func MarkWatched(ctx context.Context, credits []models.PersonCredit, watched []models.WatchedEntry, resolver TMDBResolver, logger *log.Logger) []models.PersonCredit {
	byTitle := make(map[string][]models.WatchedEntry)
	for _, entry := range watched {
		byTitle[entry.Title] = append(byTitle[entry.Title], entry)
	}

	marked := make([]models.PersonCredit, len(credits))
	for i, credit := range credits {
		marked[i] = credit

		for _, candidate := range byTitle[credit.Title] {
			id, err := resolver.TMDBIDFromURL(ctx, candidate.URL)
			if err != nil {
				if logger != nil {
					logger.Warn("failed to resolve TMDB id", "film", candidate.Title, "err", err)
				}
				continue
			}
			if id == credit.TMDBID {
				marked[i].Watched = true
				break
			}
		}
	}

	return marked
}

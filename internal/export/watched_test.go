package export

import (
	"context"
	"errors"
	"testing"

	"lbx/internal/models"
)

// stubResolver maps film page URLs to TMDB ids.
type stubResolver struct {
	ids   map[string]int
	calls int
}

func (r *stubResolver) TMDBIDFromURL(ctx context.Context, pageURL string) (int, error) {
	r.calls++
	id, ok := r.ids[pageURL]
	if !ok {
		return 0, errors.New("unknown film")
	}
	return id, nil
}

func TestMarkWatched(t *testing.T) {
	ctx := context.Background()

	credits := []models.PersonCredit{
		{TMDBID: 578, Title: "The Thing"},
		{TMDBID: 348, Title: "Alien"},
		{TMDBID: 999, Title: "Unseen"},
	}

	t.Run("flags credits found in the watched history", func(t *testing.T) {
		watched := []models.WatchedEntry{
			{Film: models.Film{Title: "The Thing", URL: "https://boxd.it/29Lg"}},
		}
		resolver := &stubResolver{ids: map[string]int{"https://boxd.it/29Lg": 578}}

		marked := MarkWatched(ctx, credits, watched, resolver, nil)
		if !marked[0].Watched {
			t.Error("expected The Thing to be watched")
		}
		if marked[1].Watched || marked[2].Watched {
			t.Error("expected other credits to stay unwatched")
		}
	})

	t.Run("same title different film stays unwatched", func(t *testing.T) {
		// the 2011 prequel shares the title but not the TMDB id
		watched := []models.WatchedEntry{
			{Film: models.Film{Title: "The Thing", URL: "https://boxd.it/prequel"}},
		}
		resolver := &stubResolver{ids: map[string]int{"https://boxd.it/prequel": 60935}}

		marked := MarkWatched(ctx, credits, watched, resolver, nil)
		if marked[0].Watched {
			t.Error("expected title collision to stay unwatched")
		}
	})

	t.Run("only title matches trigger lookups", func(t *testing.T) {
		watched := []models.WatchedEntry{
			{Film: models.Film{Title: "Something Else", URL: "https://boxd.it/other"}},
		}
		resolver := &stubResolver{ids: map[string]int{}}

		MarkWatched(ctx, credits, watched, resolver, nil)
		if resolver.calls != 0 {
			t.Errorf("expected no lookups, got %d", resolver.calls)
		}
	})

	t.Run("resolver failures are skipped", func(t *testing.T) {
		watched := []models.WatchedEntry{
			{Film: models.Film{Title: "Alien", URL: "https://boxd.it/unknown"}},
		}
		resolver := &stubResolver{ids: map[string]int{}}

		marked := MarkWatched(ctx, credits, watched, resolver, nil)
		if marked[1].Watched {
			t.Error("expected failed lookup to leave the credit unwatched")
		}
	})
}

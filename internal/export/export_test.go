package export

import (
	"errors"
	"path/filepath"
	"testing"

	"lbx/internal/models"
	"lbx/internal/shared"
	tu "lbx/internal/testing"
)

const watchlistCSV = `Date,Name,Year,Letterboxd URI
2026-01-05,The Thing,1982,https://boxd.it/29Lg
2026-02-10,Alien,1979,https://boxd.it/2aHi
2026-03-15,Stalker,1979,https://boxd.it/2b1A
`

const diaryCSV = `Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date
2026-02-01,The Thing,1982,https://boxd.it/d1,4.5,Yes,"horror, rewatch club",2026-01-31
2026-02-14,Alien,1979,https://boxd.it/d2,5,,,2026-02-14
`

const ratingsCSV = `Date,Name,Year,Letterboxd URI,Rating
2026-01-31,The Thing,1982,https://boxd.it/29Lg,4.5
2026-02-14,Alien,1979,https://boxd.it/2aHi,5
2026-03-01,Stalker,1979,https://boxd.it/2b1A,3.5
`

const watchedCSV = `Date,Name,Year,Letterboxd URI
2026-01-31,The Thing,1982,https://boxd.it/29Lg
2026-02-14,Alien,1979,https://boxd.it/2aHi
`

const listCSV = `Letterboxd list export v7,,,,
Date,Name,Tags,URL,Description
2026-03-01,Winter Horror,,https://letterboxd.com/u/list/winter-horror/,Cold places only

Position,Name,Year,URL,Description
1,The Thing,1982,https://boxd.it/29Lg,
2,Alien,1979,https://boxd.it/2aHi,
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	tu.WriteExportFile(t, dir, WatchlistFile, watchlistCSV)
	tu.WriteExportFile(t, dir, DiaryFile, diaryCSV)
	tu.WriteExportFile(t, dir, RatingsFile, ratingsCSV)
	tu.WriteExportFile(t, dir, WatchedFile, watchedCSV)
	tu.WriteExportFile(t, dir, filepath.Join(ListsDir, "winter-horror.csv"), listCSV)
	return NewStore(dir, nil)
}

func TestStore(t *testing.T) {
	t.Run("ReadWatchlist", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadWatchlist()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		first := entries[0]
		if first.Title != "The Thing" || first.Year != 1982 {
			t.Errorf("unexpected first entry %+v", first)
		}
		if first.URL != "https://boxd.it/29Lg" {
			t.Errorf("expected short URI, got %q", first.URL)
		}
		if first.AddedAt.Format("2006-01-02") != "2026-01-05" {
			t.Errorf("unexpected added date %v", first.AddedAt)
		}
	})

	t.Run("ReadDiary", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadDiary()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		first := entries[0]
		if first.Rating != 4.5 {
			t.Errorf("expected rating 4.5, got %v", first.Rating)
		}
		if !first.Rewatch {
			t.Error("expected a rewatch")
		}
		if len(first.Tags) != 2 || first.Tags[1] != "rewatch club" {
			t.Errorf("unexpected tags %v", first.Tags)
		}
		if first.WatchedAt.Format("2006-01-02") != "2026-01-31" {
			t.Errorf("expected the watched date column, got %v", first.WatchedAt)
		}
		if entries[1].Rewatch {
			t.Error("expected empty rewatch column to read as false")
		}
	})

	t.Run("ReadRatings", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadRatings()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[1].Rating != 5 {
			t.Errorf("expected rating 5, got %v", entries[1].Rating)
		}
	})

	t.Run("ReadWatched", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadWatched()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		store := NewStore(t.TempDir(), nil)
		if _, err := store.ReadWatchlist(); !errors.Is(err, shared.ErrNoExportData) {
			t.Fatalf("expected ErrNoExportData, got %v", err)
		}
	})

	t.Run("ListNames", func(t *testing.T) {
		store := newTestStore(t)
		names, err := store.ListNames()
		if err != nil {
			t.Fatalf("expected list discovery to succeed, got %v", err)
		}
		if len(names) != 1 {
			t.Fatalf("expected 1 list, got %d", len(names))
		}
		if _, ok := names["Winter Horror"]; !ok {
			t.Errorf("expected list name from metadata header, got %v", names)
		}
	})

	t.Run("ReadList", func(t *testing.T) {
		store := newTestStore(t)
		names, err := store.ListNames()
		if err != nil {
			t.Fatalf("expected list discovery to succeed, got %v", err)
		}

		entries, err := store.ReadList(names["Winter Horror"])
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Position != 1 || entries[0].Title != "The Thing" {
			t.Errorf("unexpected first entry %+v", entries[0])
		}
		if entries[1].URL != "https://boxd.it/2aHi" {
			t.Errorf("expected URL column, got %q", entries[1].URL)
		}
	})
}

func TestViews(t *testing.T) {
	t.Run("FilterByRating", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadRatings()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		filtered := FilterByRating(entries, []float64{5, 3.5})
		if len(filtered) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(filtered))
		}
		for _, entry := range filtered {
			if entry.Rating != 5 && entry.Rating != 3.5 {
				t.Errorf("unexpected rating %v", entry.Rating)
			}
		}
	})

	t.Run("Shuffle keeps all entries", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadWatchlist()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		shuffled := Shuffle(entries)
		if len(shuffled) != len(entries) {
			t.Fatalf("expected %d entries, got %d", len(entries), len(shuffled))
		}
		seen := make(map[string]bool)
		for _, entry := range shuffled {
			seen[entry.Title] = true
		}
		for _, entry := range entries {
			if !seen[entry.Title] {
				t.Errorf("entry %q lost in shuffle", entry.Title)
			}
		}
	})

	t.Run("JoinRatings matches on URI", func(t *testing.T) {
		store := newTestStore(t)
		names, _ := store.ListNames()
		entries, err := store.ReadList(names["Winter Horror"])
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}
		ratings, err := store.ReadRatings()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		joined := JoinRatings(entries, ratings)
		if joined[0].Rating != 4.5 {
			t.Errorf("expected 4.5 for The Thing, got %v", joined[0].Rating)
		}
		if joined[1].Rating != 5 {
			t.Errorf("expected 5 for Alien, got %v", joined[1].Rating)
		}
	})

	t.Run("MeanRating", func(t *testing.T) {
		entries := []models.ListEntry{
			{Rating: 4},
			{Rating: 5},
			{Rating: 0}, // unrated, excluded
		}
		if mean := MeanRating(entries); mean != 4.5 {
			t.Errorf("expected 4.5, got %v", mean)
		}
		if mean := MeanRating(nil); mean != 0 {
			t.Errorf("expected 0 for empty list, got %v", mean)
		}
	})

	t.Run("TimeWeightedMeanRating", func(t *testing.T) {
		entries := []models.ListEntry{
			{Rating: 4, Runtime: 90},
			{Rating: 2, Runtime: 30},
			{Rating: 5}, // no runtime, excluded
		}
		if got := TimeWeightedMeanRating(entries); got != 3.5 {
			t.Errorf("expected 3.5, got %v", got)
		}
		if got := TimeWeightedMeanRating(nil); got != 0 {
			t.Errorf("expected 0 for empty list, got %v", got)
		}
	})

	t.Run("SortRatings", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadRatings()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		SortRatings(entries, "Rating", false)
		if entries[0].Rating != 5 {
			t.Errorf("expected highest rating first, got %v", entries[0].Rating)
		}

		SortRatings(entries, "Name", true)
		if entries[0].Title != "Alien" {
			t.Errorf("expected Alien first, got %q", entries[0].Title)
		}
	})

	t.Run("SortWatchlist default column is the added date", func(t *testing.T) {
		store := newTestStore(t)
		entries, err := store.ReadWatchlist()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}

		SortWatchlist(entries, "", false)
		if entries[0].Title != "Stalker" {
			t.Errorf("expected newest addition first, got %q", entries[0].Title)
		}

		SortWatchlist(entries, "", true)
		if entries[0].Title != "The Thing" {
			t.Errorf("expected oldest addition first, got %q", entries[0].Title)
		}
	})

	t.Run("SortList", func(t *testing.T) {
		entries := []models.ListEntry{
			{Film: models.Film{Title: "B", Year: 1990}, Position: 2},
			{Film: models.Film{Title: "A", Year: 2000}, Position: 1},
		}

		SortList(entries, "", true)
		if entries[0].Position != 1 {
			t.Errorf("expected position order, got %+v", entries[0])
		}

		SortList(entries, "Year", false)
		if entries[0].Year != 2000 {
			t.Errorf("expected newest year first, got %+v", entries[0])
		}
	})
}

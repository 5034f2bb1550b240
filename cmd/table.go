// submodule table shapes export entries into table rows
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lbx/internal/models"
)

const displayDate = "2006-01-02"

var (
	watchlistHeaders = []string{"Added", "Name", "Year", "URL"}
	diaryHeaders     = []string{"Watched", "Name", "Year", "Rating", "Rewatch", "Tags"}
	ratingsHeaders   = []string{"Rated", "Name", "Year", "Rating"}
	watchedHeaders   = []string{"Watched", "Name", "Year"}
	listHeaders      = []string{"#", "Name", "Year", "Rating", "Runtime"}
	creditsHeaders   = []string{"Released", "Title", "Department", "Watched"}
)

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDate)
}

func ratingString(rating float64) string {
	if rating == 0 {
		return ""
	}
	return strconv.FormatFloat(rating, 'g', -1, 64)
}

func watchlistRows(entries []models.WatchlistEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{dateString(e.AddedAt), e.Title, yearString(e.Year), e.URL}
	}
	return rows
}

func diaryRows(entries []models.DiaryEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			dateString(e.WatchedAt), e.Title, yearString(e.Year),
			ratingString(e.Rating), yesNo(e.Rewatch), strings.Join(e.Tags, ", "),
		}
	}
	return rows
}

func ratingsRows(entries []models.RatingEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{dateString(e.RatedAt), e.Title, yearString(e.Year), ratingString(e.Rating)}
	}
	return rows
}

func watchedRows(entries []models.WatchedEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{dateString(e.WatchedAt), e.Title, yearString(e.Year)}
	}
	return rows
}

func listRows(entries []models.ListEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		runtime := ""
		if e.Runtime > 0 {
			runtime = fmt.Sprintf("%d min", e.Runtime)
		}
		rows[i] = []string{
			strconv.Itoa(e.Position), e.Title, yearString(e.Year),
			ratingString(e.Rating), runtime,
		}
	}
	return rows
}

func creditRows(credits []models.PersonCredit) [][]string {
	rows := make([][]string, len(credits))
	for i, c := range credits {
		rows[i] = []string{dateString(c.ReleaseDate), c.Title, c.Department, yesNo(c.Watched)}
	}
	return rows
}

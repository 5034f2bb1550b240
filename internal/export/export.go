// Package export reads the CSV account exports (watchlist, diary,
// ratings, watched history, lists) and shapes them for display.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"lbx/internal/models"
	"lbx/internal/shared"
)

// Export file names inside the data directory.
const (
	WatchlistFile = "watchlist.csv"
	DiaryFile     = "diary.csv"
	RatingsFile   = "ratings.csv"
	WatchedFile   = "watched.csv"
	ListsDir      = "lists"
)

const dateLayout = "2006-01-02"

// Store reads CSV exports from the data directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates a Store rooted at the given data directory.
func NewStore(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{dir: dir, logger: logger}
}

// Path returns the absolute path of a named export file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// ReadWatchlist parses watchlist.csv.
func (s *Store) ReadWatchlist() ([]models.WatchlistEntry, error) {
	rows, err := s.readCSV(s.Path(WatchlistFile), 0)
	if err != nil {
		return nil, err
	}

	entries := make([]models.WatchlistEntry, 0, len(rows))
	for _, row := range rows {
		added, _ := time.Parse(dateLayout, row.get("Date"))
		entries = append(entries, models.WatchlistEntry{
			Film:    filmFromRow(row),
			AddedAt: added,
		})
	}

	return entries, nil
}

// ReadDiary parses diary.csv.
func (s *Store) ReadDiary() ([]models.DiaryEntry, error) {
	rows, err := s.readCSV(s.Path(DiaryFile), 0)
	if err != nil {
		return nil, err
	}

	entries := make([]models.DiaryEntry, 0, len(rows))
	for _, row := range rows {
		watched, _ := time.Parse(dateLayout, row.get("Watched Date"))
		rating, _ := strconv.ParseFloat(row.get("Rating"), 64)

		var tags []string
		if raw := row.get("Tags"); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				tags = append(tags, strings.TrimSpace(tag))
			}
		}

		entries = append(entries, models.DiaryEntry{
			Film:      filmFromRow(row),
			WatchedAt: watched,
			Rating:    rating,
			Rewatch:   strings.EqualFold(row.get("Rewatch"), "yes"),
			Tags:      tags,
		})
	}

	return entries, nil
}

// ReadRatings parses ratings.csv.
func (s *Store) ReadRatings() ([]models.RatingEntry, error) {
	rows, err := s.readCSV(s.Path(RatingsFile), 0)
	if err != nil {
		return nil, err
	}

	entries := make([]models.RatingEntry, 0, len(rows))
	for _, row := range rows {
		rated, _ := time.Parse(dateLayout, row.get("Date"))
		rating, _ := strconv.ParseFloat(row.get("Rating"), 64)
		entries = append(entries, models.RatingEntry{
			Film:    filmFromRow(row),
			RatedAt: rated,
			Rating:  rating,
		})
	}

	return entries, nil
}

// ReadWatched parses watched.csv.
func (s *Store) ReadWatched() ([]models.WatchedEntry, error) {
	rows, err := s.readCSV(s.Path(WatchedFile), 0)
	if err != nil {
		return nil, err
	}

	entries := make([]models.WatchedEntry, 0, len(rows))
	for _, row := range rows {
		watched, _ := time.Parse(dateLayout, row.get("Date"))
		entries = append(entries, models.WatchedEntry{
			Film:      filmFromRow(row),
			WatchedAt: watched,
		})
	}

	return entries, nil
}

// ListNames maps each saved list's display name to its CSV path.
//
// The display name comes from the list metadata header on the second
// line of the file.
func (s *Store) ListNames() (map[string]string, error) {
	dir := s.Path(ListsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (run `lbx export download` first)", shared.ErrNoExportData, dir)
	}

	names := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		name, err := s.listName(path)
		if err != nil {
			s.logger.Warn("skipping malformed list file", "path", path, "err", err)
			continue
		}
		names[name] = path
	}

	return names, nil
}

// ReadList parses one saved-list CSV. The film rows start after the
// three metadata header lines.
func (s *Store) ReadList(path string) ([]models.ListEntry, error) {
	rows, err := s.readCSV(path, 3)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ListEntry, 0, len(rows))
	for _, row := range rows {
		position, _ := strconv.Atoi(row.get("Position"))
		entries = append(entries, models.ListEntry{
			Film:     filmFromRow(row),
			Position: position,
		})
	}

	return entries, nil
}

// listName reads the list display name from the metadata header.
func (s *Store) listName(path string) (string, error) {
	rows, err := s.readCSVLimited(path, 1, 1)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("no metadata row in %s", path)
	}

	name := rows[0].get("Name")
	if name == "" {
		return "", fmt.Errorf("no list name in %s", path)
	}
	return name, nil
}

// row is one CSV record with access by header name.
type row struct {
	header map[string]int
	fields []string
}

func (r row) get(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// filmFromRow builds the shared film reference. Exports name the title
// column "Name" and the link column "Letterboxd URI" (lists use "URL").
func filmFromRow(r row) models.Film {
	uri := r.get("Letterboxd URI")
	if uri == "" {
		uri = r.get("URL")
	}

	year, _ := strconv.Atoi(r.get("Year"))

	return models.Film{
		Title: r.get("Name"),
		Year:  year,
		URL:   uri,
		Slug:  models.SlugFromURL(uri),
	}
}

// readCSV reads a CSV file, skipping headerLine leading lines before
// the header row.
func (s *Store) readCSV(path string, headerLine int) ([]row, error) {
	return s.readCSVLimited(path, headerLine, -1)
}

func (s *Store) readCSVLimited(path string, headerLine, limit int) ([]row, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run `lbx export download` first)", shared.ErrNoExportData, path)
		}
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	for i := 0; i < headerLine; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed to skip header lines in %s: %w", path, err)
		}
	}

	headerFields, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	header := make(map[string]int, len(headerFields))
	for i, name := range headerFields {
		header[strings.TrimSpace(name)] = i
	}

	var rows []row
	for limit < 0 || len(rows) < limit {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(fields) == 0 || (len(fields) == 1 && fields[0] == "") {
			continue
		}
		rows = append(rows, row{header: header, fields: fields})
	}

	return rows, nil
}

// Shuffle returns a shuffled copy of watchlist entries.
func Shuffle(entries []models.WatchlistEntry) []models.WatchlistEntry {
	shuffled := make([]models.WatchlistEntry, len(entries))
	copy(shuffled, entries)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// FilterByRating keeps only rating entries whose rating is in the set.
func FilterByRating(entries []models.RatingEntry, ratings []float64) []models.RatingEntry {
	keep := make(map[float64]bool, len(ratings))
	for _, r := range ratings {
		keep[r] = true
	}

	var filtered []models.RatingEntry
	for _, entry := range entries {
		if keep[entry.Rating] {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// JoinRatings annotates list entries with the user's ratings, matching
// on the Letterboxd URI.
func JoinRatings(entries []models.ListEntry, ratings []models.RatingEntry) []models.ListEntry {
	byURL := make(map[string]float64, len(ratings))
	for _, r := range ratings {
		byURL[r.URL] = r.Rating
	}

	joined := make([]models.ListEntry, len(entries))
	for i, entry := range entries {
		entry.Rating = byURL[entry.URL]
		joined[i] = entry
	}
	return joined
}

// MeanRating returns the mean of the non-zero ratings in a list.
func MeanRating(entries []models.ListEntry) float64 {
	var sum float64
	var count int
	for _, entry := range entries {
		if entry.Rating > 0 {
			sum += entry.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// TimeWeightedMeanRating weights each rating by the film's share of
// the list's total runtime. Entries without a runtime are skipped.
func TimeWeightedMeanRating(entries []models.ListEntry) float64 {
	var totalRuntime int
	for _, entry := range entries {
		if entry.Rating > 0 && entry.Runtime > 0 {
			totalRuntime += entry.Runtime
		}
	}
	if totalRuntime == 0 {
		return 0
	}

	var weighted float64
	for _, entry := range entries {
		if entry.Rating > 0 && entry.Runtime > 0 {
			weighted += entry.Rating * float64(entry.Runtime) / float64(totalRuntime)
		}
	}
	return weighted
}

// SortDiary orders diary entries by the named column.
func SortDiary(entries []models.DiaryEntry, column string, ascending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		var less bool
		switch column {
		case "Rating":
			less = entries[i].Rating < entries[j].Rating
		case "Name":
			less = entries[i].Title < entries[j].Title
		case "Year":
			less = entries[i].Year < entries[j].Year
		default:
			less = entries[i].WatchedAt.Before(entries[j].WatchedAt)
		}
		if ascending {
			return less
		}
		return !less
	})
}

// SortRatings orders rating entries by the named column.
func SortRatings(entries []models.RatingEntry, column string, ascending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		var less bool
		switch column {
		case "Rating":
			less = entries[i].Rating < entries[j].Rating
		case "Name":
			less = entries[i].Title < entries[j].Title
		case "Year":
			less = entries[i].Year < entries[j].Year
		default:
			less = entries[i].RatedAt.Before(entries[j].RatedAt)
		}
		if ascending {
			return less
		}
		return !less
	})
}

// SortWatchlist orders watchlist entries by the named column.
func SortWatchlist(entries []models.WatchlistEntry, column string, ascending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		var less bool
		switch column {
		case "Name":
			less = entries[i].Title < entries[j].Title
		case "Year":
			less = entries[i].Year < entries[j].Year
		default:
			less = entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		if ascending {
			return less
		}
		return !less
	})
}

// SortList orders list entries by the named column.
func SortList(entries []models.ListEntry, column string, ascending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		var less bool
		switch column {
		case "Name":
			less = entries[i].Title < entries[j].Title
		case "Year":
			less = entries[i].Year < entries[j].Year
		case "Rating":
			less = entries[i].Rating < entries[j].Rating
		default:
			less = entries[i].Position < entries[j].Position
		}
		if ascending {
			return less
		}
		return !less
	})
}

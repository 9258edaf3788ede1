package utils

import (
	"sort"
	"strings"
	"time"
)

// SubmissionView is the flattened record the filter/sort engine operates on.
// Controllers build these from loaded submissions; the engine itself never
// touches the database.
type SubmissionView struct {
	SubmissionID  int       `json:"submission_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Status        string    `json:"status"`
	WordCount     int       `json:"word_count"`
	Language      string    `json:"language"`
	PublicationID int       `json:"publication_id"`
	Publication   string    `json:"publication"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// FilterConfig is a conjunction of optional filter dimensions. An empty
// dimension matches everything; values within a dimension are OR-ed.
type FilterConfig struct {
	Statuses     []string
	Genres       []string
	Publications []int
	DateFrom     *time.Time
	DateTo       *time.Time
	MinWords     *int
	MaxWords     *int
}

// Sort keys accepted by the engine.
const (
	SortBySubmittedAt = "submitted_at"
	SortByTitle       = "title"
	SortByAuthor      = "author"
	SortByStatus      = "status"
	SortByGenre       = "genre"
	SortByWordCount   = "word_count"
	SortByPublication = "publication"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortConfig selects exactly one sort key and a direction.
type SortConfig struct {
	Key       string
	Direction string
}

// DefaultSort is newest-first, matching the submission list's initial view.
var DefaultSort = SortConfig{Key: SortBySubmittedAt, Direction: SortDesc}

// ValidSortKey reports whether key is one of the supported sort keys.
func ValidSortKey(key string) bool {
	switch key {
	case SortBySubmittedAt, SortByTitle, SortByAuthor, SortByStatus,
		SortByGenre, SortByWordCount, SortByPublication:
		return true
	}
	return false
}

// NextSort returns the sort config after selecting key: re-selecting the
// active key flips the direction, a new key resets to ascending.
func NextSort(current SortConfig, key string) SortConfig {
	if current.Key == key && current.Direction == SortAsc {
		return SortConfig{Key: key, Direction: SortDesc}
	}
	return SortConfig{Key: key, Direction: SortAsc}
}

// FilterSubmissions returns the sublist matching every non-empty filter
// dimension plus the free-text query. The query matches case-insensitively
// as a substring against title, author, genre and publication name.
func FilterSubmissions(items []SubmissionView, query string, cfg FilterConfig) []SubmissionView {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]SubmissionView, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if len(cfg.Statuses) > 0 && !containsString(cfg.Statuses, item.Status) {
			continue
		}
		if len(cfg.Genres) > 0 && !containsString(cfg.Genres, item.Genre) {
			continue
		}
		if len(cfg.Publications) > 0 && !containsInt(cfg.Publications, item.PublicationID) {
			continue
		}
		if cfg.DateFrom != nil && item.SubmittedAt.Before(*cfg.DateFrom) {
			continue
		}
		if cfg.DateTo != nil && item.SubmittedAt.After(*cfg.DateTo) {
			continue
		}
		if cfg.MinWords != nil && item.WordCount < *cfg.MinWords {
			continue
		}
		if cfg.MaxWords != nil && item.WordCount > *cfg.MaxWords {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// SortSubmissions orders items by the configured key. String keys compare
// case-insensitively; ties break deterministically by submission ID
// ascending. The input slice is not modified.
func SortSubmissions(items []SubmissionView, cfg SortConfig) []SubmissionView {
	sorted := make([]SubmissionView, len(items))
	copy(sorted, items)

	desc := cfg.Direction == SortDesc
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareByKey(sorted[i], sorted[j], cfg.Key)
		if cmp == 0 {
			return sorted[i].SubmissionID < sorted[j].SubmissionID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func matchesQuery(item SubmissionView, query string) bool {
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Author), query) ||
		strings.Contains(strings.ToLower(item.Genre), query) ||
		strings.Contains(strings.ToLower(item.Publication), query)
}

func compareByKey(a, b SubmissionView, key string) int {
	switch key {
	case SortByTitle:
		return compareFold(a.Title, b.Title)
	case SortByAuthor:
		return compareFold(a.Author, b.Author)
	case SortByStatus:
		return strings.Compare(a.Status, b.Status)
	case SortByGenre:
		return compareFold(a.Genre, b.Genre)
	case SortByPublication:
		return compareFold(a.Publication, b.Publication)
	case SortByWordCount:
		return a.WordCount - b.WordCount
	default: // SortBySubmittedAt
		if a.SubmittedAt.Before(b.SubmittedAt) {
			return -1
		}
		if a.SubmittedAt.After(b.SubmittedAt) {
			return 1
		}
		return 0
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

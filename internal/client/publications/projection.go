package publications

import (
	"fmt"
	"slices"
	"strings"

	"pubkeeper/internal/client/models"
)

// StatusFilter narrows the projection to one status, or passes everything.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterDraft     StatusFilter = "draft"
	FilterPublished StatusFilter = "published"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case FilterAll, FilterDraft, FilterPublished:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// SortKey selects the projection order.
type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTitle  SortKey = "title"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNewest, SortOldest, SortTitle:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// project computes the derived view: a pure function of the inputs, never a
// mutation of them. Search is a case-insensitive substring match against
// title or content; an empty search matches everything. Sorting is stable,
// so records that compare equal keep the backend's order.
func project(items []models.Publication, search string, filter StatusFilter, sort SortKey) []models.Publication {
	result := make([]models.Publication, 0, len(items))

	needle := strings.ToLower(search)
	for _, p := range items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) {
			continue
		}
		if filter != FilterAll && string(p.Status) != string(filter) {
			continue
		}
		result = append(result, p)
	}

	switch sort {
	case SortOldest:
		slices.SortStableFunc(result, func(a, b models.Publication) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortTitle:
		slices.SortStableFunc(result, func(a, b models.Publication) int {
			return strings.Compare(a.Title, b.Title)
		})
	default: // SortNewest
		slices.SortStableFunc(result, func(a, b models.Publication) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return result
}

// projCache memoizes the last projection, keyed on the list revision and the
// three view inputs. Any list mutation bumps the revision and invalidates it.
type projCache struct {
	rev    uint64
	search string
	filter StatusFilter
	sort   SortKey
	result []models.Publication
}

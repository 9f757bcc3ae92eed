package catalog

import (
	"sort"
	"strings"

	"github.com/teamcook/formcheck/internal/models"
)

// CategoryAll disables category filtering in ListFiltered.
const CategoryAll = models.Category("all")

// ListFiltered derives a filtered, sorted view of the catalog without
// mutating it. Calling it twice with the same arguments and no intervening
// mutation yields element-wise identical results: the filters are
// deterministic and both sorts are stable, so exact ties keep the
// collection's insertion order.
func (s *Store) ListFiltered(category models.Category, searchTerm string, order models.SortOrder) []models.Video {
	s.mu.Lock()
	videos := s.snapshotLocked()
	s.mu.Unlock()

	if category != "" && category != CategoryAll {
		kept := videos[:0]
		for _, v := range videos {
			if v.Category == category {
				kept = append(kept, v)
			}
		}
		videos = kept
	}

	if term := strings.ToLower(strings.TrimSpace(searchTerm)); term != "" {
		kept := videos[:0]
		for _, v := range videos {
			if strings.Contains(strings.ToLower(v.Title), term) {
				kept = append(kept, v)
			}
		}
		videos = kept
	}

	switch order {
	case models.SortPopular:
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].FeedbackCount > videos[j].FeedbackCount
		})
	default:
		sortLatest(videos)
	}

	return videos
}

func sortLatest(videos []models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
}

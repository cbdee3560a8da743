package store

import (
	"sort"

	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
)

// Lexicographic sort works for the fixed-width N/T/P id formats.

func sortedNoteIDs(r *pipeline.Result) []string {
	ids := make([]string, 0, len(r.Notes))
	for id := range r.Notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedThemeIDs(r *pipeline.Result) []string {
	ids := make([]string, 0, len(r.Themes))
	for id := range r.Themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedPlanIDs(r *pipeline.Result) []string {
	ids := make([]string, 0, len(r.Plans))
	for id := range r.Plans {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

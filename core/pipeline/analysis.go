package pipeline

import "sort"

// Analysis is a summary report over a completed run.
type Analysis struct {
	Summary struct {
		TotalVerses          int `json:"total_verses"`
		TotalNotes           int `json:"total_notes"`
		TotalCrossReferences int `json:"total_cross_references"`
		TotalThemes          int `json:"total_themes"`
		TotalReadingPlans    int `json:"total_reading_plans"`
	} `json:"summary"`

	NoteStatistics struct {
		AverageVersesPerNote float64 `json:"average_verses_per_note"`
		MostCommonCategory   string  `json:"most_common_category"`
	} `json:"note_statistics"`

	ThemeStatistics struct {
		MostReferencedTheme string       `json:"most_referenced_theme"`
		TopThemesByNotes    []ThemeCount `json:"themes_with_most_notes"`
	} `json:"theme_statistics"`
}

// ThemeCount pairs a theme name with its note count.
type ThemeCount struct {
	Name  string `json:"name"`
	Notes int    `json:"notes"`
}

// Analyze computes summary statistics over a completed result.
func Analyze(r *Result) Analysis {
	var a Analysis
	a.Summary.TotalVerses = r.Verses.Len()
	a.Summary.TotalNotes = len(r.Notes)
	a.Summary.TotalCrossReferences = len(r.CrossRefs)
	a.Summary.TotalThemes = len(r.Themes)
	a.Summary.TotalReadingPlans = len(r.Plans)

	if len(r.Notes) > 0 {
		total := 0
		categories := make(map[string]int)
		for _, n := range r.Notes {
			total += len(n.LinkedVerses)
			if n.Category != "" {
				categories[n.Category]++
			}
		}
		a.NoteStatistics.AverageVersesPerNote = float64(total) / float64(len(r.Notes))
		a.NoteStatistics.MostCommonCategory = "None"
		best := 0
		names := make([]string, 0, len(categories))
		for name := range categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if categories[name] > best {
				best = categories[name]
				a.NoteStatistics.MostCommonCategory = name
			}
		}
	} else {
		a.NoteStatistics.MostCommonCategory = "None"
	}

	a.ThemeStatistics.MostReferencedTheme = "None"
	themeIDs := make([]string, 0, len(r.Themes))
	for id := range r.Themes {
		themeIDs = append(themeIDs, id)
	}
	sort.Strings(themeIDs)
	counts := make([]ThemeCount, 0, len(r.Themes))
	bestRefs := -1
	for _, id := range themeIDs {
		t := r.Themes[id]
		counts = append(counts, ThemeCount{Name: t.Name, Notes: len(t.NoteIDs)})
		if t.TotalReferences() > bestRefs {
			bestRefs = t.TotalReferences()
			a.ThemeStatistics.MostReferencedTheme = t.Name
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Notes != counts[j].Notes {
			return counts[i].Notes > counts[j].Notes
		}
		return counts[i].Name < counts[j].Name
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	a.ThemeStatistics.TopThemesByNotes = counts

	return a
}

// Package plans generates thematic daily reading plans from the thematic
// index.
package plans

import (
	"fmt"

	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
	"github.com/FocuswithJustin/ScofieldStudy/core/themes"
)

// majorThemes are the theme names that qualify for plan generation.
var majorThemes = []string{"Dispensation", "Covenant Theology", "Salvation", "Eschatology"}

const (
	// minReferences is the total reference count a theme must exceed to
	// get a plan.
	minReferences = 10

	// maxPerBook caps one book's contribution to a plan.
	maxPerBook = 20

	// versesPerDay is the daily chunk size. The final day may be partial.
	versesPerDay = 10

	// minutesPerDay is the estimated reading time per day.
	minutesPerDay = 15
)

// Plan is a generated reading plan: an ordered list of days, each an
// ordered list of verse ids. Immutable once created.
type Plan struct {
	// ID is the generated id ("P001", ...).
	ID string `json:"plan_id"`

	// Name and Description are display strings.
	Name        string `json:"name"`
	Description string `json:"description"`

	// Days holds the daily verse-id groups, at most versesPerDay each.
	Days [][]string `json:"days"`

	// Theme is the source theme's canonical name.
	Theme string `json:"theme"`

	// EstimatedMinutes is dayCount times minutesPerDay.
	EstimatedMinutes int `json:"estimated_minutes"`

	// Tags label the plan for browsing.
	Tags []string `json:"tags,omitempty"`
}

// DayCount returns the number of days in the plan.
func (p *Plan) DayCount() int {
	return len(p.Days)
}

// TotalVerses returns the verse count across all days.
func (p *Plan) TotalVerses() int {
	n := 0
	for _, day := range p.Days {
		n += len(day)
	}
	return n
}

// Generate creates one reading plan per major theme whose total reference
// count exceeds the threshold. The theme's verses are grouped by book in
// first-seen order, each book capped at maxPerBook, and the concatenated
// sequence is repacked into versesPerDay-sized days. Verse ids missing
// from the store are dropped.
func Generate(index map[string]*themes.Theme, store *scripture.Store) map[string]*Plan {
	out := make(map[string]*Plan)
	counter := 1

	for _, name := range majorThemes {
		theme := themes.FindByName(index, name)
		if theme == nil || theme.TotalReferences() <= minReferences {
			continue
		}

		byBook := make(map[string][]string)
		var bookOrder []string
		for _, vid := range theme.VerseIDs {
			v := store.Get(vid)
			if v == nil {
				continue
			}
			if _, seen := byBook[v.Book]; !seen {
				bookOrder = append(bookOrder, v.Book)
			}
			byBook[v.Book] = append(byBook[v.Book], vid)
		}

		var days [][]string
		var current []string
		for _, book := range bookOrder {
			verses := byBook[book]
			if len(verses) > maxPerBook {
				verses = verses[:maxPerBook]
			}
			for _, vid := range verses {
				if len(current) >= versesPerDay {
					days = append(days, current)
					current = nil
				}
				current = append(current, vid)
			}
		}
		if len(current) > 0 {
			days = append(days, current)
		}
		if len(days) == 0 {
			continue
		}

		plan := &Plan{
			ID:               fmt.Sprintf("P%03d", counter),
			Name:             fmt.Sprintf("Scofield Study: %s", name),
			Description:      fmt.Sprintf("Study %s through key Scofield references", name),
			Days:             days,
			Theme:            name,
			EstimatedMinutes: len(days) * minutesPerDay,
			Tags:             []string{name, "Scofield", "Study"},
		}
		out[plan.ID] = plan
		counter++
	}

	return out
}

// Package themes aggregates notes and verses under a fixed taxonomy of
// theological themes and builds the parent/child theme hierarchy.
package themes

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/ScofieldStudy/core/notes"
	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
)

// taxonomy is the fixed list of recognized theme names. Matching order
// follows the list.
var taxonomy = []string{
	// Major doctrines
	"Dispensation", "Covenant Theology", "Grace", "Law vs. Grace", "Prophecy",
	"Kingdom of God", "Church Age", "Israel and the Church", "Gentiles",
	"Salvation", "Atonement", "Justification", "Sanctification", "Glorification",
	"Eschatology", "Second Coming", "Millennium", "Great White Throne",
	"Rapture", "Tribulation", "Antichrist", "Resurrection", "Judgment",
	"Heaven", "Hell", "New Jerusalem", "Eternal State",

	// Biblical themes
	"Creation", "Fall of Man", "Redemption", "Covenants", "Promise",
	"Faith", "Hope", "Love", "Sin", "Repentance",
	"Forgiveness", "Mercy", "Justice", "Holiness", "Righteousness",

	// Christological themes
	"Deity of Christ", "Humanity of Christ", "Virgin Birth", "Incarnation",
	"Atoning Death", "Ascension", "High Priest",
	"Mediator", "Advocate", "King of Kings", "Lord of Lords",
}

// hierarchy is the fixed parent-to-children table applied by name to the
// materialized themes. Names absent from the run's theme set leave their
// links unapplied; themes absent from this table stay flat.
var hierarchy = []struct {
	Parent   string
	Children []string
}{
	{"Dispensation", []string{"Law vs. Grace", "Church Age", "Millennium"}},
	{"Covenant Theology", []string{"Promise", "Israel and the Church"}},
	{"Eschatology", []string{"Second Coming", "Rapture", "Tribulation", "Millennium"}},
	{"Salvation", []string{"Justification", "Sanctification", "Glorification"}},
}

// stemPatterns precompiles the crude stem heuristic per theme name: the
// name with its last character stripped, matched as a word-boundary prefix.
// Deliberately over-eager (singular/plural collisions included); downstream
// statistics assume this exact behavior.
var stemPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(taxonomy))
	for _, name := range taxonomy {
		lower := strings.ToLower(name)
		m[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(lower[:len(lower)-1]))
	}
	return m
}()

// taxonomySet indexes taxonomy names for membership tests.
var taxonomySet = func() map[string]bool {
	m := make(map[string]bool, len(taxonomy))
	for _, name := range taxonomy {
		m[name] = true
	}
	return m
}()

var titleCaser = cases.Title(language.English)

// Taxonomy returns the fixed theme names in matching order.
func Taxonomy() []string {
	out := make([]string, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// TagText returns the taxonomy names matched by the text, via
// case-insensitive substring containment or the stem-prefix heuristic.
func TagText(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, name := range taxonomy {
		if strings.Contains(lower, strings.ToLower(name)) || stemPatterns[name].MatchString(lower) {
			tags = append(tags, name)
		}
	}
	return tags
}

// Theme is a materialized theme with its aggregated membership. Parent and
// child links are symmetric: if A lists B as a sub-theme, B lists A as a
// parent.
type Theme struct {
	// ID is the generated id ("T001", ...).
	ID string `json:"theme_id"`

	// Name is the canonical taxonomy name.
	Name string `json:"name"`

	// Description is a generated summary line.
	Description string `json:"description"`

	// NoteIDs and VerseIDs are the aggregated membership. VerseIDs is
	// deduplicated, keeping first-seen order.
	NoteIDs  []string `json:"note_ids"`
	VerseIDs []string `json:"verse_ids"`

	// Categories are optional grouping labels.
	Categories []string `json:"categories,omitempty"`

	// SubThemes and ParentThemes are hierarchy links by theme id.
	SubThemes    []string `json:"sub_themes,omitempty"`
	ParentThemes []string `json:"parent_themes,omitempty"`

	// Confidence is a saturating relative ranking signal:
	// min(1.0, (notes+verses)/100).
	Confidence float64 `json:"confidence_score"`
}

// TotalReferences returns the combined note and verse count.
func (t *Theme) TotalReferences() int {
	return len(t.NoteIDs) + len(t.VerseIDs)
}

// BuildIndex aggregates notes and verses into materialized themes.
// Pass 1 collects, per theme, the ids of tagged notes plus their linked
// verses, and the ids of verses whose keywords title-case to a taxonomy
// name. Pass 2 materializes a Theme for every theme that received at least
// one note. Pass 3 applies the fixed hierarchy table symmetrically.
// Iteration over notes is in id order and over verses in insertion order,
// so ids and membership order are deterministic.
func BuildIndex(all map[string]*notes.Note, store *scripture.Store) map[string]*Theme {
	noteIDs := make([]string, 0, len(all))
	for id := range all {
		noteIDs = append(noteIDs, id)
	}
	sort.Strings(noteIDs)

	themeNotes := make(map[string][]string)
	themeVerses := make(map[string][]string)
	var themeOrder []string

	touch := func(name string) {
		if _, seen := themeNotes[name]; !seen {
			if _, seen := themeVerses[name]; !seen {
				themeOrder = append(themeOrder, name)
			}
		}
	}

	for _, id := range noteIDs {
		note := all[id]
		for _, name := range dedup(note.ThemeTags) {
			touch(name)
			themeNotes[name] = append(themeNotes[name], id)
			themeVerses[name] = append(themeVerses[name], note.LinkedVerses...)
		}
	}

	for _, vid := range store.IDs() {
		for _, keyword := range store.Get(vid).Keywords {
			name := titleCaser.String(keyword)
			if taxonomySet[name] {
				touch(name)
				themeVerses[name] = append(themeVerses[name], vid)
			}
		}
	}

	out := make(map[string]*Theme)
	counter := 1
	for _, name := range themeOrder {
		ids := themeNotes[name]
		if len(ids) == 0 {
			// Verse-only themes are not materialized.
			continue
		}
		t := &Theme{
			ID:          fmt.Sprintf("T%03d", counter),
			Name:        name,
			Description: fmt.Sprintf("References to %s in Scofield notes", name),
			NoteIDs:     ids,
			VerseIDs:    dedup(themeVerses[name]),
		}
		t.Confidence = min(1.0, float64(len(t.NoteIDs)+len(t.VerseIDs))/100)
		out[t.ID] = t
		counter++
	}

	linkHierarchy(out)
	return out
}

// linkHierarchy applies the fixed parent/child table, recording each
// matched pair on both sides.
func linkHierarchy(all map[string]*Theme) {
	byName := make(map[string]*Theme, len(all))
	for _, t := range all {
		byName[t.Name] = t
	}

	for _, entry := range hierarchy {
		parent, ok := byName[entry.Parent]
		if !ok {
			continue
		}
		for _, childName := range entry.Children {
			child, ok := byName[childName]
			if !ok {
				continue
			}
			child.ParentThemes = append(child.ParentThemes, parent.ID)
			parent.SubThemes = append(parent.SubThemes, child.ID)
		}
	}
}

// FindByName returns the theme with the given canonical name, or nil.
func FindByName(all map[string]*Theme, name string) *Theme {
	for _, t := range all {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// dedup removes duplicates keeping first-seen order.
func dedup(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Package notes builds study-note records from tabular input, resolving
// each note's scripture references and linking notes to verses.
package notes

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/ScofieldStudy/core/ref"
	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
)

// Type classifies a study note.
type Type string

// Note type constants.
const (
	TypeExplanatory Type = "explanatory"
	TypeDoctrinal   Type = "doctrinal"
	TypeProphetic   Type = "prophetic"
	TypeHistorical  Type = "historical"
	TypePractical   Type = "practical"
	TypeThematic    Type = "thematic"
)

// Note is a single study note with its resolved verse links and derived
// theme tags. Notes are immutable once theme tagging completes.
type Note struct {
	// ID is the generated sequential id ("N0001", ...).
	ID string `json:"note_id"`

	// Text is the full note text.
	Text string `json:"text"`

	// LinkedVerses are the resolved verse ids the note is about, in
	// citation order. Always non-empty; a note with no resolvable
	// reference is never created.
	LinkedVerses []string `json:"linked_verses"`

	// Type classifies the note. Defaults to explanatory.
	Type Type `json:"note_type"`

	// Category and Subcategory are free-form grouping strings from input.
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`

	// Keywords is the explicit keyword list from input.
	Keywords []string `json:"keywords,omitempty"`

	// ThemeTags are taxonomy names matched against the note text.
	ThemeTags []string `json:"theme_tags,omitempty"`
}

// FirstVerse returns the first linked verse id.
func (n *Note) FirstVerse() string {
	if len(n.LinkedVerses) == 0 {
		return ""
	}
	return n.LinkedVerses[0]
}

// VerseCount returns the number of linked verses.
func (n *Note) VerseCount() int {
	return len(n.LinkedVerses)
}

// BuildStats counts note build outcomes.
type BuildStats struct {
	Loaded    int `json:"loaded"`
	Discarded int `json:"discarded"`
}

// minNoteColumns is the minimum column count for a note row:
// reference, text, category.
const minNoteColumns = 3

// Builder creates notes from input rows and links them into a verse store.
type Builder struct {
	store *scripture.Store

	// TagThemes derives theme tags from note text. Wired by the pipeline
	// to the theme taxonomy matcher; nil leaves notes untagged.
	TagThemes func(text string) []string

	nextID int
}

// NewBuilder creates a Builder that links notes into store.
func NewBuilder(store *scripture.Store) *Builder {
	return &Builder{store: store, nextID: 1}
}

// Build parses rows of (reference, text, category, keywords?) into notes.
// A row whose reference resolves to zero verses is discarded entirely: an
// orphan note cannot be navigated to. For every resolved verse present in
// the store, the note id is appended to that verse's back-references.
// Back-reference appends are not deduplicated; building the same rows into
// one store twice duplicates the links (see DESIGN.md).
func (b *Builder) Build(rows [][]string) (map[string]*Note, BuildStats) {
	out := make(map[string]*Note)
	var stats BuildStats

	for i, row := range rows {
		if len(row) < minNoteColumns {
			logging.RowSkipped("notes", i+1, "too few columns")
			stats.Discarded++
			continue
		}

		refStr := strings.TrimSpace(row[0])
		text := strings.TrimSpace(row[1])
		category := strings.TrimSpace(row[2])

		verseIDs := ref.ParseReference(refStr)
		if len(verseIDs) == 0 {
			logging.RowSkipped("notes", i+1, "no resolvable reference", "reference", refStr)
			stats.Discarded++
			continue
		}

		note := &Note{
			ID:           fmt.Sprintf("N%04d", b.nextID),
			Text:         text,
			LinkedVerses: verseIDs,
			Type:         TypeExplanatory,
			Category:     category,
			Keywords:     splitKeywords(row),
		}
		if b.TagThemes != nil {
			note.ThemeTags = b.TagThemes(text)
		}
		b.nextID++

		out[note.ID] = note
		stats.Loaded++

		for _, vid := range verseIDs {
			if v := b.store.Get(vid); v != nil {
				v.NoteIDs = append(v.NoteIDs, note.ID)
			}
		}
	}

	return out, stats
}

// splitKeywords parses the optional fourth column as a comma-separated
// keyword list, trimming entries and dropping empties.
func splitKeywords(row []string) []string {
	if len(row) < 4 {
		return nil
	}
	var keywords []string
	for _, k := range strings.Split(row[3], ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

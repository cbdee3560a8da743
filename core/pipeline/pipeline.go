// Package pipeline runs the full parse over one input pair and owns the
// per-run entity tables. A completed Result is an immutable snapshot:
// concurrent readers may query it freely, and a re-parse builds a new
// Result to be swapped in atomically rather than mutating the live one.
package pipeline

import (
	"time"

	"github.com/FocuswithJustin/ScofieldStudy/core/notes"
	"github.com/FocuswithJustin/ScofieldStudy/core/plans"
	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
	"github.com/FocuswithJustin/ScofieldStudy/core/themes"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
)

// Stats holds the observable counters for one run. Non-fatal conditions
// (skipped rows, discarded notes) are counted here, not just logged.
type Stats struct {
	VersesLoaded   int `json:"verses_loaded"`
	VersesSkipped  int `json:"verses_skipped"`
	NotesLoaded    int `json:"notes_loaded"`
	NotesDiscarded int `json:"notes_discarded"`
	CrossRefs      int `json:"cross_references"`
	Themes         int `json:"themes"`
	Plans          int `json:"reading_plans"`
}

// Result is the completed output of one pipeline run.
type Result struct {
	Verses    *scripture.Store
	Notes     map[string]*notes.Note
	CrossRefs []notes.CrossReference
	Themes    map[string]*themes.Theme
	Plans     map[string]*plans.Plan
	Stats     Stats
	BuiltAt   time.Time
}

// Build runs the pipeline over pre-read verse and note rows: verse store,
// notes (with theme tagging and verse linking), cross-reference extraction,
// thematic index, reading plans. Unparseable rows are skipped and counted;
// nothing here is fatal.
func Build(verseRows, noteRows [][]string) *Result {
	store, verseStats := scripture.BuildStore(verseRows)
	logging.ParseSummary("verses", verseStats.Loaded, verseStats.Skipped)

	builder := notes.NewBuilder(store)
	builder.TagThemes = themes.TagText
	noteTable, noteStats := builder.Build(noteRows)
	logging.ParseSummary("notes", noteStats.Loaded, noteStats.Discarded)

	crossRefs := notes.ExtractCrossReferences(noteTable)
	index := themes.BuildIndex(noteTable, store)
	planTable := plans.Generate(index, store)

	result := &Result{
		Verses:    store,
		Notes:     noteTable,
		CrossRefs: crossRefs,
		Themes:    index,
		Plans:     planTable,
		Stats: Stats{
			VersesLoaded:   verseStats.Loaded,
			VersesSkipped:  verseStats.Skipped,
			NotesLoaded:    noteStats.Loaded,
			NotesDiscarded: noteStats.Discarded,
			CrossRefs:      len(crossRefs),
			Themes:         len(index),
			Plans:          len(planTable),
		},
		BuiltAt: time.Now(),
	}

	logging.Info("pipeline_complete",
		"verses", result.Stats.VersesLoaded,
		"notes", result.Stats.NotesLoaded,
		"cross_references", result.Stats.CrossRefs,
		"themes", result.Stats.Themes,
		"reading_plans", result.Stats.Plans,
	)
	return result
}

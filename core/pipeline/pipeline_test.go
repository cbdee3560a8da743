package pipeline

import (
	"reflect"
	"testing"
)

func TestBuild_EndToEnd(t *testing.T) {
	verseRows := [][]string{
		{"GEN", "1", "1", "In the beginning God created the heaven and the earth."},
	}
	noteRows := [][]string{
		{"Genesis 1:1", "The first creative act of divine grace. See John 1:1-3", "Creation"},
	}

	r := Build(verseRows, noteRows)

	if r.Stats.VersesLoaded != 1 || r.Stats.VersesSkipped != 0 {
		t.Errorf("verse stats = %+v", r.Stats)
	}
	if r.Stats.NotesLoaded != 1 || r.Stats.NotesDiscarded != 0 {
		t.Errorf("note stats = %+v", r.Stats)
	}

	note := r.Notes["N0001"]
	if note == nil {
		t.Fatal("note N0001 missing")
	}
	if !reflect.DeepEqual(note.LinkedVerses, []string{"GEN.1.1"}) {
		t.Errorf("LinkedVerses = %v, want [GEN.1.1]", note.LinkedVerses)
	}

	verse := r.Verses.Get("GEN.1.1")
	if verse == nil {
		t.Fatal("verse GEN.1.1 missing")
	}
	if !reflect.DeepEqual(verse.NoteIDs, []string{"N0001"}) {
		t.Errorf("verse NoteIDs = %v, want [N0001]", verse.NoteIDs)
	}

	if r.Stats.CrossRefs != 3 {
		t.Fatalf("CrossRefs = %d, want 3 (John 1:1-3 expanded)", r.Stats.CrossRefs)
	}
	wantTargets := []string{"JOH.1.1", "JOH.1.2", "JOH.1.3"}
	for i, edge := range r.CrossRefs {
		if edge.SourceID != "N0001" || edge.TargetID != wantTargets[i] {
			t.Errorf("edge %d = %+v", i, edge)
		}
		if edge.RefType != "explanation" || edge.Confidence != 0.8 {
			t.Errorf("edge %d type/confidence = %q/%v", i, edge.RefType, edge.Confidence)
		}
	}

	// "grace" in the note text materializes the Grace theme
	if r.Stats.Themes == 0 {
		t.Error("no themes materialized")
	}
	foundGrace := false
	for _, theme := range r.Themes {
		if theme.Name == "Grace" {
			foundGrace = true
			if !reflect.DeepEqual(theme.NoteIDs, []string{"N0001"}) {
				t.Errorf("Grace NoteIDs = %v", theme.NoteIDs)
			}
		}
	}
	if !foundGrace {
		t.Error("Grace theme missing")
	}

	// Tiny corpus: nothing crosses the reading-plan threshold
	if r.Stats.Plans != 0 {
		t.Errorf("Plans = %d, want 0", r.Stats.Plans)
	}

	if r.BuiltAt.IsZero() {
		t.Error("BuiltAt not set")
	}
}

func TestBuild_SkipsAndCounts(t *testing.T) {
	verseRows := [][]string{
		{"GEN", "1", "1", "Good verse."},
		{"XYZ", "1", "1", "Unknown book."},
	}
	noteRows := [][]string{
		{"Genesis 1:1", "Good note.", "Misc"},
		{"Nowhere 0:0", "Orphan note.", "Misc"},
	}

	r := Build(verseRows, noteRows)
	want := Stats{VersesLoaded: 1, VersesSkipped: 1, NotesLoaded: 1, NotesDiscarded: 1}
	if r.Stats.VersesLoaded != want.VersesLoaded ||
		r.Stats.VersesSkipped != want.VersesSkipped ||
		r.Stats.NotesLoaded != want.NotesLoaded ||
		r.Stats.NotesDiscarded != want.NotesDiscarded {
		t.Errorf("stats = %+v, want %+v", r.Stats, want)
	}
}

func TestBuild_EmptyInputs(t *testing.T) {
	r := Build(nil, nil)
	if r.Verses.Len() != 0 || len(r.Notes) != 0 || len(r.CrossRefs) != 0 {
		t.Errorf("empty build produced entities: %+v", r.Stats)
	}
}

func TestAnalyze(t *testing.T) {
	verseRows := [][]string{
		{"GEN", "1", "1", "In the beginning God created the heaven and the earth."},
		{"ROM", "5", "1", "Therefore being justified by faith, we have peace with God."},
	}
	noteRows := [][]string{
		{"Genesis 1:1", "Creation is the ground of grace.", "Doctrine"},
		{"Romans 5:1", "Justification brings peace.", "Doctrine"},
		{"Romans 5:1", "A second note on the same verse.", "Exposition"},
	}

	r := Build(verseRows, noteRows)
	a := Analyze(r)

	if a.Summary.TotalVerses != 2 || a.Summary.TotalNotes != 3 {
		t.Errorf("summary = %+v", a.Summary)
	}
	if a.NoteStatistics.MostCommonCategory != "Doctrine" {
		t.Errorf("MostCommonCategory = %q, want Doctrine", a.NoteStatistics.MostCommonCategory)
	}
	if a.NoteStatistics.AverageVersesPerNote != 1.0 {
		t.Errorf("AverageVersesPerNote = %v, want 1.0", a.NoteStatistics.AverageVersesPerNote)
	}
	if a.ThemeStatistics.MostReferencedTheme == "None" && a.Summary.TotalThemes > 0 {
		t.Error("MostReferencedTheme not computed")
	}
	if len(a.ThemeStatistics.TopThemesByNotes) > 5 {
		t.Errorf("TopThemesByNotes has %d entries, want at most 5", len(a.ThemeStatistics.TopThemesByNotes))
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(Build(nil, nil))
	if a.NoteStatistics.MostCommonCategory != "None" {
		t.Errorf("MostCommonCategory = %q, want None", a.NoteStatistics.MostCommonCategory)
	}
	if a.ThemeStatistics.MostReferencedTheme != "None" {
		t.Errorf("MostReferencedTheme = %q, want None", a.ThemeStatistics.MostReferencedTheme)
	}
}

package plans

import (
	"fmt"
	"testing"

	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
	"github.com/FocuswithJustin/ScofieldStudy/core/themes"
)

// fixture builds a store with n GEN verses and m JOH verses and a
// materialized theme covering all of them.
func fixture(t *testing.T, genCount, johCount int) (map[string]*themes.Theme, *scripture.Store) {
	t.Helper()
	var rows [][]string
	for i := 1; i <= genCount; i++ {
		rows = append(rows, []string{"GEN", "1", fmt.Sprint(i), "Genesis verse text."})
	}
	for i := 1; i <= johCount; i++ {
		rows = append(rows, []string{"JOH", "1", fmt.Sprint(i), "John verse text."})
	}
	store, _ := scripture.BuildStore(rows)

	theme := &themes.Theme{
		ID:       "T001",
		Name:     "Salvation",
		NoteIDs:  []string{"N0001"},
		VerseIDs: store.IDs(),
	}
	return map[string]*themes.Theme{"T001": theme}, store
}

func TestGenerate(t *testing.T) {
	index, store := fixture(t, 15, 8)
	plans := Generate(index, store)

	plan := plans["P001"]
	if plan == nil {
		t.Fatalf("no plan generated: %v", plans)
	}
	if plan.Theme != "Salvation" {
		t.Errorf("Theme = %q, want Salvation", plan.Theme)
	}
	if plan.Name != "Scofield Study: Salvation" {
		t.Errorf("Name = %q", plan.Name)
	}

	// 15 GEN + 8 JOH = 23 verses, no book over the 20 cap
	if got := plan.TotalVerses(); got != 23 {
		t.Errorf("TotalVerses = %d, want 23", got)
	}
	// Days of 10, partial final day carried: 10 + 10 + 3
	if plan.DayCount() != 3 {
		t.Fatalf("DayCount = %d, want 3", plan.DayCount())
	}
	for i, day := range plan.Days {
		if len(day) > 10 {
			t.Errorf("day %d has %d verses, want at most 10", i+1, len(day))
		}
	}
	if len(plan.Days[2]) != 3 {
		t.Errorf("final day has %d verses, want 3", len(plan.Days[2]))
	}

	if plan.EstimatedMinutes != 3*15 {
		t.Errorf("EstimatedMinutes = %d, want 45", plan.EstimatedMinutes)
	}
}

func TestGenerate_BookCap(t *testing.T) {
	index, store := fixture(t, 30, 0)
	plans := Generate(index, store)

	plan := plans["P001"]
	if plan == nil {
		t.Fatal("no plan generated")
	}
	// 30 GEN verses capped to 20
	if got := plan.TotalVerses(); got != 20 {
		t.Errorf("TotalVerses = %d, want 20 after book cap", got)
	}
	if plan.DayCount() != 2 {
		t.Errorf("DayCount = %d, want 2", plan.DayCount())
	}
}

func TestGenerate_Threshold(t *testing.T) {
	// 1 note + 9 verses = 10 total references: at the threshold, no plan.
	index, store := fixture(t, 9, 0)
	if plans := Generate(index, store); len(plans) != 0 {
		t.Errorf("got %d plans, want 0 at threshold", len(plans))
	}

	// 1 note + 10 verses = 11: qualifies.
	index, store = fixture(t, 10, 0)
	if plans := Generate(index, store); len(plans) != 1 {
		t.Errorf("got %d plans, want 1 above threshold", len(plans))
	}
}

func TestGenerate_NonMajorThemeSkipped(t *testing.T) {
	index, store := fixture(t, 15, 0)
	index["T001"].Name = "Creation"
	if plans := Generate(index, store); len(plans) != 0 {
		t.Errorf("got %d plans, want 0 for non-major theme", len(plans))
	}
}

func TestGenerate_MissingVersesDropped(t *testing.T) {
	index, store := fixture(t, 12, 0)
	theme := index["T001"]
	theme.VerseIDs = append(theme.VerseIDs, "REV.22.21") // not in store
	plans := Generate(index, store)
	plan := plans["P001"]
	if plan == nil {
		t.Fatal("no plan generated")
	}
	if got := plan.TotalVerses(); got != 12 {
		t.Errorf("TotalVerses = %d, want 12 (missing verse dropped)", got)
	}
}

package notes

import (
	"testing"

	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
)

func TestExtractCrossReferences(t *testing.T) {
	store, _ := scripture.BuildStore([][]string{
		{"GEN", "1", "1", "In the beginning God created the heaven and the earth."},
	})
	b := NewBuilder(store)
	all, _ := b.Build([][]string{
		{"Genesis 1:1", "The first creative act of God. See John 1:1-3", "Creation"},
	})

	edges := ExtractCrossReferences(all)
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(edges))
	}

	wantTargets := []string{"JOH.1.1", "JOH.1.2", "JOH.1.3"}
	for i, edge := range edges {
		if edge.SourceID != "N0001" {
			t.Errorf("edge %d SourceID = %q, want N0001", i, edge.SourceID)
		}
		if edge.TargetID != wantTargets[i] {
			t.Errorf("edge %d TargetID = %q, want %q", i, edge.TargetID, wantTargets[i])
		}
		if edge.RefType != RefTypeExplanation {
			t.Errorf("edge %d RefType = %q, want explanation", i, edge.RefType)
		}
		if edge.Confidence != 0.8 {
			t.Errorf("edge %d Confidence = %v, want exactly 0.8", i, edge.Confidence)
		}
		if !edge.IsNoteToVerse() {
			t.Errorf("edge %d IsNoteToVerse() = false", i)
		}
		if edge.IsVerseToVerse() {
			t.Errorf("edge %d IsVerseToVerse() = true", i)
		}
	}
}

func TestExtractCrossReferences_NoCues(t *testing.T) {
	store, _ := scripture.BuildStore([][]string{
		{"GEN", "1", "1", "In the beginning."},
	})
	b := NewBuilder(store)
	all, _ := b.Build([][]string{
		{"Genesis 1:1", "John 1:1 is related but not cued.", "Creation"},
	})

	if edges := ExtractCrossReferences(all); len(edges) != 0 {
		t.Errorf("got %d edges, want 0 for uncued citations", len(edges))
	}
}

func TestExtractCrossReferences_Deterministic(t *testing.T) {
	store, _ := scripture.BuildStore([][]string{
		{"GEN", "1", "1", "In the beginning."},
		{"GEN", "1", "2", "Without form and void."},
	})
	b := NewBuilder(store)
	all, _ := b.Build([][]string{
		{"Genesis 1:1", "See Romans 5:12", "Doctrine"},
		{"Genesis 1:2", "cf. Hebrews 11:3", "Doctrine"},
	})

	edges := ExtractCrossReferences(all)
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0].SourceID != "N0001" || edges[1].SourceID != "N0002" {
		t.Errorf("edges not in note-id order: %v", edges)
	}
	if edges[0].TargetID != "ROM.5.12" || edges[1].TargetID != "HEB.11.3" {
		t.Errorf("unexpected targets: %q, %q", edges[0].TargetID, edges[1].TargetID)
	}
}

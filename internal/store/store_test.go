package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
)

func buildResult(t *testing.T) *pipeline.Result {
	t.Helper()
	verseRows := [][]string{
		{"GEN", "1", "1", "In the beginning God created the heaven and the earth."},
		{"JOH", "1", "1", "In the beginning was the Word."},
	}
	noteRows := [][]string{
		{"Genesis 1:1", "The first creative act of divine grace. See John 1:1", "Creation"},
	}
	return pipeline.Build(verseRows, noteRows)
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scofield.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveResult(t *testing.T) {
	s := openStore(t)
	r := buildResult(t)

	ctx := context.Background()
	if err := s.SaveResult(ctx, r); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	counts, err := s.CountRows(ctx)
	if err != nil {
		t.Fatalf("CountRows: %v", err)
	}
	if counts.Verses != 2 {
		t.Errorf("Verses = %d, want 2", counts.Verses)
	}
	if counts.Notes != 1 {
		t.Errorf("Notes = %d, want 1", counts.Notes)
	}
	if counts.CrossRefs != len(r.CrossRefs) {
		t.Errorf("CrossRefs = %d, want %d", counts.CrossRefs, len(r.CrossRefs))
	}
	if counts.Themes != len(r.Themes) {
		t.Errorf("Themes = %d, want %d", counts.Themes, len(r.Themes))
	}
}

func TestSaveResult_VerseColumns(t *testing.T) {
	s := openStore(t)
	r := buildResult(t)
	ctx := context.Background()
	if err := s.SaveResult(ctx, r); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	var book string
	var bookOrder, chapter, verse int
	var text, keywords string
	err := s.DB().QueryRowContext(ctx, `
		SELECT book, book_order, chapter, verse, text, keywords
		FROM verses WHERE verse_id = ?`, "GEN.1.1").
		Scan(&book, &bookOrder, &chapter, &verse, &text, &keywords)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if book != "GEN" || bookOrder != 1 || chapter != 1 || verse != 1 {
		t.Errorf("row = %s/%d/%d/%d", book, bookOrder, chapter, verse)
	}
	if text == "" {
		t.Error("text empty")
	}
}

func TestSaveResult_NoteVerseLinks(t *testing.T) {
	s := openStore(t)
	r := buildResult(t)
	ctx := context.Background()
	if err := s.SaveResult(ctx, r); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	var n int
	err := s.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM note_verse_links WHERE note_id = ? AND verse_id = ?`,
		"N0001", "GEN.1.1").Scan(&n)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 1 {
		t.Errorf("link count = %d, want 1", n)
	}
}

func TestSaveResult_Idempotent(t *testing.T) {
	s := openStore(t)
	r := buildResult(t)
	ctx := context.Background()
	if err := s.SaveResult(ctx, r); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveResult(ctx, r); err != nil {
		t.Fatalf("second save: %v", err)
	}

	counts, err := s.CountRows(ctx)
	if err != nil {
		t.Fatalf("CountRows: %v", err)
	}
	// Entity tables use INSERT OR REPLACE; cross_references appends.
	if counts.Verses != 2 || counts.Notes != 1 {
		t.Errorf("counts after double save = %+v", counts)
	}
	if counts.CrossRefs != 2*len(r.CrossRefs) {
		t.Errorf("CrossRefs = %d, want %d", counts.CrossRefs, 2*len(r.CrossRefs))
	}
}

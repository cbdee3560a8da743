// Package store persists pipeline results to a SQLite database. The schema
// keeps verses, notes, cross-references, themes, and reading plans in
// normalized tables with link tables for the many-to-many edges.
package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FocuswithJustin/ScofieldStudy/core/books"
	"github.com/FocuswithJustin/ScofieldStudy/core/errors"
	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
	"github.com/FocuswithJustin/ScofieldStudy/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS verses (
    verse_id TEXT PRIMARY KEY,
    book TEXT NOT NULL,
    book_order INTEGER NOT NULL,
    chapter INTEGER NOT NULL,
    verse INTEGER NOT NULL,
    text TEXT NOT NULL,
    keywords TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notes (
    note_id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    note_type TEXT,
    category TEXT,
    subcategory TEXT,
    keywords TEXT,
    theme_tags TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS note_verse_links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    note_id TEXT NOT NULL,
    verse_id TEXT NOT NULL,
    FOREIGN KEY (note_id) REFERENCES notes (note_id),
    FOREIGN KEY (verse_id) REFERENCES verses (verse_id),
    UNIQUE(note_id, verse_id)
);

CREATE TABLE IF NOT EXISTS cross_references (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_id TEXT NOT NULL,
    target_id TEXT NOT NULL,
    ref_type TEXT NOT NULL,
    description TEXT,
    confidence REAL DEFAULT 1.0,
    tags TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS themes (
    theme_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    categories TEXT,
    confidence_score REAL DEFAULT 0.0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS theme_verse_links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    theme_id TEXT NOT NULL,
    verse_id TEXT NOT NULL,
    FOREIGN KEY (theme_id) REFERENCES themes (theme_id),
    FOREIGN KEY (verse_id) REFERENCES verses (verse_id),
    UNIQUE(theme_id, verse_id)
);

CREATE TABLE IF NOT EXISTS theme_note_links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    theme_id TEXT NOT NULL,
    note_id TEXT NOT NULL,
    FOREIGN KEY (theme_id) REFERENCES themes (theme_id),
    FOREIGN KEY (note_id) REFERENCES notes (note_id),
    UNIQUE(theme_id, note_id)
);

CREATE TABLE IF NOT EXISTS reading_plans (
    plan_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    theme TEXT,
    estimated_minutes INTEGER,
    tags TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reading_plan_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plan_id TEXT NOT NULL,
    day_number INTEGER NOT NULL,
    verse_ids TEXT NOT NULL,
    FOREIGN KEY (plan_id) REFERENCES reading_plans (plan_id)
);

CREATE INDEX IF NOT EXISTS idx_verses_book ON verses(book);
CREATE INDEX IF NOT EXISTS idx_verses_ref ON verses(book, chapter, verse);
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category);
CREATE INDEX IF NOT EXISTS idx_cross_refs_source ON cross_references(source_id);
CREATE INDEX IF NOT EXISTS idx_cross_refs_target ON cross_references(target_id);
CREATE INDEX IF NOT EXISTS idx_theme_verse ON theme_verse_links(theme_id, verse_id);
CREATE INDEX IF NOT EXISTS idx_theme_note ON theme_note_links(theme_id, note_id);
`

// Store wraps a SQLite database holding pipeline output.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a store at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "applying schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for read-side queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SaveResult writes a full pipeline result in one transaction.
func (s *Store) SaveResult(ctx context.Context, r *pipeline.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if err := saveVerses(ctx, tx, r); err != nil {
		return err
	}
	if err := saveNotes(ctx, tx, r); err != nil {
		return err
	}
	if err := saveCrossRefs(ctx, tx, r); err != nil {
		return err
	}
	if err := saveThemes(ctx, tx, r); err != nil {
		return err
	}
	if err := savePlans(ctx, tx, r); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "committing")
}

func saveVerses(ctx context.Context, tx *sql.Tx, r *pipeline.Result) error {
	verseStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO verses (verse_id, book, book_order, chapter, verse, text, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing verse insert")
	}
	defer verseStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO note_verse_links (note_id, verse_id) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing note-verse link insert")
	}
	defer linkStmt.Close()

	for _, id := range r.Verses.SortedIDs() {
		v := r.Verses.Get(id)
		_, err := verseStmt.ExecContext(ctx,
			v.ID(), v.Book, books.Order(v.Book), v.Chapter, v.Number, v.Text,
			strings.Join(v.Keywords, ","))
		if err != nil {
			return errors.Wrapf(err, "inserting verse %s", v.ID())
		}
		for _, noteID := range v.NoteIDs {
			if _, err := linkStmt.ExecContext(ctx, noteID, v.ID()); err != nil {
				return errors.Wrapf(err, "linking note %s to verse %s", noteID, v.ID())
			}
		}
	}
	return nil
}

func saveNotes(ctx context.Context, tx *sql.Tx, r *pipeline.Result) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO notes (note_id, text, note_type, category, subcategory, keywords, theme_tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing note insert")
	}
	defer stmt.Close()

	for _, id := range sortedNoteIDs(r) {
		n := r.Notes[id]
		_, err := stmt.ExecContext(ctx,
			n.ID, n.Text, string(n.Type), n.Category, n.Subcategory,
			strings.Join(n.Keywords, ","), strings.Join(n.ThemeTags, ","))
		if err != nil {
			return errors.Wrapf(err, "inserting note %s", n.ID)
		}
	}
	return nil
}

func saveCrossRefs(ctx context.Context, tx *sql.Tx, r *pipeline.Result) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cross_references (source_id, target_id, ref_type, description, confidence, tags)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing cross-reference insert")
	}
	defer stmt.Close()

	for _, cr := range r.CrossRefs {
		_, err := stmt.ExecContext(ctx,
			cr.SourceID, cr.TargetID, cr.RefType, cr.Description, cr.Confidence,
			strings.Join(cr.Tags, ","))
		if err != nil {
			return errors.Wrapf(err, "inserting cross-reference %s -> %s", cr.SourceID, cr.TargetID)
		}
	}
	return nil
}

func saveThemes(ctx context.Context, tx *sql.Tx, r *pipeline.Result) error {
	themeStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO themes (theme_id, name, description, categories, confidence_score)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing theme insert")
	}
	defer themeStmt.Close()

	verseLink, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO theme_verse_links (theme_id, verse_id) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing theme-verse link insert")
	}
	defer verseLink.Close()

	noteLink, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO theme_note_links (theme_id, note_id) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing theme-note link insert")
	}
	defer noteLink.Close()

	for _, id := range sortedThemeIDs(r) {
		t := r.Themes[id]
		_, err := themeStmt.ExecContext(ctx,
			t.ID, t.Name, t.Description, strings.Join(t.Categories, ","), t.Confidence)
		if err != nil {
			return errors.Wrapf(err, "inserting theme %s", t.ID)
		}
		for _, verseID := range t.VerseIDs {
			if _, err := verseLink.ExecContext(ctx, t.ID, verseID); err != nil {
				return errors.Wrapf(err, "linking theme %s to verse %s", t.ID, verseID)
			}
		}
		for _, noteID := range t.NoteIDs {
			if _, err := noteLink.ExecContext(ctx, t.ID, noteID); err != nil {
				return errors.Wrapf(err, "linking theme %s to note %s", t.ID, noteID)
			}
		}
	}
	return nil
}

func savePlans(ctx context.Context, tx *sql.Tx, r *pipeline.Result) error {
	planStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO reading_plans (plan_id, name, description, theme, estimated_minutes, tags)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing plan insert")
	}
	defer planStmt.Close()

	dayStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reading_plan_days (plan_id, day_number, verse_ids) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing plan day insert")
	}
	defer dayStmt.Close()

	for _, id := range sortedPlanIDs(r) {
		p := r.Plans[id]
		_, err := planStmt.ExecContext(ctx,
			p.ID, p.Name, p.Description, p.Theme, p.EstimatedMinutes,
			strings.Join(p.Tags, ","))
		if err != nil {
			return errors.Wrapf(err, "inserting plan %s", p.ID)
		}
		for i, day := range p.Days {
			if _, err := dayStmt.ExecContext(ctx, p.ID, i+1, strings.Join(day, ",")); err != nil {
				return errors.Wrapf(err, "inserting plan %s day %d", p.ID, i+1)
			}
		}
	}
	return nil
}

// Counts summarizes row counts across the main tables.
type Counts struct {
	Verses    int `json:"verses"`
	Notes     int `json:"notes"`
	CrossRefs int `json:"cross_references"`
	Themes    int `json:"themes"`
	Plans     int `json:"reading_plans"`
}

// CountRows returns row counts for the main tables.
func (s *Store) CountRows(ctx context.Context) (Counts, error) {
	var c Counts
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM verses),
			(SELECT COUNT(*) FROM notes),
			(SELECT COUNT(*) FROM cross_references),
			(SELECT COUNT(*) FROM themes),
			(SELECT COUNT(*) FROM reading_plans)`)
	if err := row.Scan(&c.Verses, &c.Notes, &c.CrossRefs, &c.Themes, &c.Plans); err != nil {
		return Counts{}, errors.Wrap(err, "counting rows")
	}
	return c, nil
}

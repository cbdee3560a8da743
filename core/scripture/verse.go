// Package scripture builds the verse store from tabular Bible text input.
package scripture

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ScofieldStudy/core/books"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
)

// Verse is a single Bible verse with its derived keywords and the ids of
// notes that link to it.
type Verse struct {
	// Book is the registry abbreviation (e.g., "GEN").
	Book string `json:"book"`

	// Chapter and Number identify the verse within the book.
	Chapter int `json:"chapter"`
	Number  int `json:"verse"`

	// Text is the verse text.
	Text string `json:"text"`

	// Keywords are doctrine and devotional terms found in the text.
	Keywords []string `json:"keywords,omitempty"`

	// NoteIDs are back-references to notes linked to this verse, appended
	// during note building.
	NoteIDs []string `json:"note_ids,omitempty"`
}

// ID returns the canonical verse id "BOOK.CHAPTER.VERSE".
func (v *Verse) ID() string {
	return fmt.Sprintf("%s.%d.%d", v.Book, v.Chapter, v.Number)
}

// Reference returns the short human-readable reference (e.g., "GEN 1:1").
func (v *Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Number)
}

// FullReference returns the reference with the full book name
// (e.g., "Genesis 1:1").
func (v *Verse) FullReference() string {
	return fmt.Sprintf("%s %d:%d", books.FullName(v.Book), v.Chapter, v.Number)
}

// Store holds all verses of a run keyed by canonical id, remembering
// insertion order for deterministic iteration.
type Store struct {
	verses map[string]*Verse
	order  []string
}

// NewStore creates an empty verse store.
func NewStore() *Store {
	return &Store{verses: make(map[string]*Verse)}
}

// Get returns the verse for the id, or nil if absent.
func (s *Store) Get(id string) *Verse {
	return s.verses[id]
}

// Has reports whether the store contains the id.
func (s *Store) Has(id string) bool {
	_, ok := s.verses[id]
	return ok
}

// Len returns the number of verses in the store.
func (s *Store) Len() int {
	return len(s.verses)
}

// Add inserts a verse, replacing any verse with the same id.
func (s *Store) Add(v *Verse) {
	id := v.ID()
	if _, exists := s.verses[id]; !exists {
		s.order = append(s.order, id)
	}
	s.verses[id] = v
}

// IDs returns verse ids in insertion order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SortedIDs returns verse ids in canonical order: book canonical order,
// then chapter, then verse.
func (s *Store) SortedIDs() []string {
	ids := s.IDs()
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.verses[ids[i]], s.verses[ids[j]]
		if oa, ob := books.Order(a.Book), books.Order(b.Book); oa != ob {
			return oa < ob
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.Number < b.Number
	})
	return ids
}

// BuildStats counts build outcomes. Unparseable rows are skipped and
// counted, never fatal.
type BuildStats struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// minVerseColumns is the minimum column count for a verse row:
// book, chapter, verse, text.
const minVerseColumns = 4

// BuildStore parses rows of (book, chapter, verse, text...) into a verse
// store. Rows with an unknown book, a non-integer chapter or verse, or too
// few columns are skipped and counted. Extra trailing columns are rejoined
// into the text, since verse text may itself contain delimiter characters.
func BuildStore(rows [][]string) (*Store, BuildStats) {
	store := NewStore()
	var stats BuildStats

	for i, row := range rows {
		if len(row) < minVerseColumns {
			logging.RowSkipped("verses", i+1, "too few columns")
			stats.Skipped++
			continue
		}

		book := strings.ToUpper(strings.TrimSpace(row[0]))
		if !books.IsValid(book) {
			logging.RowSkipped("verses", i+1, "unknown book "+row[0])
			stats.Skipped++
			continue
		}

		chapter, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			logging.RowSkipped("verses", i+1, "bad chapter "+row[1])
			stats.Skipped++
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			logging.RowSkipped("verses", i+1, "bad verse "+row[2])
			stats.Skipped++
			continue
		}

		text := strings.TrimSpace(strings.Join(row[3:], " "))

		store.Add(&Verse{
			Book:     book,
			Chapter:  chapter,
			Number:   number,
			Text:     text,
			Keywords: ExtractKeywords(text),
		})
		stats.Loaded++
	}

	return store, stats
}

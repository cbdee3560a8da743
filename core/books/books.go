// Package books provides the canonical Bible book registry: abbreviation,
// full name, canonical order, and chapter count for all 66 books.
package books

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Book describes a single Bible book.
type Book struct {
	// Abbrev is the three/four-letter registry abbreviation (e.g., "GEN", "1SA").
	Abbrev string `json:"abbrev"`

	// Name is the full English book name (e.g., "Genesis", "1 Samuel").
	Name string `json:"name"`

	// Order is the canonical position, 1-indexed (Genesis = 1, Revelation = 66).
	Order int `json:"order"`

	// Chapters is the number of chapters in the book.
	Chapters int `json:"chapters"`
}

// canon lists all 66 books in canonical order. Registry lookups that scan the
// table iterate this slice, so resolution tie-breaks follow canonical order.
var canon = []Book{
	{"GEN", "Genesis", 1, 50},
	{"EXO", "Exodus", 2, 40},
	{"LEV", "Leviticus", 3, 27},
	{"NUM", "Numbers", 4, 36},
	{"DEU", "Deuteronomy", 5, 34},
	{"JOS", "Joshua", 6, 24},
	{"JDG", "Judges", 7, 21},
	{"RUT", "Ruth", 8, 4},
	{"1SA", "1 Samuel", 9, 31},
	{"2SA", "2 Samuel", 10, 24},
	{"1KI", "1 Kings", 11, 22},
	{"2KI", "2 Kings", 12, 25},
	{"1CH", "1 Chronicles", 13, 29},
	{"2CH", "2 Chronicles", 14, 36},
	{"EZR", "Ezra", 15, 10},
	{"NEH", "Nehemiah", 16, 13},
	{"EST", "Esther", 17, 10},
	{"JOB", "Job", 18, 42},
	{"PSA", "Psalms", 19, 150},
	{"PRO", "Proverbs", 20, 31},
	{"ECC", "Ecclesiastes", 21, 12},
	{"SON", "Song of Solomon", 22, 8},
	{"ISA", "Isaiah", 23, 66},
	{"JER", "Jeremiah", 24, 52},
	{"LAM", "Lamentations", 25, 5},
	{"EZE", "Ezekiel", 26, 48},
	{"DAN", "Daniel", 27, 12},
	{"HOS", "Hosea", 28, 14},
	{"JOE", "Joel", 29, 3},
	{"AMO", "Amos", 30, 9},
	{"OBA", "Obadiah", 31, 1},
	{"JON", "Jonah", 32, 4},
	{"MIC", "Micah", 33, 7},
	{"NAH", "Nahum", 34, 3},
	{"HAB", "Habakkuk", 35, 3},
	{"ZEP", "Zephaniah", 36, 3},
	{"HAG", "Haggai", 37, 2},
	{"ZEC", "Zechariah", 38, 14},
	{"MAL", "Malachi", 39, 4},
	{"MAT", "Matthew", 40, 28},
	{"MAR", "Mark", 41, 16},
	{"LUK", "Luke", 42, 24},
	{"JOH", "John", 43, 21},
	{"ACT", "Acts", 44, 28},
	{"ROM", "Romans", 45, 16},
	{"1CO", "1 Corinthians", 46, 16},
	{"2CO", "2 Corinthians", 47, 13},
	{"GAL", "Galatians", 48, 6},
	{"EPH", "Ephesians", 49, 6},
	{"PHI", "Philippians", 50, 4},
	{"COL", "Colossians", 51, 4},
	{"1TH", "1 Thessalonians", 52, 5},
	{"2TH", "2 Thessalonians", 53, 3},
	{"1TI", "1 Timothy", 54, 6},
	{"2TI", "2 Timothy", 55, 4},
	{"TIT", "Titus", 56, 3},
	{"PHM", "Philemon", 57, 1},
	{"HEB", "Hebrews", 58, 13},
	{"JAM", "James", 59, 5},
	{"1PE", "1 Peter", 60, 5},
	{"2PE", "2 Peter", 61, 3},
	{"1JO", "1 John", 62, 5},
	{"2JO", "2 John", 63, 1},
	{"3JO", "3 John", 64, 1},
	{"JUD", "Jude", 65, 1},
	{"REV", "Revelation", 66, 22},
}

// byAbbrev indexes canon by abbreviation for O(1) lookup.
var byAbbrev = func() map[string]*Book {
	m := make(map[string]*Book, len(canon))
	for i := range canon {
		m[canon[i].Abbrev] = &canon[i]
	}
	return m
}()

// variants maps known historical and alternate names (title-cased) to
// abbreviations. Checked before the standard full-name scan.
var variants = map[string]string{
	"Psalms":          "PSA",
	"Psalm":           "PSA",
	"Song Of Solomon": "SON",
	"Song Of Songs":   "SON",
	"Ecclesiastes":    "ECC",
	"Revelation":      "REV",
	"Revelations":     "REV",
}

var titleCaser = cases.Title(language.English)

// All returns the books in canonical order.
func All() []Book {
	out := make([]Book, len(canon))
	copy(out, canon)
	return out
}

// IsValid reports whether abbrev is a known registry abbreviation.
func IsValid(abbrev string) bool {
	_, ok := byAbbrev[abbrev]
	return ok
}

// FullName returns the full name for a registry abbreviation.
// Unknown abbreviations are returned unchanged so display code degrades
// gracefully.
func FullName(abbrev string) string {
	if b, ok := byAbbrev[abbrev]; ok {
		return b.Name
	}
	return abbrev
}

// ChapterCount returns the number of chapters in the book, or 0 if the
// abbreviation is unknown.
func ChapterCount(abbrev string) int {
	if b, ok := byAbbrev[abbrev]; ok {
		return b.Chapters
	}
	return 0
}

// Order returns the canonical position of the book (1-66), or 0 if the
// abbreviation is unknown. Useful as a sort key.
func Order(abbrev string) int {
	if b, ok := byAbbrev[abbrev]; ok {
		return b.Order
	}
	return 0
}

// Resolve converts a free-text book name to its registry abbreviation.
// Resolution is case-insensitive and proceeds in three stages: known
// variants, exact full-name match, then substring containment as a last
// resort ("Gen" resolves to GEN because "gen" occurs in "genesis"). The
// canonical order is the tie-break for the scanning stages. Returns
// ("", false) for names that resolve to nothing; callers are expected to
// drop the citation rather than fail.
func Resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	if abbrev, ok := variants[titleCaser.String(name)]; ok {
		return abbrev, true
	}

	lower := strings.ToLower(name)
	for i := range canon {
		if strings.ToLower(canon[i].Name) == lower {
			return canon[i].Abbrev, true
		}
	}

	for i := range canon {
		if strings.Contains(strings.ToLower(canon[i].Name), lower) {
			return canon[i].Abbrev, true
		}
	}

	return "", false
}

// Package ref parses free-text scripture citations ("Gen 1:1",
// "Romans 5:12-14") into canonical verse identifiers of the form
// "BOOK.CHAPTER.VERSE".
package ref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/ScofieldStudy/core/books"
)

// Citation is a single resolved citation, possibly spanning a verse range.
type Citation struct {
	// Book is the registry abbreviation (e.g., "GEN", "1SA").
	Book string `json:"book"`

	// Chapter is the chapter number.
	Chapter int `json:"chapter"`

	// Verse is the first (or only) verse.
	Verse int `json:"verse"`

	// VerseEnd is the last verse of a range, 0 for single-verse citations.
	VerseEnd int `json:"verse_end,omitempty"`
}

// IsRange reports whether the citation spans multiple verses.
func (c Citation) IsRange() bool {
	return c.VerseEnd > c.Verse
}

// VerseIDs expands the citation into one canonical verse id per verse.
func (c Citation) VerseIDs() []string {
	end := c.VerseEnd
	if end < c.Verse {
		end = c.Verse
	}
	ids := make([]string, 0, end-c.Verse+1)
	for v := c.Verse; v <= end; v++ {
		ids = append(ids, fmt.Sprintf("%s.%d.%d", c.Book, c.Chapter, v))
	}
	return ids
}

// fragmentGrammar is the participle grammar for one citation fragment.
// Examples: "Gen 1:1", "Genesis 1:1-3", "1 Cor. 10:13", "1John 3:16"
//
//nolint:govet // participle grammar tags are not standard struct tags
type fragmentGrammar struct {
	Ordinal  string `@Int?`
	BookName string `@Ident "."?`
	Chapter  int    `@Int`
	Colon    string `":"`
	Verse    int    `@Int`
	Range    *int   `( "-" @Int )?`
}

// fragmentLexer tokenizes citation fragments. The trailing Any rule keeps
// the lexer total so citations followed by prose still tokenize; the parser
// stops at the first token the grammar cannot consume.
var fragmentLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[.:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Any", Pattern: `.`},
})

var fragmentParser = participle.MustBuild[fragmentGrammar](
	participle.Lexer(fragmentLexer),
	participle.Elide("Whitespace"),
)

// fragmentSplit separates a reference string into candidate fragments.
var fragmentSplit = regexp.MustCompile(`[;,]+`)

// cuePattern finds citations introduced by a cue phrase ("See", "cf.",
// "compare", "v."/"verse"). Only cued citations count as secondary
// cross-references; the captured group is the citation itself.
var cuePattern = regexp.MustCompile(
	`(?i)(?:See|cf\.|compare|v\.?|verse)\s+([1-3]?\s?[A-Za-z][A-Za-z]+\.?\s+\d+:\d+(?:-\d+)?)`)

// ParseFragment parses a single citation fragment and resolves its book
// against the registry. Returns false for fragments that do not match the
// citation shape or whose book cannot be resolved.
func ParseFragment(s string) (Citation, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Citation{}, false
	}

	parsed, err := fragmentParser.ParseString("", s, participle.AllowTrailing(true))
	if err != nil {
		return Citation{}, false
	}

	// Leading ordinals beyond 3 are not book prefixes.
	name := parsed.BookName
	if parsed.Ordinal != "" {
		if len(parsed.Ordinal) > 1 || parsed.Ordinal < "1" || parsed.Ordinal > "3" {
			return Citation{}, false
		}
		name = parsed.Ordinal + " " + parsed.BookName
	}

	abbrev, ok := books.Resolve(name)
	if !ok {
		return Citation{}, false
	}

	c := Citation{
		Book:    abbrev,
		Chapter: parsed.Chapter,
		Verse:   parsed.Verse,
	}
	if parsed.Range != nil {
		c.VerseEnd = *parsed.Range
	}
	return c, true
}

// ParseReference parses a reference string containing zero or more citations
// separated by ";" or "," and returns the expanded verse ids in citation
// order. Fragments that do not parse, or whose book does not resolve, are
// silently skipped; a string with no resolvable fragments yields an empty
// list, which is a valid result rather than an error.
func ParseReference(s string) []string {
	var ids []string
	for _, part := range fragmentSplit.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if c, ok := ParseFragment(part); ok {
			ids = append(ids, c.VerseIDs()...)
		}
	}
	return ids
}

// ExtractCued scans free text for citations introduced by a cue phrase and
// returns the expanded verse ids of every citation that resolves. Ranges
// expand the same way as in ParseReference.
func ExtractCued(text string) []string {
	var ids []string
	for _, m := range cuePattern.FindAllStringSubmatch(text, -1) {
		if c, ok := ParseFragment(m[1]); ok {
			ids = append(ids, c.VerseIDs()...)
		}
	}
	return ids
}

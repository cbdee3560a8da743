package ref

import (
	"reflect"
	"testing"
)

func TestParseFragment(t *testing.T) {
	tests := []struct {
		input string
		want  Citation
		ok    bool
	}{
		{"Gen 1:1", Citation{Book: "GEN", Chapter: 1, Verse: 1}, true},
		{"Genesis 1:1", Citation{Book: "GEN", Chapter: 1, Verse: 1}, true},
		{"Gen. 1:1", Citation{Book: "GEN", Chapter: 1, Verse: 1}, true},
		{"gen 1:1", Citation{Book: "GEN", Chapter: 1, Verse: 1}, true},
		{"Genesis 1:1-3", Citation{Book: "GEN", Chapter: 1, Verse: 1, VerseEnd: 3}, true},
		{"Romans 5:12-14", Citation{Book: "ROM", Chapter: 5, Verse: 12, VerseEnd: 14}, true},
		{"1 Cor. 10:13", Citation{Book: "1CO", Chapter: 10, Verse: 13}, true},
		{"1 John 3:16", Citation{Book: "1JO", Chapter: 3, Verse: 16}, true},
		{"Psalm 23:1", Citation{Book: "PSA", Chapter: 23, Verse: 1}, true},
		{"Revelations 22:21", Citation{Book: "REV", Chapter: 22, Verse: 21}, true},
		// Trailing prose after the citation is tolerated
		{"Gen 1:1 and what follows", Citation{Book: "GEN", Chapter: 1, Verse: 1}, true},
		// Unknown book
		{"Xyz 1:1", Citation{}, false},
		// Ordinal out of the 1-3 range
		{"4 John 1:1", Citation{}, false},
		{"12 Samuel 1:1", Citation{}, false},
		// Not a citation
		{"", Citation{}, false},
		{"no reference here", Citation{}, false},
		{"Genesis", Citation{}, false},
		{"Genesis 1", Citation{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseFragment(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseFragment(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseFragment(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Gen 1:1", []string{"GEN.1.1"}},
		{"Genesis 1:1-3", []string{"GEN.1.1", "GEN.1.2", "GEN.1.3"}},
		{"Gen 1:1; John 3:16", []string{"GEN.1.1", "JOH.3.16"}},
		{"Gen 1:1, John 3:16", []string{"GEN.1.1", "JOH.3.16"}},
		// Unresolvable fragments drop silently
		{"Xyz 1:1", nil},
		{"Xyz 1:1; Gen 1:1", []string{"GEN.1.1"}},
		// A bare chapter:verse after a comma has no book and is skipped
		{"Genesis 1:1-3, 5:2", []string{"GEN.1.1", "GEN.1.2", "GEN.1.3"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParseReference(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseReference(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseReference_Idempotent(t *testing.T) {
	input := "Romans 5:12-14; 1 John 1:9"
	first := ParseReference(input)
	second := ParseReference(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ParseReference not idempotent: %v vs %v", first, second)
	}
}

func TestExtractCued(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"The first creative act. See John 1:1-3 for more.", []string{"JOH.1.1", "JOH.1.2", "JOH.1.3"}},
		{"cf. Genesis 3:15", []string{"GEN.3.15"}},
		{"compare Romans 5:12", []string{"ROM.5.12"}},
		{"see v. 1 John 1:9", []string{"1JO.1.9"}},
		{"As in verse Matthew 5:3", []string{"MAT.5.3"}},
		// Citations without a cue phrase are not cross-references
		{"John 1:1 opens the gospel.", nil},
		// Unresolvable cued citations drop silently
		{"See Xyz 1:1", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ExtractCued(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractCued(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCitationVerseIDs(t *testing.T) {
	c := Citation{Book: "GEN", Chapter: 1, Verse: 1, VerseEnd: 3}
	want := []string{"GEN.1.1", "GEN.1.2", "GEN.1.3"}
	if got := c.VerseIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("VerseIDs() = %v, want %v", got, want)
	}
	if !c.IsRange() {
		t.Error("IsRange() = false, want true")
	}

	single := Citation{Book: "JOH", Chapter: 3, Verse: 16}
	if got := single.VerseIDs(); !reflect.DeepEqual(got, []string{"JOH.3.16"}) {
		t.Errorf("VerseIDs() = %v, want [JOH.3.16]", got)
	}
	if single.IsRange() {
		t.Error("IsRange() = true, want false")
	}
}

package notes

import (
	"fmt"
	"sort"

	"github.com/FocuswithJustin/ScofieldStudy/core/ref"
)

// Cross-reference type constants.
const (
	RefTypeParallel    = "parallel"
	RefTypeFulfillment = "fulfillment"
	RefTypeQuotation   = "quotation"
	RefTypeThematic    = "thematic"
	RefTypeTypological = "typological"
	RefTypeContrast    = "contrast"
	RefTypeExplanation = "explanation"
)

// autoConfidence is the confidence assigned to automatically extracted
// cross-references: derived, not curated.
const autoConfidence = 0.8

// CrossReference is a directed, typed, confidence-scored edge between two
// ids, each either a verse id or a note id.
type CrossReference struct {
	SourceID    string   `json:"source_id"`
	TargetID    string   `json:"target_id"`
	RefType     string   `json:"ref_type"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	Tags        []string `json:"tags,omitempty"`
}

// IsNoteToVerse reports whether the edge points from a note to a verse.
func (cr CrossReference) IsNoteToVerse() bool {
	return isNoteID(cr.SourceID) && !isNoteID(cr.TargetID)
}

// IsVerseToVerse reports whether the edge connects two verses.
func (cr CrossReference) IsVerseToVerse() bool {
	return !isNoteID(cr.SourceID) && !isNoteID(cr.TargetID)
}

func isNoteID(id string) bool {
	return len(id) > 0 && id[0] == 'N'
}

// ExtractCrossReferences scans every note's text for cue-phrase-introduced
// citations and emits one note-to-verse edge per resolved target verse,
// typed "explanation" with fixed confidence 0.8. Notes are scanned in id
// order so output is deterministic. Duplicate edges between the same pair
// are allowed.
func ExtractCrossReferences(all map[string]*Note) []CrossReference {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var edges []CrossReference
	for _, id := range ids {
		note := all[id]
		for _, target := range ref.ExtractCued(note.Text) {
			edges = append(edges, CrossReference{
				SourceID:    note.ID,
				TargetID:    target,
				RefType:     RefTypeExplanation,
				Description: fmt.Sprintf("Referenced in note %s", note.ID),
				Confidence:  autoConfidence,
			})
		}
	}
	return edges
}

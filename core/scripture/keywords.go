package scripture

import (
	"regexp"
	"strings"
)

// doctrinePattern pairs a keyword with the expression that detects it.
type doctrinePattern struct {
	word    string
	pattern *regexp.Regexp
}

// doctrinePatterns is the fixed table of doctrine-term expressions tested
// against verse text. Order is the emission order of matched keywords.
var doctrinePatterns = []doctrinePattern{
	{"dispensation", regexp.MustCompile(`(?i)\bdispensation(s|al)?\b`)},
	{"covenant", regexp.MustCompile(`(?i)\bcovenant(s|al)?\b`)},
	{"grace", regexp.MustCompile(`(?i)\bgrace\b`)},
	{"law", regexp.MustCompile(`(?i)\blaw\b`)},
	{"prophecy", regexp.MustCompile(`(?i)\bprophe(cy|cies|t(s|ic))\b`)},
	{"kingdom", regexp.MustCompile(`(?i)\bkingdom\b`)},
	{"church", regexp.MustCompile(`(?i)\bchurch\b`)},
	{"Israel", regexp.MustCompile(`(?i)\bIsrael\b`)},
	{"salvation", regexp.MustCompile(`(?i)\bsalvation\b`)},
	{"atonement", regexp.MustCompile(`(?i)\batonement\b`)},
	{"justification", regexp.MustCompile(`(?i)\bjustification\b`)},
	{"sanctification", regexp.MustCompile(`(?i)\bsanctification\b`)},
	{"eschatology", regexp.MustCompile(`(?i)\beschatology\b`)},
	{"rapture", regexp.MustCompile(`(?i)\brapture\b`)},
	{"millennium", regexp.MustCompile(`(?i)\bmillennium\b`)},
	{"resurrection", regexp.MustCompile(`(?i)\bresurrection\b`)},
}

// commonKeywords are devotional terms matched by case-insensitive substring
// containment rather than word boundary.
var commonKeywords = []string{
	"God", "Lord", "Jesus", "Christ", "Holy Spirit",
	"faith", "love", "hope", "sin", "grace",
}

// ExtractKeywords derives the keyword set for a piece of verse text from
// the doctrine-term table and the common devotional terms. Duplicates
// collapse, keeping first-seen order.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)

	var keywords []string
	seen := make(map[string]bool)
	add := func(word string) {
		if !seen[word] {
			seen[word] = true
			keywords = append(keywords, word)
		}
	}

	for _, dp := range doctrinePatterns {
		if dp.pattern.MatchString(lower) {
			add(dp.word)
		}
	}

	for _, word := range commonKeywords {
		if strings.Contains(lower, strings.ToLower(word)) {
			add(word)
		}
	}

	return keywords
}

package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/ScofieldStudy/core/books"
	"github.com/FocuswithJustin/ScofieldStudy/core/notes"
	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
	"github.com/FocuswithJustin/ScofieldStudy/core/themes"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// BookInfo describes one book present in the loaded corpus.
type BookInfo struct {
	Abbrev     string `json:"abbrev"`
	Name       string `json:"name"`
	VerseCount int    `json:"verse_count"`
	Chapters   int    `json:"chapters"`
}

// VerseDetail is a verse with its study apparatus attached.
type VerseDetail struct {
	*scripture.Verse
	ID              string                 `json:"verse_id"`
	Notes           []*notes.Note          `json:"notes"`
	CrossReferences []notes.CrossReference `json:"cross_references,omitempty"`
	Themes          []*themes.Theme        `json:"themes,omitempty"`
}

// ThemeInfo is a theme with link counts.
type ThemeInfo struct {
	*themes.Theme
	VerseCount int `json:"verse_count"`
	NoteCount  int `json:"note_count"`
}

// ThemeDetail is a theme with its verses and notes resolved.
type ThemeDetail struct {
	*themes.Theme
	Verses        []*scripture.Verse `json:"verses"`
	Notes         []*notes.Note      `json:"notes"`
	RelatedThemes []*themes.Theme    `json:"related_themes"`
}

// SearchResult is one hit in a search response.
type SearchResult struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Relevance float64     `json:"relevance"`
}

// SearchResponse wraps search hits with the query echoed back.
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Verses int    `json:"verses"`
	Notes  int    `json:"notes"`
}

var startTime = time.Now()

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"message": "Connected Scofield Bible API",
		"version": "2.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Result()
	respond(w, http.StatusOK, HealthInfo{
		Status: "ok",
		Uptime: time.Since(startTime).Round(time.Second).String(),
		Verses: snap.Verses.Len(),
		Notes:  len(snap.Notes),
	})
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	snap := s.Result()

	counts := make(map[string]int)
	for _, id := range snap.Verses.IDs() {
		counts[snap.Verses.Get(id).Book]++
	}

	var out []BookInfo
	for _, b := range books.All() {
		n, ok := counts[b.Abbrev]
		if !ok {
			continue
		}
		out = append(out, BookInfo{
			Abbrev:     b.Abbrev,
			Name:       b.Name,
			VerseCount: n,
			Chapters:   b.Chapters,
		})
	}
	respondTotal(w, http.StatusOK, out, len(out))
}

// handleChapter serves /api/verses/{book}/{chapter}.
func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/verses/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Expected /api/verses/{book}/{chapter}")
		return
	}
	book := strings.ToUpper(parts[0])
	chapter, err := strconv.Atoi(parts[1])
	if err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Chapter must be an integer")
		return
	}

	snap := s.Result()
	var out []VerseDetail
	for _, id := range snap.Verses.SortedIDs() {
		v := snap.Verses.Get(id)
		if v.Book != book || v.Chapter != chapter {
			continue
		}
		out = append(out, VerseDetail{
			Verse: v,
			ID:    v.ID(),
			Notes: resolveNotes(snap, v.NoteIDs),
		})
	}
	respondTotal(w, http.StatusOK, out, len(out))
}

// handleVerse serves /api/verse/{verse_id} with notes, cross-references,
// and themes attached.
func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/verse/")
	snap := s.Result()
	v := snap.Verses.Get(id)
	if v == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Verse not found")
		return
	}

	detail := VerseDetail{
		Verse: v,
		ID:    v.ID(),
		Notes: resolveNotes(snap, v.NoteIDs),
	}
	for _, cr := range snap.CrossRefs {
		if cr.SourceID == id || cr.TargetID == id {
			detail.CrossReferences = append(detail.CrossReferences, cr)
		}
	}
	for _, themeID := range sortedThemeIDs(snap) {
		theme := snap.Themes[themeID]
		for _, verseID := range theme.VerseIDs {
			if verseID == id {
				detail.Themes = append(detail.Themes, theme)
				break
			}
		}
	}
	respond(w, http.StatusOK, detail)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Query must be at least 2 characters")
		return
	}
	searchType := r.URL.Query().Get("search_type")
	if searchType == "" {
		searchType = "all"
	}
	switch searchType {
	case "all", "verses", "notes", "themes":
	default:
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "search_type must be all, verses, notes, or themes")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondError(w, http.StatusBadRequest, "BAD_REQUEST", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	term := strings.ToLower(q)
	snap := s.Result()
	var results []SearchResult

	if searchType == "all" || searchType == "verses" {
		n := 0
		for _, id := range snap.Verses.SortedIDs() {
			if n >= limit {
				break
			}
			v := snap.Verses.Get(id)
			if containsFold(v.Text, term) || anyContainsFold(v.Keywords, term) {
				results = append(results, SearchResult{Type: "verse", Data: v, Relevance: 1.0})
				n++
			}
		}
	}
	if searchType == "all" || searchType == "notes" {
		n := 0
		for _, id := range sortedNoteIDs(snap) {
			if n >= limit {
				break
			}
			note := snap.Notes[id]
			if containsFold(note.Text, term) || anyContainsFold(note.Keywords, term) ||
				anyContainsFold(note.ThemeTags, term) {
				results = append(results, SearchResult{Type: "note", Data: note, Relevance: 1.0})
				n++
			}
		}
	}
	if searchType == "all" || searchType == "themes" {
		n := 0
		for _, id := range themeIDsByConfidence(snap) {
			if n >= limit {
				break
			}
			theme := snap.Themes[id]
			if containsFold(theme.Name, term) || containsFold(theme.Description, term) ||
				anyContainsFold(theme.Categories, term) {
				results = append(results, SearchResult{Type: "theme", Data: theme, Relevance: 1.0})
				n++
			}
		}
	}

	respond(w, http.StatusOK, SearchResponse{Query: q, Count: len(results), Results: results})
}

// handleThemes serves /api/themes with optional ?category= filtering,
// ordered by confidence score descending.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(r.URL.Query().Get("category"))
	snap := s.Result()

	var out []ThemeInfo
	for _, id := range themeIDsByConfidence(snap) {
		theme := snap.Themes[id]
		if category != "" && !anyContainsFold(theme.Categories, category) {
			continue
		}
		out = append(out, ThemeInfo{
			Theme:      theme,
			VerseCount: len(theme.VerseIDs),
			NoteCount:  len(theme.NoteIDs),
		})
	}
	respondTotal(w, http.StatusOK, out, len(out))
}

// handleTheme serves /api/theme/{theme_id} with verses, notes, and related
// themes resolved.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/theme/")
	snap := s.Result()
	theme, ok := snap.Themes[id]
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Theme not found")
		return
	}

	detail := ThemeDetail{
		Theme:         theme,
		Verses:        []*scripture.Verse{},
		Notes:         resolveNotes(snap, theme.NoteIDs),
		RelatedThemes: []*themes.Theme{},
	}
	for _, verseID := range canonicalVerseOrder(snap.Verses, theme.VerseIDs) {
		if v := snap.Verses.Get(verseID); v != nil {
			detail.Verses = append(detail.Verses, v)
		}
	}
	related := append(append([]string{}, theme.SubThemes...), theme.ParentThemes...)
	for _, relatedID := range related {
		if rel, ok := snap.Themes[relatedID]; ok {
			detail.RelatedThemes = append(detail.RelatedThemes, rel)
		}
	}
	respond(w, http.StatusOK, detail)
}

// PlanDay is one day of a reading plan with its verses resolved.
type PlanDay struct {
	DayNumber int                `json:"day_number"`
	VerseIDs  []string           `json:"verse_ids"`
	Verses    []*scripture.Verse `json:"verses"`
}

// PlanDetail is a reading plan with per-day verse data.
type PlanDetail struct {
	ID               string    `json:"plan_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Theme            string    `json:"theme"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	Tags             []string  `json:"tags,omitempty"`
	Days             []PlanDay `json:"days"`
}

// handlePlans serves /api/reading-plans with optional ?theme= filtering.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	themeFilter := r.URL.Query().Get("theme")
	snap := s.Result()

	ids := make([]string, 0, len(snap.Plans))
	for id := range snap.Plans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return snap.Plans[ids[i]].Name < snap.Plans[ids[j]].Name
	})

	var out []PlanDetail
	for _, id := range ids {
		p := snap.Plans[id]
		if themeFilter != "" && p.Theme != themeFilter && !anyContainsFold(p.Tags, strings.ToLower(themeFilter)) {
			continue
		}
		detail := PlanDetail{
			ID:               p.ID,
			Name:             p.Name,
			Description:      p.Description,
			Theme:            p.Theme,
			EstimatedMinutes: p.EstimatedMinutes,
			Tags:             p.Tags,
		}
		for i, day := range p.Days {
			pd := PlanDay{DayNumber: i + 1, VerseIDs: day}
			for _, verseID := range day {
				if v := snap.Verses.Get(verseID); v != nil {
					pd.Verses = append(pd.Verses, v)
				}
			}
			detail.Days = append(detail.Days, pd)
		}
		out = append(out, detail)
	}
	respondTotal(w, http.StatusOK, out, len(out))
}

// Statistics is the /api/statistics response.
type Statistics struct {
	TotalVerses         int          `json:"total_verses"`
	TotalNotes          int          `json:"total_notes"`
	TotalCrossRefs      int          `json:"total_cross_references"`
	TotalThemes         int          `json:"total_themes"`
	TotalReadingPlans   int          `json:"total_reading_plans"`
	TopBooksByVerses    []CountEntry `json:"top_books_by_verses"`
	TopNoteCategories   []CountEntry `json:"top_note_categories"`
	CrossReferenceTypes []CountEntry `json:"cross_reference_types"`
}

// CountEntry pairs a label with an occurrence count.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	snap := s.Result()

	stats := Statistics{
		TotalVerses:       snap.Verses.Len(),
		TotalNotes:        len(snap.Notes),
		TotalCrossRefs:    len(snap.CrossRefs),
		TotalThemes:       len(snap.Themes),
		TotalReadingPlans: len(snap.Plans),
	}

	byBook := make(map[string]int)
	for _, id := range snap.Verses.IDs() {
		byBook[snap.Verses.Get(id).Book]++
	}
	stats.TopBooksByVerses = topCounts(byBook, 5)

	byCategory := make(map[string]int)
	for _, note := range snap.Notes {
		if note.Category != "" {
			byCategory[note.Category]++
		}
	}
	stats.TopNoteCategories = topCounts(byCategory, 10)

	byRefType := make(map[string]int)
	for _, cr := range snap.CrossRefs {
		byRefType[cr.RefType]++
	}
	stats.CrossReferenceTypes = topCounts(byRefType, len(byRefType))

	respond(w, http.StatusOK, stats)
}

// topCounts returns the n highest counts, ties broken by label.
func topCounts(counts map[string]int, n int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func resolveNotes(snap *pipeline.Result, ids []string) []*notes.Note {
	out := []*notes.Note{}
	for _, id := range ids {
		if note, ok := snap.Notes[id]; ok {
			out = append(out, note)
		}
	}
	return out
}

// canonicalVerseOrder sorts verse ids that exist in the store by canonical
// book order, then chapter and verse. Unknown ids are kept at the end.
func canonicalVerseOrder(store *scripture.Store, ids []string) []string {
	sorted := append([]string{}, ids...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := store.Get(sorted[i]), store.Get(sorted[j])
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if ao, bo := books.Order(a.Book), books.Order(b.Book); ao != bo {
			return ao < bo
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.Number < b.Number
	})
	return sorted
}

func sortedNoteIDs(snap *pipeline.Result) []string {
	ids := make([]string, 0, len(snap.Notes))
	for id := range snap.Notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedThemeIDs(snap *pipeline.Result) []string {
	ids := make([]string, 0, len(snap.Themes))
	for id := range snap.Themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// themeIDsByConfidence orders themes by confidence descending, ties broken
// by id for stable output.
func themeIDsByConfidence(snap *pipeline.Result) []string {
	ids := sortedThemeIDs(snap)
	sort.SliceStable(ids, func(i, j int) bool {
		return snap.Themes[ids[i]].Confidence > snap.Themes[ids[j]].Confidence
	})
	return ids
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func anyContainsFold(values []string, lowerNeedle string) bool {
	for _, v := range values {
		if containsFold(v, lowerNeedle) {
			return true
		}
	}
	return false
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	writeResponse(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

func respondTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	writeResponse(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeResponse(w, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

func writeResponse(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

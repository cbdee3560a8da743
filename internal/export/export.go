// Package export writes pipeline results to timestamped JSON files. Each
// run produces one file per entity kind plus a metadata file and a
// consolidated file holding everything.
package export

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/ScofieldStudy/core/errors"
	"github.com/FocuswithJustin/ScofieldStudy/core/notes"
	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
	"github.com/FocuswithJustin/ScofieldStudy/core/scripture"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
)

const timestampLayout = "20060102_150405"

// Metadata describes a single export run.
type Metadata struct {
	ExportID        string            `json:"export_id"`
	ExportTimestamp string            `json:"export_timestamp"`
	Project         string            `json:"project"`
	Version         string            `json:"version"`
	Source          string            `json:"source"`
	InputHashes     map[string]string `json:"input_hashes,omitempty"`
	Analysis        pipeline.Analysis `json:"analysis"`
}

// Files maps entity kinds to the paths written for them.
type Files map[string]string

// Exporter writes pipeline results to a directory.
type Exporter struct {
	// Dir is the output directory, created if missing.
	Dir string

	// Inputs are the source files whose BLAKE3 hashes are recorded in the
	// export metadata. Optional.
	Inputs []string

	// Now supplies the export timestamp; defaults to time.Now.
	Now func() time.Time
}

type consolidated struct {
	Metadata        Metadata                    `json:"metadata"`
	Verses          map[string]*scripture.Verse `json:"verses"`
	Notes           map[string]*notes.Note      `json:"notes"`
	CrossReferences []notes.CrossReference      `json:"cross_references"`
	ThematicIndex   json.RawMessage             `json:"thematic_index"`
	ReadingPlans    json.RawMessage             `json:"reading_plans"`
}

// Export writes all entity files and returns the paths written, keyed by
// kind (verses, notes, cross_references, thematic_index, reading_plans,
// metadata, consolidated).
func (e *Exporter) Export(r *pipeline.Result) (Files, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, errors.NewIO("mkdir", e.Dir, err)
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	ts := now().Format(timestampLayout)

	verses := make(map[string]*scripture.Verse, r.Verses.Len())
	for _, id := range r.Verses.SortedIDs() {
		verses[id] = r.Verses.Get(id)
	}

	hashes, err := e.hashInputs()
	if err != nil {
		return nil, err
	}

	meta := Metadata{
		ExportID:        uuid.NewString(),
		ExportTimestamp: ts,
		Project:         "Scofield Bible Study Pipeline",
		Version:         "2.0.0",
		Source:          "1917 Scofield Reference Bible",
		InputHashes:     hashes,
		Analysis:        pipeline.Analyze(r),
	}

	files := Files{}
	write := func(kind, name string, v any) error {
		path := filepath.Join(e.Dir, name+"_"+ts+".json")
		if err := writeJSON(path, v); err != nil {
			return err
		}
		files[kind] = path
		return nil
	}

	if err := write("verses", "verses", verses); err != nil {
		return nil, err
	}
	if err := write("notes", "notes", r.Notes); err != nil {
		return nil, err
	}
	if err := write("cross_references", "cross_references", r.CrossRefs); err != nil {
		return nil, err
	}
	if err := write("thematic_index", "thematic_index", r.Themes); err != nil {
		return nil, err
	}
	if err := write("reading_plans", "reading_plans", r.Plans); err != nil {
		return nil, err
	}
	if err := write("metadata", "metadata", meta); err != nil {
		return nil, err
	}

	themesRaw, err := json.Marshal(r.Themes)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling themes")
	}
	plansRaw, err := json.Marshal(r.Plans)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling plans")
	}
	all := consolidated{
		Metadata:        meta,
		Verses:          verses,
		Notes:           r.Notes,
		CrossReferences: r.CrossRefs,
		ThematicIndex:   themesRaw,
		ReadingPlans:    plansRaw,
	}
	if err := write("consolidated", "scofield_bible", all); err != nil {
		return nil, err
	}

	logging.Info("export_complete", "dir", e.Dir, "files", len(files), "export_id", meta.ExportID)
	return files, nil
}

// hashInputs computes BLAKE3 hashes of the configured input files.
func (e *Exporter) hashInputs() (map[string]string, error) {
	if len(e.Inputs) == 0 {
		return nil, nil
	}
	hashes := make(map[string]string, len(e.Inputs))
	for _, path := range e.Inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewIO("read", path, err)
		}
		sum := blake3.Sum256(data)
		hashes[filepath.Base(path)] = hex.EncodeToString(sum[:])
	}
	return hashes, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return errors.NewIO("write", path, err)
	}
	return f.Close()
}

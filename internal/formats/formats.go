// Package formats reads verse and note source files into the row shape the
// pipeline consumes. Format is chosen by file extension (.tsv, .csv, .json,
// .xml), with a trailing .xz handled transparently.
package formats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/ScofieldStudy/core/errors"
	"github.com/FocuswithJustin/ScofieldStudy/internal/fileutil"
)

// ReadVerseRows reads a verse source file and returns raw rows of
// [book, chapter, verse, text...].
func ReadVerseRows(path string) ([][]string, error) {
	rc, err := fileutil.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch ext := fileutil.BaseFormat(path); ext {
	case ".tsv", ".txt":
		return readDelimited(rc, '\t')
	case ".csv":
		return readDelimited(rc, ',')
	case ".json":
		return readVerseJSON(rc, path)
	case ".xml":
		return readVerseXML(rc, path)
	default:
		return nil, errors.NewUnsupported("verse format "+ext, "expected .tsv, .csv, .json, or .xml")
	}
}

// ReadNoteRows reads a note source file and returns raw rows of
// [reference, text, category, keywords?].
func ReadNoteRows(path string) ([][]string, error) {
	rc, err := fileutil.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch ext := fileutil.BaseFormat(path); ext {
	case ".tsv", ".txt":
		return readDelimited(rc, '\t')
	case ".csv":
		return readDelimited(rc, ',')
	case ".json":
		return readNoteJSON(rc, path)
	case ".xml":
		return readNoteXML(rc, path)
	default:
		return nil, errors.NewUnsupported("note format "+ext, "expected .tsv, .csv, .json, or .xml")
	}
}

// readDelimited parses tab- or comma-separated rows. Blank lines and lines
// starting with '#' are skipped. Rows may have ragged lengths; validation
// happens downstream.
func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading delimited input")
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		rows = append(rows, record)
	}
}

type verseRecord struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

func readVerseJSON(r io.Reader, path string) ([][]string, error) {
	var records []verseRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Book,
			strconv.Itoa(rec.Chapter),
			strconv.Itoa(rec.Verse),
			rec.Text,
		})
	}
	return rows, nil
}

type noteRecord struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Keywords  string `json:"keywords"`
}

func readNoteJSON(r io.Reader, path string) ([][]string, error) {
	var records []noteRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{rec.Reference, rec.Text, rec.Category}
		if rec.Keywords != "" {
			row = append(row, rec.Keywords)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readVerseXML parses <verses><verse book="GEN" chapter="1" verse="1">text</verse></verses>.
func readVerseXML(r io.Reader, path string) ([][]string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("XML", path, err.Error())
	}
	nodes := xmlquery.Find(doc, "//verse")
	rows := make([][]string, 0, len(nodes))
	for i, node := range nodes {
		book := node.SelectAttr("book")
		chapter := node.SelectAttr("chapter")
		verse := node.SelectAttr("verse")
		if book == "" || chapter == "" || verse == "" {
			return nil, errors.NewParse("XML", path,
				fmt.Sprintf("verse element %d missing book/chapter/verse attributes", i+1))
		}
		rows = append(rows, []string{book, chapter, verse, strings.TrimSpace(node.InnerText())})
	}
	return rows, nil
}

// readNoteXML parses <notes><note reference="Genesis 1:1" category="Creation"
// keywords="a,b">text</note></notes>.
func readNoteXML(r io.Reader, path string) ([][]string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("XML", path, err.Error())
	}
	nodes := xmlquery.Find(doc, "//note")
	rows := make([][]string, 0, len(nodes))
	for i, node := range nodes {
		ref := node.SelectAttr("reference")
		if ref == "" {
			return nil, errors.NewParse("XML", path,
				fmt.Sprintf("note element %d missing reference attribute", i+1))
		}
		row := []string{ref, strings.TrimSpace(node.InnerText()), node.SelectAttr("category")}
		if kw := node.SelectAttr("keywords"); kw != "" {
			row = append(row, kw)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

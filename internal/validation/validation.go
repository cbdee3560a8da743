// Package validation checks user-supplied input paths before the ingest
// and export code touches them: length and character limits, and a magic
// byte check so a mislabeled binary is rejected early.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrTypeMismatch     = errors.New("file type mismatch")
)

// ValidatePath performs basic path validation: length limits, null bytes,
// and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateFilename checks that a filename contains no path separators,
// null bytes, or control characters.
func ValidateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." {
		return ErrInvalidFilename
	}
	if len(filename) > MaxFilenameLength {
		return fmt.Errorf("%w: too long", ErrInvalidFilename)
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidFilename)
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}
	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}
	return nil
}

// FileType represents a validated input file type.
type FileType string

const (
	FileTypeXZ      FileType = "xz"
	FileTypeSQLite  FileType = "sqlite"
	FileTypeXML     FileType = "xml"
	FileTypeJSON    FileType = "json"
	FileTypeText    FileType = "text"
	FileTypeUnknown FileType = "unknown"
)

var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{FileTypeSQLite, []byte("SQLite format 3")},
}

// CheckFileHeader verifies that a file's leading bytes are consistent with
// its extension. Text formats (tsv/csv/json/xml) must look like text; an
// .xz suffix must carry the XZ magic.
func CheckFileHeader(header []byte, filename string) (FileType, error) {
	detected := FileTypeUnknown
	for _, sig := range magicBytes {
		if len(header) >= len(sig.magic) && bytes.Equal(header[:len(sig.magic)], sig.magic) {
			detected = sig.fileType
			break
		}
	}

	expected := expectedType(filename)

	if expected == FileTypeXZ {
		if detected != FileTypeXZ {
			return FileTypeUnknown, fmt.Errorf("%w: %s lacks xz magic bytes", ErrTypeMismatch, filename)
		}
		return FileTypeXZ, nil
	}

	switch expected {
	case FileTypeXML, FileTypeJSON, FileTypeText:
		if detected != FileTypeUnknown {
			return FileTypeUnknown, fmt.Errorf("%w: %s has %s content", ErrTypeMismatch, filename, detected)
		}
		if !isLikelyText(header) {
			return FileTypeUnknown, fmt.Errorf("%w: %s does not look like text", ErrTypeMismatch, filename)
		}
		return expected, nil
	case FileTypeSQLite:
		if detected != FileTypeSQLite {
			return FileTypeUnknown, fmt.Errorf("%w: %s lacks SQLite header", ErrTypeMismatch, filename)
		}
		return FileTypeSQLite, nil
	}
	return detected, nil
}

func expectedType(filename string) FileType {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".xz") {
		return FileTypeXZ
	}
	switch filepath.Ext(lower) {
	case ".sqlite", ".db", ".sqlite3":
		return FileTypeSQLite
	case ".xml":
		return FileTypeXML
	case ".json":
		return FileTypeJSON
	case ".tsv", ".csv", ".txt":
		return FileTypeText
	default:
		return FileTypeUnknown
	}
}

// isLikelyText reports whether the buffer appears to be ASCII/UTF-8 text.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return true // empty files pass; the parser reports them properly
	}
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}

package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("verse", "GEN.99.1")
	if got := err.Error(); got != "verse not found: GEN.99.1" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrNotFound) {
		t.Error("NotFoundError does not unwrap to ErrNotFound")
	}

	var nf *NotFoundError
	if !As(err, &nf) {
		t.Error("As failed for NotFoundError")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("chapter", "must be a positive integer")
	if !strings.Contains(err.Error(), "chapter") {
		t.Errorf("Error() = %q, want field name", err.Error())
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError does not unwrap to ErrInvalidInput")
	}
}

func TestIOError(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := NewIO("open", "/data/verses.tsv", inner)
	if !strings.Contains(err.Error(), "/data/verses.tsv") {
		t.Errorf("Error() = %q, want path", err.Error())
	}
	if !Is(err, inner) {
		t.Error("IOError does not unwrap to inner error")
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("JSON", "notes.json", "unexpected end of input")
	if !strings.Contains(err.Error(), "JSON") || !strings.Contains(err.Error(), "notes.json") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ParseError does not unwrap to ErrInvalidInput")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("format .yaml", "no reader registered")
	if !Is(err, ErrUnsupported) {
		t.Error("UnsupportedError does not unwrap to ErrUnsupported")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	base := stderrors.New("base")
	wrapped := Wrap(base, "loading verses")
	if !Is(wrapped, base) {
		t.Error("wrapped error lost its cause")
	}
	if got := wrapped.Error(); got != "loading verses: base" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "row %d", 3) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	base := stderrors.New("base")
	wrapped := Wrapf(base, "row %d", 3)
	if got := wrapped.Error(); got != "row 3: base" {
		t.Errorf("Error() = %q", got)
	}
}

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid", "data/verses.tsv", nil},
		{"empty", "", ErrEmptyPath},
		{"null byte", "verses\x00.tsv", ErrInvalidCharacter},
		{"control char", "verses\x01.tsv", ErrInvalidCharacter},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil && err != nil {
				t.Errorf("ValidatePath(%q) = %v", tt.path, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	valid := []string{"verses.tsv", "notes_2024.json", "scofield.db"}
	for _, name := range valid {
		if err := ValidateFilename(name); err != nil {
			t.Errorf("ValidateFilename(%q) = %v", name, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b.tsv", "a\\b.tsv", "x\x00y", "-flag.tsv",
		strings.Repeat("a", MaxFilenameLength+1)}
	for _, name := range invalid {
		if err := ValidateFilename(name); err == nil {
			t.Errorf("ValidateFilename(%q) = nil, want error", name)
		}
	}
}

func TestCheckFileHeader_Text(t *testing.T) {
	ft, err := CheckFileHeader([]byte("GEN\t1\t1\tIn the beginning\n"), "verses.tsv")
	if err != nil {
		t.Fatalf("CheckFileHeader: %v", err)
	}
	if ft != FileTypeText {
		t.Errorf("type = %q, want text", ft)
	}
}

func TestCheckFileHeader_XZ(t *testing.T) {
	xzMagic := []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00}
	ft, err := CheckFileHeader(xzMagic, "verses.tsv.xz")
	if err != nil {
		t.Fatalf("CheckFileHeader: %v", err)
	}
	if ft != FileTypeXZ {
		t.Errorf("type = %q, want xz", ft)
	}

	if _, err := CheckFileHeader([]byte("plain text"), "verses.tsv.xz"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("fake .xz: err = %v, want ErrTypeMismatch", err)
	}
}

func TestCheckFileHeader_BinaryAsText(t *testing.T) {
	sqliteHeader := []byte("SQLite format 3\x00")
	if _, err := CheckFileHeader(sqliteHeader, "verses.tsv"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("binary as .tsv: err = %v, want ErrTypeMismatch", err)
	}
}

func TestCheckFileHeader_SQLite(t *testing.T) {
	ft, err := CheckFileHeader([]byte("SQLite format 3\x00"), "scofield.db")
	if err != nil {
		t.Fatalf("CheckFileHeader: %v", err)
	}
	if ft != FileTypeSQLite {
		t.Errorf("type = %q, want sqlite", ft)
	}
}

func TestCheckFileHeader_Empty(t *testing.T) {
	if _, err := CheckFileHeader(nil, "verses.tsv"); err != nil {
		t.Errorf("empty header: %v", err)
	}
}

// Package fileutil provides file access helpers shared by the ingest and
// export paths. Readers transparently handle xz-compressed inputs.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/ScofieldStudy/core/errors"
)

// reader pairs a decoded stream with the file it wraps so Close releases both.
type reader struct {
	io.Reader
	file *os.File
}

func (r *reader) Close() error {
	return r.file.Close()
}

// Open opens path for reading. Files ending in .xz are decompressed
// transparently; everything else is returned as-is.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		return &reader{Reader: xzr, file: f}, nil
	}
	return f, nil
}

// BaseFormat returns the file extension used for format detection,
// with any trailing .xz stripped: "notes.json.xz" yields ".json".
func BaseFormat(path string) string {
	if strings.HasSuffix(path, ".xz") {
		path = strings.TrimSuffix(path, ".xz")
	}
	return strings.ToLower(filepath.Ext(path))
}

// CopyFile copies a file from src to dst, creating parent directories
// as needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.NewIO("open", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.NewIO("mkdir", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.NewIO("copy", dst, err)
	}
	return out.Sync()
}

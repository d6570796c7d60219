package jsonstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// JSON-backed storage. Single file, human-readable, portable.
// Writes go to a temp file in the same directory and are renamed over the
// target, so a crash mid-write leaves the previous file intact.
// No locking; one process owns the file.

// File is the on-disk location of the todos document.
type File struct {
	Path string
}

// New returns a File for path.
func New(path string) *File {
	return &File{Path: path}
}

// Read returns the raw file content. A missing file reports
// os.ErrNotExist (check with errors.Is).
func (f *File) Read() ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	return b, nil
}

// Write atomically replaces the file with b, creating the parent
// directory (0700) if needed.
func (f *File) Write(b []byte) (err error) {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "mkdir")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}

// Quarantine moves an unparsable file aside so the next save does not
// overwrite it, and returns the new path.
func (f *File) Quarantine(at time.Time) (string, error) {
	dst := f.Path + ".corrupt-" + at.Format("20060102T150405")
	if err := os.Rename(f.Path, dst); err != nil {
		return "", errors.Wrap(err, "move corrupt file aside")
	}
	return dst, nil
}

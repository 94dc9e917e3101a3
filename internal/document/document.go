// Package document owns the in-memory text, its optional file binding, and
// the dirty flag. Dirty is derived by comparing the text against the last
// loaded or saved snapshot, so editing back to the saved content clears it.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/zjrosen/texit/internal/log"
)

// ErrNoPath reports a Save on a document with no bound file path.
// Callers route this to save-as.
var ErrNoPath = errors.New("document has no file path")

// Document is a single in-memory text buffer with an optional file binding.
type Document struct {
	text  string
	path  string
	saved string // snapshot of the last loaded/saved text
}

// New returns an empty, clean, unbound document.
func New() *Document {
	return &Document{}
}

// Open reads the file at path and returns a clean document bound to it.
// The content must be valid UTF-8. On failure the caller's current document
// is untouched because Open constructs a fresh one.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen file
	if err != nil {
		log.ErrorErr(log.CatDoc, "Open failed", err, "path", path)
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		log.Error(log.CatDoc, "Open failed: not valid UTF-8", "path", path)
		return nil, fmt.Errorf("opening %s: content is not valid UTF-8", path)
	}
	text := string(data)
	log.Info(log.CatDoc, "Opened file", "path", path, "bytes", len(data))
	return &Document{text: text, path: path, saved: text}, nil
}

// Text returns the current buffer content.
func (d *Document) Text() string { return d.text }

// SetText replaces the buffer content. Dirty state follows from whether the
// new text matches the saved snapshot.
func (d *Document) SetText(text string) { d.text = text }

// Path returns the bound file path, empty when unbound.
func (d *Document) Path() string { return d.path }

// Dirty reports whether the text differs from the last persisted snapshot.
func (d *Document) Dirty() bool { return d.text != d.saved }

// SavedText returns the last loaded or saved snapshot, used to preview what
// a discard would lose.
func (d *Document) SavedText() string { return d.saved }

// Save writes the full current text to the bound path and clears dirty on
// success. Returns ErrNoPath when no path is bound. On failure the dirty
// state is unchanged and the on-disk file is intact: the write goes to a
// temp file in the target directory first and is renamed into place.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	if err := atomicWrite(d.path, []byte(d.text)); err != nil {
		log.ErrorErr(log.CatDoc, "Save failed", err, "path", d.path)
		return fmt.Errorf("saving %s: %w", d.path, err)
	}
	d.saved = d.text
	log.Info(log.CatDoc, "Saved file", "path", d.path, "bytes", len(d.text))
	return nil
}

// SaveAs binds the path then saves. A failed save leaves the new binding in
// place so a retry targets the same file.
func (d *Document) SaveAs(path string) error {
	d.path = path
	return d.Save()
}

// atomicWrite writes data to a temp file next to path and renames it into
// place, so a failed write never leaves a truncated target file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

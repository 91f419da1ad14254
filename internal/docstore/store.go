// Package docstore keeps generated documents on disk. Each document is a
// .docx file, the markup it was built from, an optional .pdf and a JSON
// metadata sidecar, all named by the document id.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/notegen/internal/doctree"
)

// DefaultName names documents generated without an explicit name.
const DefaultName = "output"

// NotFoundError reports a missing document or output file.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Meta describes a stored document.
type Meta struct {
	ID          string             `json:"doc_id"`
	Name        string             `json:"name"`
	Title       string             `json:"title,omitempty"`
	ContentHash string             `json:"content_hash"`
	Nodes       int                `json:"nodes"`
	TOC         []doctree.TocEntry `json:"toc"`
	CreatedAt   time.Time          `json:"created_at"`
	HasPDF      bool               `json:"has_pdf"`
}

// Filename is the download name of the .docx.
func (m Meta) Filename() string { return m.Name + ".docx" }

// Store is a directory of generated documents. Safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open creates dir if needed and returns a store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir is the store's root directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id, ext string) string {
	return filepath.Join(s.dir, id+ext)
}

// DOCXPath returns the .docx path of a stored document.
func (s *Store) DOCXPath(id string) (string, error) {
	if _, err := s.Meta(id); err != nil {
		return "", err
	}
	return s.path(id, ".docx"), nil
}

// PDFPath returns the path a converted PDF of the document lives at. It
// does not check that the PDF exists.
func (s *Store) PDFPath(id string) (string, error) {
	if _, err := s.Meta(id); err != nil {
		return "", err
	}
	return s.path(id, ".pdf"), nil
}

// Save writes a new document. meta.ID and meta.CreatedAt are assigned; an
// empty name becomes DefaultName.
func (s *Store) Save(meta Meta, docx []byte, markup string) (Meta, error) {
	meta.ID = NewID()
	meta.CreatedAt = time.Now().UTC()
	meta.HasPDF = false
	if meta.Name == "" {
		meta.Name = DefaultName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(meta.ID, ".docx"), docx, 0o644); err != nil {
		return Meta{}, fmt.Errorf("write docx: %w", err)
	}
	if err := os.WriteFile(s.path(meta.ID, ".notes"), []byte(markup), 0o644); err != nil {
		s.removeAll(meta.ID)
		return Meta{}, fmt.Errorf("write markup: %w", err)
	}
	if err := s.writeMeta(meta); err != nil {
		s.removeAll(meta.ID)
		return Meta{}, err
	}
	return meta, nil
}

// Meta reads a document's metadata.
func (s *Store) Meta(id string) (Meta, error) {
	if !ValidID(id) {
		return Meta{}, &NotFoundError{ID: id}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readMeta(id)
}

// Markup returns the markup a document was built from.
func (s *Store) Markup(id string) (string, error) {
	if _, err := s.Meta(id); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path(id, ".notes"))
	if err != nil {
		return "", fmt.Errorf("read markup: %w", err)
	}
	return string(data), nil
}

// OpenDOCX opens the stored .docx for reading.
func (s *Store) OpenDOCX(id string) (*os.File, Meta, error) {
	meta, err := s.Meta(id)
	if err != nil {
		return nil, Meta{}, err
	}
	f, err := os.Open(s.path(id, ".docx"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Meta{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, Meta{}, fmt.Errorf("open docx: %w", err)
	}
	return f, meta, nil
}

// MarkPDF records that the document's PDF exists.
func (s *Store) MarkPDF(id string) (Meta, error) {
	if !ValidID(id) {
		return Meta{}, &NotFoundError{ID: id}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meta, err := s.readMeta(id)
	if err != nil {
		return Meta{}, err
	}
	if _, err := os.Stat(s.path(id, ".pdf")); err != nil {
		return Meta{}, &NotFoundError{ID: id + ".pdf"}
	}
	meta.HasPDF = true
	if err := s.writeMeta(meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// List returns all documents, newest first.
func (s *Store) List() ([]Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	docs := []Meta{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := name[:len(name)-len(".json")]
		if !ValidID(id) {
			continue
		}
		meta, err := s.readMeta(id)
		if err != nil {
			continue
		}
		docs = append(docs, meta)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID > docs[j].ID })
	return docs, nil
}

// Delete removes a document with its PDF and metadata.
func (s *Store) Delete(id string) error {
	if !ValidID(id) {
		return &NotFoundError{ID: id}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.readMeta(id); err != nil {
		return err
	}
	return s.removeAll(id)
}

func (s *Store) removeAll(id string) error {
	var errs []error
	for _, ext := range []string{".docx", ".pdf", ".notes", ".json"} {
		if err := os.Remove(s.path(id, ext)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

func (s *Store) readMeta(id string) (Meta, error) {
	data, err := os.ReadFile(s.path(id, ".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return Meta{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("decode meta %s: %w", id, err)
	}
	return meta, nil
}

func (s *Store) writeMeta(meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	tmp := s.path(meta.ID, ".json.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	if err := os.Rename(tmp, s.path(meta.ID, ".json")); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

// DeleteFiles removes a document written outside a store: the file at path
// and the .pdf next to it. A missing document is a NotFoundError.
func DeleteFiles(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{ID: path}
		}
		return fmt.Errorf("delete %s: %w", path, err)
	}
	pdf := path[:len(path)-len(filepath.Ext(path))] + ".pdf"
	if err := os.Remove(pdf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", pdf, err)
	}
	return nil
}

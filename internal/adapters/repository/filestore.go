package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/okian/moodmeter/pkg/metrics"
)

const (
	opLoad = "load"
	opSave = "save"
)

// FileStore keeps the document in a single JSON file.
type FileStore struct {
	path   string
	mode   os.FileMode
	indent string

	mu sync.Mutex
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		mode:   0o644,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads and decodes the document. A missing file yields an empty
// document.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		metrics.RecordDocumentOperation(opLoad, true)
		return &Document{Teams: []TeamDoc{}}, nil
	}
	if err != nil {
		metrics.RecordDocumentOperation(opLoad, false)
		metrics.RecordErrorByComponent("repository", "read")
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		metrics.RecordDocumentOperation(opLoad, false)
		metrics.RecordErrorByComponent("repository", "decode")
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, s.path, err)
	}
	doc.normalize()
	metrics.RecordDocumentOperation(opLoad, true)
	return &doc, nil
}

// Save writes the document through a temp file in the same directory and
// renames it over the target, so readers never observe a partial write.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		doc = &Document{}
	}
	out := *doc
	if out.Teams == nil {
		out.Teams = []TeamDoc{}
	}

	var (
		raw []byte
		err error
	)
	if s.indent != "" {
		raw, err = json.MarshalIndent(&out, "", s.indent)
	} else {
		raw, err = json.Marshal(&out)
	}
	if err != nil {
		return s.fail("encode", fmt.Errorf("%w: encode: %w", ErrPersist, err))
	}
	raw = append(raw, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.fail("write", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		cleanup()
		return s.fail("write", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return s.fail("write", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return s.fail("write", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	if err := os.Chmod(tmpName, s.mode); err != nil {
		cleanup()
		return s.fail("write", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return s.fail("rename", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	metrics.RecordDocumentOperation(opSave, true)
	return nil
}

func (s *FileStore) fail(kind string, err error) error {
	metrics.RecordDocumentOperation(opSave, false)
	metrics.RecordErrorByComponent("repository", kind)
	return err
}

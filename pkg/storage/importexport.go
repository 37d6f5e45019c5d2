package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/surge-http/surge/pkg/model"
)

// ImportCollection reads an external collection document, assigns a new id
// and fresh timestamps (discarding the source file's identity), and persists
// it as a new collection. Importing the same file twice yields two distinct
// collections. Structural problems in nested folders/requests are linted and
// logged, never fatal.
func (s *Store) ImportCollection(path string) (*model.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Path: path, Err: err}
	}

	var c model.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &ImportError{Path: path, Err: fmt.Errorf("not valid JSON: %w", err)}
	}

	for _, warning := range LintCollectionDocument(data) {
		s.log.Warn().Str("file", path).Msg(warning)
	}
	if dangling := c.DanglingFolderRefs(); len(dangling) > 0 {
		s.log.Warn().
			Str("file", path).
			Strs("requestIds", dangling).
			Msg("imported folders reference requests the collection does not own")
	}

	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := s.SaveCollection(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ExportCollection byte-copies the persisted collection file to outPath.
// Errors when the collection does not exist.
func (s *Store) ExportCollection(id, outPath string) error {
	data, err := os.ReadFile(s.collectionPath(id))
	if err != nil {
		return &PersistenceError{Op: "export", Path: s.collectionPath(id), Err: err}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return &PersistenceError{Op: "export", Path: outPath, Err: err}
	}
	return nil
}

package storage

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/surge-http/surge/pkg/model"
)

// LoadCollections reads every collection document under collections/. A file
// that fails to read or parse is logged and skipped so one corrupt
// collection cannot block access to the others.
func (s *Store) LoadCollections() []model.Collection {
	entries, err := os.ReadDir(s.collectionsDir())
	if err != nil {
		s.log.Warn().Err(err).Str("dir", s.collectionsDir()).Msg("cannot read collections directory")
		return nil
	}

	var collections []model.Collection
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := s.collectionPath(strings.TrimSuffix(entry.Name(), ".json"))
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn().Err(err).Str("file", path).Msg("skipping unreadable collection")
			continue
		}
		var c model.Collection
		if err := json.Unmarshal(data, &c); err != nil {
			s.log.Warn().Err(err).Str("file", path).Msg("skipping malformed collection")
			continue
		}
		collections = append(collections, c)
	}

	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})
	return collections
}

// LoadCollection reads a single collection by id. Missing or malformed
// documents surface as a PersistenceError; resilience applies only to the
// bulk load.
func (s *Store) LoadCollection(id string) (*model.Collection, error) {
	path := s.collectionPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: path, Err: err}
	}
	var c model.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &PersistenceError{Op: "parse", Path: path, Err: err}
	}
	return &c, nil
}

// SaveCollection stamps UpdatedAt and writes the whole document to
// <id>.json, overwriting any prior content.
func (s *Store) SaveCollection(c *model.Collection) error {
	now := time.Now()
	// Wall clocks can be coarse; keep UpdatedAt strictly increasing.
	if !now.After(c.UpdatedAt) {
		now = c.UpdatedAt.Add(time.Millisecond)
	}
	c.UpdatedAt = now
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: s.collectionPath(c.ID), Err: err}
	}
	if err := os.WriteFile(s.collectionPath(c.ID), data, 0644); err != nil {
		return &PersistenceError{Op: "write", Path: s.collectionPath(c.ID), Err: err}
	}
	return nil
}

// DeleteCollection removes the collection file if present; deleting an
// absent collection is a no-op.
func (s *Store) DeleteCollection(id string) error {
	err := os.Remove(s.collectionPath(id))
	if err != nil && !os.IsNotExist(err) {
		return &PersistenceError{Op: "delete", Path: s.collectionPath(id), Err: err}
	}
	return nil
}

// FindRequest searches every collection for a request with the given id and
// returns it together with its owning collection.
func (s *Store) FindRequest(requestID string) (*model.Collection, *model.Request) {
	collections := s.LoadCollections()
	for i := range collections {
		if req := collections[i].FindRequest(requestID); req != nil {
			return &collections[i], req
		}
	}
	return nil, nil
}

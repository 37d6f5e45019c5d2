// Package storage implements the file-backed store for collections,
// environments, configuration, and history. Layout under the root:
//
//	<root>/collections/<collectionId>.json
//	<root>/environments/<environmentId>.json
//	<root>/config.json
//	<root>/history.json
//
// Every operation is a synchronous file-system round trip. The store assumes
// a single writer; concurrent external mutation of the directory is
// undefined behavior.
package storage

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store owns the storage root. Construct one per process and pass it to
// collaborators; there is no package-level instance.
type Store struct {
	root string
	log  zerolog.Logger
}

// New opens the store rooted at root, creating the directory layout and a
// default config.json on first run.
func New(root string, log zerolog.Logger) (*Store, error) {
	s := &Store{root: root, log: log}

	for _, dir := range []string{root, s.collectionsDir(), s.environmentsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &PersistenceError{Op: "create", Path: dir, Err: err}
		}
	}

	if _, err := os.Stat(s.configPath()); os.IsNotExist(err) {
		if err := s.SaveConfig(DefaultConfigDocument()); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) collectionsDir() string  { return filepath.Join(s.root, "collections") }
func (s *Store) environmentsDir() string { return filepath.Join(s.root, "environments") }
func (s *Store) configPath() string      { return filepath.Join(s.root, "config.json") }
func (s *Store) historyPath() string     { return filepath.Join(s.root, "history.json") }

func (s *Store) collectionPath(id string) string {
	return filepath.Join(s.collectionsDir(), id+".json")
}

func (s *Store) environmentPath(id string) string {
	return filepath.Join(s.environmentsDir(), id+".json")
}

// StorageSize recursively sums file sizes under the storage root.
func (s *Store) StorageSize() (int64, error) {
	var total int64
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, &PersistenceError{Op: "size", Path: s.root, Err: err}
	}
	return total, nil
}

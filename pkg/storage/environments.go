package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/surge-http/surge/pkg/model"
)

// LoadEnvironments reads every environment document under environments/,
// skipping unreadable or malformed files.
func (s *Store) LoadEnvironments() []model.Environment {
	entries, err := os.ReadDir(s.environmentsDir())
	if err != nil {
		s.log.Warn().Err(err).Str("dir", s.environmentsDir()).Msg("cannot read environments directory")
		return nil
	}

	var environments []model.Environment
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := s.environmentPath(strings.TrimSuffix(entry.Name(), ".json"))
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn().Err(err).Str("file", path).Msg("skipping unreadable environment")
			continue
		}
		var env model.Environment
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Warn().Err(err).Str("file", path).Msg("skipping malformed environment")
			continue
		}
		environments = append(environments, env)
	}

	sort.Slice(environments, func(i, j int) bool {
		return environments[i].Name < environments[j].Name
	})
	return environments
}

// SaveEnvironment writes the whole environment document to <id>.json.
func (s *Store) SaveEnvironment(env *model.Environment) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: s.environmentPath(env.ID), Err: err}
	}
	if err := os.WriteFile(s.environmentPath(env.ID), data, 0644); err != nil {
		return &PersistenceError{Op: "write", Path: s.environmentPath(env.ID), Err: err}
	}
	return nil
}

// DeleteEnvironment removes the environment file if present; no-op when
// absent.
func (s *Store) DeleteEnvironment(id string) error {
	err := os.Remove(s.environmentPath(id))
	if err != nil && !os.IsNotExist(err) {
		return &PersistenceError{Op: "delete", Path: s.environmentPath(id), Err: err}
	}
	return nil
}

// GetEnvironment looks an environment up by id first, then by name.
func (s *Store) GetEnvironment(idOrName string) *model.Environment {
	environments := s.LoadEnvironments()
	for i := range environments {
		if environments[i].ID == idOrName {
			return &environments[i]
		}
	}
	for i := range environments {
		if environments[i].Name == idOrName {
			return &environments[i]
		}
	}
	return nil
}

// ImportEnvironment reads an external environment file, assigns a new id,
// and persists it. JSON documents use the native format; .yaml/.yml files
// are a flat name: value mapping.
func (s *Store) ImportEnvironment(path string) (*model.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Path: path, Err: err}
	}

	env := model.Environment{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var variables map[string]string
		if err := yaml.Unmarshal(data, &variables); err != nil {
			return nil, &ImportError{Path: path, Err: fmt.Errorf("not a flat YAML mapping: %w", err)}
		}
		env.Variables = variables
	default:
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, &ImportError{Path: path, Err: fmt.Errorf("not valid JSON: %w", err)}
		}
	}

	env.ID = uuid.NewString()
	if env.Name == "" {
		env.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if env.Variables == nil {
		env.Variables = make(map[string]string)
	}

	if err := s.SaveEnvironment(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

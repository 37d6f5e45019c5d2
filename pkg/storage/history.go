package storage

import (
	"encoding/json"
	"os"

	"github.com/surge-http/surge/pkg/model"
)

// LoadHistory reads history.json, most recent entry first. A missing or
// malformed file yields an empty history.
func (s *Store) LoadHistory() []model.HistoryEntry {
	data, err := os.ReadFile(s.historyPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("file", s.historyPath()).Msg("cannot read history")
		}
		return nil
	}

	var history []model.HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		s.log.Warn().Err(err).Str("file", s.historyPath()).Msg("malformed history, starting empty")
		return nil
	}
	return history
}

// AddToHistory prepends the entry, truncates to the configured capacity, and
// persists the result. Ordering-sensitive; the one non-idempotent write in
// the store besides import.
func (s *Store) AddToHistory(entry model.HistoryEntry) error {
	history := append([]model.HistoryEntry{entry}, s.LoadHistory()...)

	limit := s.LoadConfig().MaxHistorySize
	if len(history) > limit {
		history = history[:limit]
	}

	return s.writeHistory(history)
}

// ClearHistory drops every entry.
func (s *Store) ClearHistory() error {
	return s.writeHistory([]model.HistoryEntry{})
}

func (s *Store) writeHistory(history []model.HistoryEntry) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: s.historyPath(), Err: err}
	}
	if err := os.WriteFile(s.historyPath(), data, 0644); err != nil {
		return &PersistenceError{Op: "write", Path: s.historyPath(), Err: err}
	}
	return nil
}

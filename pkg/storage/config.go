package storage

import (
	"encoding/json"
	"os"

	"github.com/surge-http/surge/pkg/model"
)

// DefaultConfigDocument returns the configuration written on first run.
func DefaultConfigDocument() model.Config {
	return model.DefaultConfig()
}

// LoadConfig reads config.json. Any failure falls back to the built-in
// defaults; configuration loading never raises.
func (s *Store) LoadConfig() model.Config {
	data, err := os.ReadFile(s.configPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("file", s.configPath()).Msg("cannot read config, using defaults")
		}
		return model.DefaultConfig()
	}

	cfg := model.DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.log.Warn().Err(err).Str("file", s.configPath()).Msg("malformed config, using defaults")
		return model.DefaultConfig()
	}
	if cfg.MaxHistorySize <= 0 {
		cfg.MaxHistorySize = model.DefaultConfig().MaxHistorySize
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = model.DefaultConfig().DefaultTimeout
	}
	return cfg
}

// SaveConfig writes the whole config document.
func (s *Store) SaveConfig(cfg model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: s.configPath(), Err: err}
	}
	if err := os.WriteFile(s.configPath(), data, 0644); err != nil {
		return &PersistenceError{Op: "write", Path: s.configPath(), Err: err}
	}
	return nil
}

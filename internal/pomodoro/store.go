package pomodoro

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
)

const (
	configKey = "pomodoro-config"
	statsKey  = "pomodoro-stats"
)

// Store persists pomodoro configuration and lifetime stats in a small
// on-disk key-value store. Values are loaded before the first tick and
// written on every change.
type Store struct {
	d *diskv.Diskv
}

func NewStore(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 64 * 1024,
	})}
}

// LoadConfig returns the saved configuration, or the defaults when nothing
// has been saved yet.
func (s *Store) LoadConfig() (Config, error) {
	if !s.d.Has(configKey) {
		return DefaultConfig(), nil
	}
	data, err := s.d.Read(configKey)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read pomodoro config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to decode pomodoro config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("saved pomodoro config is invalid: %w", err)
	}
	return cfg, nil
}

func (s *Store) SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode pomodoro config: %w", err)
	}
	if err := s.d.Write(configKey, data); err != nil {
		return fmt.Errorf("failed to write pomodoro config: %w", err)
	}
	return nil
}

// LoadStats returns the saved lifetime stats, zero-valued when nothing has
// been saved yet.
func (s *Store) LoadStats() (Stats, error) {
	if !s.d.Has(statsKey) {
		return Stats{}, nil
	}
	data, err := s.d.Read(statsKey)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read pomodoro stats: %w", err)
	}
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return Stats{}, fmt.Errorf("failed to decode pomodoro stats: %w", err)
	}
	return stats, nil
}

func (s *Store) SaveStats(stats Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode pomodoro stats: %w", err)
	}
	if err := s.d.Write(statsKey, data); err != nil {
		return fmt.Errorf("failed to write pomodoro stats: %w", err)
	}
	return nil
}

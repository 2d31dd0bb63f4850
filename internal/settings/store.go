// Package settings holds the vintage theme preference, persisted to a TOML
// file for the CLI and to a cookie for the web pages.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// ThemeKey is the name the preference is stored under.
const ThemeKey = "vintageTheme"

// File represents the TOML settings file.
type File struct {
	Theme ThemeConfig `toml:"theme"`
}

// ThemeConfig maps theme-related settings.
type ThemeConfig struct {
	Vintage *bool `toml:"vintageTheme"`
}

// LoadFile reads settings from the given path. Missing file is not an error.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, fmt.Errorf("settings path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to stat settings: %w", err)
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return f, nil
}

// Store is the process-wide preference store. It is read once at startup
// and written back on every change.
type Store struct {
	mu      sync.RWMutex
	path    string
	vintage bool
}

// Open loads the store from path. A missing file yields the default
// (vintage off).
func Open(path string) (*Store, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path}
	if f.Theme.Vintage != nil {
		s.vintage = *f.Theme.Vintage
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Vintage reports the current preference.
func (s *Store) Vintage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vintage
}

// SetVintage sets the preference and persists it.
func (s *Store) SetVintage(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(v); err != nil {
		return err
	}
	s.vintage = v
	return nil
}

// Toggle flips the preference, persists it and returns the new value.
func (s *Store) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := !s.vintage
	if err := s.save(next); err != nil {
		return s.vintage, err
	}
	s.vintage = next
	return next, nil
}

func (s *Store) save(v bool) error {
	f := File{Theme: ThemeConfig{Vintage: &v}}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

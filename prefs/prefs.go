// Package prefs persists the user's effect preference between runs
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the default preference file inside the user config dir
const FileName = "ambient-prefs.json"

// Prefs is the persisted preference document
type Prefs struct {
	// Enabled is a pointer so an absent key keeps the default
	Enabled *bool `json:"enabled,omitempty"`
}

// Store reads and writes the effect preference at a fixed path
// An empty path keeps the preference in memory only
type Store struct {
	path    string
	enabled bool
}

// DefaultPath returns FileName under the user config dir, empty if that dir is unknown
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ambient", FileName)
}

// Open reads the preference at path, missing file or key means enabled
func Open(path string) (*Store, error) {
	s := &Store{path: path, enabled: true}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read preferences: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return s, fmt.Errorf("failed to parse preferences %s: %w", path, err)
	}
	if p.Enabled != nil {
		s.enabled = *p.Enabled
	}
	return s, nil
}

// Enabled returns the current preference
func (s *Store) Enabled() bool {
	return s.enabled
}

// Path returns the backing file, empty when in-memory
func (s *Store) Path() string {
	return s.path
}

// SetEnabled updates and persists the preference
func (s *Store) SetEnabled(enabled bool) error {
	s.enabled = enabled
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(Prefs{Enabled: &enabled}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences dir: %w", err)
	}

	// Replace atomically, readers never see a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}

// Toggle flips and persists the preference, returning the new value
func (s *Store) Toggle() (bool, error) {
	next := !s.enabled
	return next, s.SetEnabled(next)
}

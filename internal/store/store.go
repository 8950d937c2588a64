// Package store persists the caller-owned profile as a JSON file. It is
// the local stand-in for whatever key-value storage a deployment wires in.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vj-vijeta/job-hunt-assistant/internal/profile"
)

const fileMode = 0o600

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored profile. A missing file yields an empty profile,
// not an error, so first runs work without setup.
func (s *Store) Load() (*profile.Profile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &profile.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile file %q: %w", s.path, err)
	}

	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile file %q: %w", s.path, err)
	}

	return &p, nil
}

func (s *Store) Save(p *profile.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, fileMode); err != nil {
		return fmt.Errorf("writing profile file %q: %w", s.path, err)
	}

	return nil
}

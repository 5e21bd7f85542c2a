// Package store persists habit data and settings as two JSON documents in
// the habitkeep data directory. There is no caching layer: every load reads
// the file fresh and every save rewrites it, so the files on disk are the
// only state that exists between calls.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"habitkeep/internal/config"
)

// DateLayout is the calendar-date format used everywhere: ISO-8601, no time.
const DateLayout = "2006-01-02"

// Habits maps a habit name to its completion dates, sorted ascending.
// Logically each date list is a set: duplicates must not accumulate.
type Habits map[string][]string

// Store reads and writes the two data files. Concurrent external writers are
// not supported; last write wins.
type Store struct {
	habitsPath   string
	settingsPath string
}

// New creates a Store rooted at cfg's data directory, creating the directory
// if needed.
func New(cfg config.Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		habitsPath:   cfg.HabitsPath(),
		settingsPath: cfg.SettingsPath(),
	}, nil
}

// LoadHabits reads the habit-data file. An absent file is initialized to an
// empty mapping; an unparsable file yields an empty mapping without error.
// Only genuine I/O failures are returned.
func (s *Store) LoadHabits() (Habits, error) {
	data, err := os.ReadFile(s.habitsPath)
	if os.IsNotExist(err) {
		habits := Habits{}
		if err := s.SaveHabits(habits); err != nil {
			return nil, err
		}
		return habits, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read habits: %w", err)
	}

	habits, err := decodeHabits(data)
	if err != nil {
		// Corrupt data is treated as absent: start over empty rather than
		// failing every caller forever.
		return Habits{}, nil
	}
	return habits, nil
}

// SaveHabits writes the full mapping, replacing the file. Dates are
// deduplicated and sorted ascending on the way out, and non-ASCII habit
// names are written unescaped.
func (s *Store) SaveHabits(habits Habits) error {
	normalized := make(Habits, len(habits))
	for name, dates := range habits {
		normalized[name] = normalizeDates(dates)
	}
	return writeJSON(s.habitsPath, normalized)
}

// LoadSettings reads the settings file, writing and returning defaults if it
// is absent. A malformed file or retention value coerces to unbounded.
func (s *Store) LoadSettings() (Settings, error) {
	data, err := os.ReadFile(s.settingsPath)
	if os.IsNotExist(err) {
		settings := DefaultSettings()
		if err := s.SaveSettings(settings); err != nil {
			return Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return decodeSettings(data), nil
}

// SaveSettings writes the settings, replacing the file.
func (s *Store) SaveSettings(settings Settings) error {
	return writeJSON(s.settingsPath, settings)
}

// decodeHabits parses the habit-data document and enforces its shape: every
// value must be a list of strings, never null. It is the explicit
// fallback-policy seam — LoadHabits maps any error here to an empty mapping.
func decodeHabits(data []byte) (Habits, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	habits := make(Habits, len(raw))
	for name, dates := range raw {
		if dates == nil {
			dates = []string{}
		}
		habits[name] = dates
	}
	return habits, nil
}

// normalizeDates dedupes and sorts a date list ascending.
func normalizeDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// writeJSON writes v to path via a temp file and rename, so a failed write
// leaves the previous file in place.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".habitkeep-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

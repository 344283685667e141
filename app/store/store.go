package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/debtofwar/tracker/app/conflict"
)

const (
	eventsFile = "events.json"
	metaFile   = "meta.json"
)

// Store persists the event collection and its summary as JSON files under a
// single data directory. Writes replace the whole file atomically so readers
// never observe a partial document.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) EventsPath() string {
	return filepath.Join(s.dir, eventsFile)
}

func (s *Store) MetaPath() string {
	return filepath.Join(s.dir, metaFile)
}

// LoadEvents reads the prior collection. A missing or unreadable file means
// a fresh start, not an error: the pipeline proceeds with an empty prior
// collection and rewrites the file on the next save.
func (s *Store) LoadEvents() []conflict.Event {
	data, err := os.ReadFile(s.EventsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read prior collection, starting empty", "path", s.EventsPath(), "error", err)
		}
		return nil
	}

	var events []conflict.Event
	if err := json.Unmarshal(data, &events); err != nil {
		slog.Warn("Prior collection is malformed, starting empty", "path", s.EventsPath(), "error", err)
		return nil
	}

	return events
}

// LoadMeta reads the last written summary.
func (s *Store) LoadMeta() (conflict.Meta, error) {
	data, err := os.ReadFile(s.MetaPath())
	if err != nil {
		return conflict.Meta{}, err
	}

	var meta conflict.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return conflict.Meta{}, fmt.Errorf("failed to parse %s: %w", s.MetaPath(), err)
	}

	return meta, nil
}

// SaveEvents writes the collection. A nil slice is stored as an empty array
// so consumers always receive a JSON list.
func (s *Store) SaveEvents(events []conflict.Event) error {
	if events == nil {
		events = []conflict.Event{}
	}
	return s.writeJSON(s.EventsPath(), events)
}

func (s *Store) SaveMeta(meta conflict.Meta) error {
	return s.writeJSON(s.MetaPath(), meta)
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	return nil
}

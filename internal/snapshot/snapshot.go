// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot persists one JSON document per run date and reads it back.
//
// A snapshot holds the full final paper list and the insights without
// their top-papers shortlist. Each run writes its own file; nothing reads
// previous runs during a batch.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/pdiddy/paper-digest/internal/schema"
	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	filePrefix = "papers_"
	fileSuffix = ".json"
	lockName   = ".paper-digest.lock"
)

var (
	// ErrNotFound is returned when no snapshot exists for a date.
	ErrNotFound = errors.New("snapshot not found")

	// ErrLocked is returned when another run holds the data directory.
	ErrLocked = errors.New("data directory is locked by another run")
)

// Snapshot is the persisted form of one run.
type Snapshot struct {
	Date        string         `json:"date"`
	RunID       string         `json:"run_id,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Papers      []types.Paper  `json:"papers"`
	Insights    types.Insights `json:"insights"`
}

// Store reads and writes snapshots under one directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds the snapshot for date.
func (s *Store) Path(date string) string {
	return filepath.Join(s.dir, filePrefix+date+fileSuffix)
}

// Lock takes an exclusive, non-blocking lock on the directory. The caller
// must call the returned release func on every exit path.
func (s *Store) Lock() (release func() error, err error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	lock := flock.New(filepath.Join(s.dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return lock.Unlock, nil
}

// Write stores snap, replacing any snapshot for the same date. The
// insights' top papers are dropped.
func (s *Store) Write(snap Snapshot) (string, error) {
	if _, err := time.Parse(types.DateLayout, snap.Date); err != nil {
		return "", fmt.Errorf("invalid snapshot date %q: %w", snap.Date, err)
	}
	snap.Insights = snap.Insights.WithoutTopPapers()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	path := s.Path(snap.Date)
	tmp, err := os.CreateTemp(s.dir, filePrefix+snap.Date+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming snapshot: %w", err)
	}
	return path, nil
}

// Read loads and validates the snapshot for date.
func (s *Store) Read(date string) (Snapshot, error) {
	data, err := os.ReadFile(s.Path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("%s: %w", date, ErrNotFound)
		}
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := schema.ValidateSnapshot(data); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", date, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// Dates lists the dates that have a snapshot, oldest first.
func (s *Store) Dates() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}
	var dates []string
	for _, m := range matches {
		d := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), filePrefix), fileSuffix)
		if _, err := time.Parse(types.DateLayout, d); err == nil {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// Latest returns the most recent snapshot date.
func (s *Store) Latest() (string, error) {
	dates, err := s.Dates()
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", ErrNotFound
	}
	return dates[len(dates)-1], nil
}

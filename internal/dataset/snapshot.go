// file: internal/dataset/snapshot.go
// version: 1.1.0
// guid: 4b5c6d7e-8f9a-0b1c-2d3e-4f5a6b7c8d9e

package dataset

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Snapshot is an immutable, ordered view of the title dataset. All
// concurrent queries share one snapshot without locking; a reload
// produces a fresh snapshot instead of mutating the old one.
type Snapshot struct {
	titles   []string
	source   string
	loadedAt time.Time
}

// Titles returns the ordered candidate titles. Callers must not modify
// the returned slice.
func (s *Snapshot) Titles() []string {
	if s == nil {
		return nil
	}
	return s.titles
}

// Len returns the number of titles; safe on a nil snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.titles)
}

// Ready reports whether the snapshot holds any data.
func (s *Snapshot) Ready() bool {
	return s.Len() > 0
}

// Source returns the file path the snapshot was loaded from.
func (s *Snapshot) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// LoadedAt returns when the snapshot was loaded.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// NewSnapshot builds a snapshot from an in-memory title list (used by
// tests and by callers that already hold the data).
func NewSnapshot(titles []string) *Snapshot {
	return &Snapshot{titles: titles, loadedAt: time.Now()}
}

// Load stream-reads a title dump into a Snapshot. The file is
// line-oriented, one title per line, optionally gzip-compressed (by
// .gz extension). Blank lines are skipped. Any failure yields an empty
// snapshot and the error; callers treat that as "no dataset yet".
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return &Snapshot{source: path}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var scanner *bufio.Scanner
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return &Snapshot{source: path}, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		scanner = bufio.NewScanner(gz)
	} else {
		scanner = bufio.NewScanner(f)
	}
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var titles []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return &Snapshot{source: path}, fmt.Errorf("failed to read dataset: %w", err)
	}

	log.Printf("[INFO] Loaded %d titles from %s", len(titles), path)
	return &Snapshot{titles: titles, source: path, loadedAt: time.Now()}, nil
}

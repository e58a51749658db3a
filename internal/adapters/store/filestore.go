// Package store provides a minimal on-disk persistence layer implementing
// usecases.Store. The core treats the store purely as a documented
// interface; this adapter is the concrete collaborator the CLI wires in at
// the process boundary.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// FileStore persists hints, repo-info timestamps, and statistics snapshots
// as a single JSON document on disk, guarded by a mutex shared across
// readers and writers. It is not suited to high write volumes; it exists
// to give the CLI a working default without pulling in an external
// database dependency for a single-process batch tool.
type FileStore struct {
	path string
	mu   sync.Mutex
	doc  document
}

type document struct {
	Hints      map[string]string         `json:"hints"`      // pkid -> base64-free JSON blob, stored raw as string
	RepoInfo   map[string]map[string]any `json:"repo_info"`  // "suite/section/arch" -> info
	Statistics map[int64]string          `json:"statistics"` // timestamp -> raw blob
}

var _ usecases.Store = (*FileStore)(nil)

// Open loads path if it exists, or starts with an empty document. The
// document is flushed to disk after every mutating call.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		doc: document{
			Hints:      make(map[string]string),
			RepoInfo:   make(map[string]map[string]any),
			Statistics: make(map[int64]string),
		},
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(contents) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(contents, &s.doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if s.doc.Hints == nil {
		s.doc.Hints = make(map[string]string)
	}
	if s.doc.RepoInfo == nil {
		s.doc.RepoInfo = make(map[string]map[string]any)
	}
	if s.doc.Statistics == nil {
		s.doc.Statistics = make(map[int64]string)
	}
	return s, nil
}

// GetHints returns the raw hint blob persisted for pkid, or nil if none
// exists.
func (s *FileStore) GetHints(_ context.Context, pkid string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.doc.Hints[pkid]
	if !ok {
		return nil, nil
	}
	return []byte(raw), nil
}

// SetHints persists blob under pkid, replacing any previous value.
func (s *FileStore) SetHints(_ context.Context, pkid string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Hints[pkid] = string(blob)
	return s.flushLocked()
}

// GetRepoInfo returns the repo-info object for (suite, section, arch).
func (s *FileStore) GetRepoInfo(_ context.Context, suite, section, arch string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.doc.RepoInfo[repoInfoKey(suite, section, arch)]
	if !ok {
		return map[string]any{}, nil
	}
	return info, nil
}

// SetRepoInfo persists info under (suite, section, arch).
func (s *FileStore) SetRepoInfo(_ context.Context, suite, section, arch string, info map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.RepoInfo[repoInfoKey(suite, section, arch)] = info
	return s.flushLocked()
}

// AddStatistics appends blob under the current time.
func (s *FileStore) AddStatistics(_ context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := time.Now().Unix()
	for {
		if _, taken := s.doc.Statistics[ts]; !taken {
			break
		}
		ts++
	}
	s.doc.Statistics[ts] = string(blob)
	return s.flushLocked()
}

// GetStatistics returns every persisted sample keyed by timestamp.
func (s *FileStore) GetStatistics(_ context.Context) (map[int64][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64][]byte, len(s.doc.Statistics))
	for ts, raw := range s.doc.Statistics {
		out[ts] = []byte(raw)
	}
	return out, nil
}

func (s *FileStore) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	blob, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func repoInfoKey(suite, section, arch string) string {
	return suite + "/" + section + "/" + arch
}

package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStore_HintsRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetHints(context.Background(), "foo/1.0/amd64", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("SetHints failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	blob, err := reopened.GetHints(context.Background(), "foo/1.0/amd64")
	if err != nil {
		t.Fatalf("GetHints failed: %v", err)
	}
	if string(blob) != `{"a":1}` {
		t.Errorf("blob = %q", blob)
	}
}

func TestFileStore_GetHintsMissingReturnsNil(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	blob, err := s.GetHints(context.Background(), "missing")
	if err != nil || blob != nil {
		t.Errorf("blob=%v err=%v, want nil, nil", blob, err)
	}
}

func TestFileStore_RepoInfoRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetRepoInfo(context.Background(), "sid", "main", "amd64", map[string]any{"index_mtime": float64(42)}); err != nil {
		t.Fatalf("SetRepoInfo failed: %v", err)
	}
	info, err := s.GetRepoInfo(context.Background(), "sid", "main", "amd64")
	if err != nil {
		t.Fatalf("GetRepoInfo failed: %v", err)
	}
	if info["index_mtime"] != float64(42) {
		t.Errorf("info = %+v", info)
	}

	empty, err := s.GetRepoInfo(context.Background(), "sid", "other", "amd64")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty=%v err=%v, want empty map, nil", empty, err)
	}
}

func TestFileStore_StatisticsAccumulate(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.AddStatistics(context.Background(), []byte(`{"n":1}`)); err != nil {
		t.Fatalf("AddStatistics failed: %v", err)
	}
	if err := s.AddStatistics(context.Background(), []byte(`{"n":2}`)); err != nil {
		t.Fatalf("AddStatistics failed: %v", err)
	}

	samples, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("samples = %d, want 2 (distinct timestamps even when added in the same second)", len(samples))
	}
}

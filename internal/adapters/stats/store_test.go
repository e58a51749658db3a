package stats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

type fakeBackingStore struct {
	nextTs  int64
	samples map[int64][]byte
}

func newFakeBackingStore() *fakeBackingStore {
	return &fakeBackingStore{samples: make(map[int64][]byte)}
}

func (s *fakeBackingStore) GetHints(context.Context, string) ([]byte, error) { return nil, nil }

func (s *fakeBackingStore) SetHints(context.Context, string, []byte) error { return nil }

func (s *fakeBackingStore) GetRepoInfo(context.Context, string, string, string) (map[string]any, error) {
	return map[string]any{}, nil
}

func (s *fakeBackingStore) SetRepoInfo(context.Context, string, string, string, map[string]any) error {
	return nil
}

func (s *fakeBackingStore) AddStatistics(_ context.Context, blob []byte) error {
	s.nextTs++
	s.samples[s.nextTs] = blob
	return nil
}

func (s *fakeBackingStore) GetStatistics(context.Context) (map[int64][]byte, error) {
	return s.samples, nil
}

func TestAddSnapshot_PersistsAsJSON(t *testing.T) {
	backing := newFakeBackingStore()
	store := NewStore(backing)

	snap := entities.StatsSnapshot{Suite: "sid", Section: "main", ErrorCount: 3, PackageCount: 10}
	if err := store.AddSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("AddSnapshot failed: %v", err)
	}

	if len(backing.samples) != 1 {
		t.Fatalf("expected one persisted sample, got %d", len(backing.samples))
	}
	var got entities.StatsSnapshot
	for _, blob := range backing.samples {
		if err := json.Unmarshal(blob, &got); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
	}
	if got != snap {
		t.Errorf("got %+v, want %+v", got, snap)
	}
}

func TestSeries_GroupsBySuiteAndSectionSortedByX(t *testing.T) {
	backing := newFakeBackingStore()
	store := NewStore(backing)

	ctx := context.Background()
	snapshots := []entities.StatsSnapshot{
		{Suite: "sid", Section: "main", ErrorCount: 5},
		{Suite: "sid", Section: "main", ErrorCount: 2},
		{Suite: "sid", Section: "contrib", ErrorCount: 9},
		{Suite: "stable", Section: "main", ErrorCount: 1},
	}
	for _, snap := range snapshots {
		if err := store.AddSnapshot(ctx, snap); err != nil {
			t.Fatalf("AddSnapshot failed: %v", err)
		}
	}

	series, err := store.Series(ctx)
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}

	sidMain := series["sid"]["main"]
	if len(sidMain) != 2 {
		t.Fatalf("sid/main series = %+v, want 2 points", sidMain)
	}
	if sidMain[0].X > sidMain[1].X {
		t.Errorf("series not sorted ascending by x: %+v", sidMain)
	}
	if sidMain[0].Y != 5 || sidMain[1].Y != 2 {
		t.Errorf("unexpected y values: %+v", sidMain)
	}

	if len(series["sid"]["contrib"]) != 1 || series["sid"]["contrib"][0].Y != 9 {
		t.Errorf("sid/contrib series = %+v", series["sid"]["contrib"])
	}
	if len(series["stable"]["main"]) != 1 || series["stable"]["main"][0].Y != 1 {
		t.Errorf("stable/main series = %+v", series["stable"]["main"])
	}
}

func TestSeries_SkipsMalformedSamples(t *testing.T) {
	backing := newFakeBackingStore()
	backing.nextTs = 1
	backing.samples[1] = []byte("not json")
	store := NewStore(backing)

	series, err := store.Series(context.Background())
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("expected malformed sample to be skipped, got %+v", series)
	}
}

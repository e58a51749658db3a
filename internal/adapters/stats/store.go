// Package stats implements the StatsStore port: a thin adapter around the
// external key/value Store that serializes snapshots to JSON and folds
// them back into sorted per-(suite, section) time series.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// Store implements usecases.StatsStore.
type Store struct {
	backing usecases.Store
}

var _ usecases.StatsStore = (*Store)(nil)

// NewStore creates a StatsStore backed by the given key/value Store.
func NewStore(backing usecases.Store) *Store {
	return &Store{backing: backing}
}

// AddSnapshot serializes snap to JSON and appends it to the backing store.
func (s *Store) AddSnapshot(ctx context.Context, snap entities.StatsSnapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal stats snapshot: %w", err)
	}
	return s.backing.AddStatistics(ctx, blob)
}

// Series reads back every persisted snapshot and groups it by suite and
// section, each series sorted ascending by timestamp. The y value tracked
// is the snapshot's error count, the metric this core treats as the
// primary health indicator over time.
func (s *Store) Series(ctx context.Context) (map[string]map[string][]entities.TimeSeriesPoint, error) {
	raw, err := s.backing.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("read statistics: %w", err)
	}

	series := make(map[string]map[string][]entities.TimeSeriesPoint)
	for ts, blob := range raw {
		var snap entities.StatsSnapshot
		if err := json.Unmarshal(blob, &snap); err != nil {
			continue
		}

		bySection, ok := series[snap.Suite]
		if !ok {
			bySection = make(map[string][]entities.TimeSeriesPoint)
			series[snap.Suite] = bySection
		}
		bySection[snap.Section] = append(bySection[snap.Section], entities.TimeSeriesPoint{
			X: ts,
			Y: snap.ErrorCount,
		})
	}

	for _, bySection := range series {
		for section, points := range bySection {
			sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
			bySection[section] = points
		}
	}

	return series, nil
}

package usecases

import (
	"context"
	"testing"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

type fakeRegistry struct {
	severities map[string]entities.Severity
}

func (r *fakeRegistry) Severity(tag string) (entities.Severity, bool) {
	sev, ok := r.severities[tag]
	return sev, ok
}

func (r *fakeRegistry) Render(tag string, variables map[string]string) (string, error) {
	return "rendered:" + tag, nil
}

type fakeStoreWithHints struct {
	hints map[string][]byte
}

func (s *fakeStoreWithHints) GetHints(_ context.Context, pkid string) ([]byte, error) {
	return s.hints[pkid], nil
}
func (s *fakeStoreWithHints) SetHints(_ context.Context, pkid string, blob []byte) error {
	if s.hints == nil {
		s.hints = make(map[string][]byte)
	}
	s.hints[pkid] = blob
	return nil
}
func (s *fakeStoreWithHints) GetRepoInfo(context.Context, string, string, string) (map[string]any, error) {
	return map[string]any{}, nil
}
func (s *fakeStoreWithHints) SetRepoInfo(context.Context, string, string, string, map[string]any) error {
	return nil
}
func (s *fakeStoreWithHints) AddStatistics(context.Context, []byte) error { return nil }
func (s *fakeStoreWithHints) GetStatistics(context.Context) (map[int64][]byte, error) {
	return nil, nil
}

func TestAggregator_Preprocess_FoldsHintsIntoSummary(t *testing.T) {
	pkg := entities.NewPackage("foo", "1.0", "amd64", "pool/foo.deb", "Jane <jane@example.com>")

	hint1 := entities.NewHint(entities.FileSubject("foo.desktop"), "desktop-file-error", map[string]string{"error": "bad"})
	blob, err := EncodeHints([]entities.Hint{hint1})
	if err != nil {
		t.Fatalf("EncodeHints failed: %v", err)
	}

	store := &fakeStoreWithHints{hints: map[string][]byte{pkg.Pkid(): blob}}
	registry := &fakeRegistry{severities: map[string]entities.Severity{"desktop-file-error": entities.SeverityError}}

	agg := NewAggregator(registry, nil)
	summary, err := agg.Preprocess(context.Background(), store, "sid", "main", []*entities.Package{pkg})
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if summary.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1", summary.TotalErrors)
	}
	entries := summary.HintEntries["foo"]
	entry, ok := entries["foo.desktop"]
	if !ok {
		t.Fatal("expected a hint entry for foo.desktop")
	}
	if len(entry.Errors) != 1 || entry.Errors[0].Message != "rendered:desktop-file-error" {
		t.Errorf("errors = %+v", entry.Errors)
	}
	if !entry.Archs["amd64"] {
		t.Error("expected amd64 to be recorded as an observed arch")
	}

	pkgSummaries := summary.PkgSummaries["Jane <jane@example.com>"]
	if len(pkgSummaries) != 1 || pkgSummaries[0].ErrorCount != 1 {
		t.Errorf("pkgSummaries = %+v", pkgSummaries)
	}
}

func TestAggregator_Preprocess_DiscardsUnknownTag(t *testing.T) {
	pkg := entities.NewPackage("foo", "1.0", "amd64", "pool/foo.deb", "Jane")
	hint1 := entities.NewHint(entities.FileSubject("foo.desktop"), "no-such-tag", nil)
	blob, err := EncodeHints([]entities.Hint{hint1})
	if err != nil {
		t.Fatalf("EncodeHints failed: %v", err)
	}

	store := &fakeStoreWithHints{hints: map[string][]byte{pkg.Pkid(): blob}}
	registry := &fakeRegistry{severities: map[string]entities.Severity{}}

	agg := NewAggregator(registry, nil)
	summary, err := agg.Preprocess(context.Background(), store, "sid", "main", []*entities.Package{pkg})
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if summary.TotalErrors != 0 || summary.TotalWarnings != 0 || summary.TotalInfos != 0 {
		t.Errorf("expected unknown-tag hint to be discarded, got totals i=%d w=%d e=%d", summary.TotalInfos, summary.TotalWarnings, summary.TotalErrors)
	}
}

func TestAggregator_Preprocess_HandlesEmptyHintsBlob(t *testing.T) {
	pkg := entities.NewPackage("foo", "1.0", "amd64", "pool/foo.deb", "Jane")
	store := &fakeStoreWithHints{hints: map[string][]byte{}}
	registry := &fakeRegistry{severities: map[string]entities.Severity{}}

	agg := NewAggregator(registry, nil)
	summary, err := agg.Preprocess(context.Background(), store, "sid", "main", []*entities.Package{pkg})
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if summary.TotalErrors+summary.TotalWarnings+summary.TotalInfos != 0 {
		t.Error("expected zero totals for a package with no persisted hints")
	}
	if len(summary.PkgSummaries["Jane"]) != 1 {
		t.Error("expected the package to still appear in PkgSummaries even with no hints")
	}
}

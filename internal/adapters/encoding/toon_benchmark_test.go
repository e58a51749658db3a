package encoding

import (
	"testing"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

func BenchmarkTOONvsJSON(b *testing.B) {
	summary := buildBenchmarkSummary(50, 5)
	enc := NewEncoder()

	b.Run("JSON_Encoding", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = enc.EncodeJSON(summary)
		}
	})

	b.Run("TOON_Encoding", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = enc.EncodeTOON(summary)
		}
	})
}

func TestTokenEfficiencyMetrics(t *testing.T) {
	summary := buildBenchmarkSummary(50, 5)
	enc := NewEncoder()

	jsonData, _ := enc.EncodeJSON(summary)
	toonData, _ := enc.EncodeTOON(summary)

	jsonTokens := estimateTokenCount(string(jsonData))
	toonTokens := estimateTokenCount(string(toonData))

	savings := float64(jsonTokens-toonTokens) / float64(jsonTokens) * 100

	t.Logf("JSON tokens: %d", jsonTokens)
	t.Logf("TOON tokens: %d", toonTokens)
	t.Logf("Token savings: %.1f%%", savings)

	if savings < 5 {
		t.Errorf("expected >5%% token savings, got %.1f%%", savings)
	}
}

// estimateTokenCount approximates token count at 4 chars per token.
func estimateTokenCount(s string) int {
	return (len(s) + 3) / 4
}

// buildBenchmarkSummary builds a DataSummary with numPackages package
// summaries, each adding hintsPerPackage warnings to its package's single
// "<name>.desktop" hint entry, to exercise the encoder against a
// realistically-sized catalog summary. Package names cycle through 26
// letters, so with more than 26 packages some names share a hint entry.
func buildBenchmarkSummary(numPackages, hintsPerPackage int) *entities.DataSummary {
	summary := entities.NewDataSummary("sid", "main")

	for i := 0; i < numPackages; i++ {
		pkgName := "pkg" + string(rune('a'+i%26))
		maintainer := "Maintainer <maint@example.com>"
		summary.AddPkgSummary(maintainer, &entities.PkgSummary{
			PkgName:    pkgName,
			PkgVersion: "1.0",
			Maintainer: maintainer,
		})

		for j := 0; j < hintsPerPackage; j++ {
			compID := pkgName + ".desktop"
			entry := summary.HintEntryFor(pkgName, compID)
			entry.Add(entities.SeverityWarning, "metainfo-quoted-value", "value was quoted")
		}
	}

	return summary
}

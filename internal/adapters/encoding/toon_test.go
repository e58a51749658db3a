package encoding

import (
	"testing"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/stretchr/testify/require"
)

func TestEncoderJSON(t *testing.T) {
	enc := NewEncoder()

	t.Run("encode simple struct", func(t *testing.T) {
		data := struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}{
			Name:  "test",
			Count: 42,
		}

		result, err := enc.EncodeJSON(data)
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"test","count":42}`, string(result))
	})
}

func TestEncoderTOON(t *testing.T) {
	enc := NewEncoder()

	t.Run("encode DataSummary totals", func(t *testing.T) {
		summary := entities.NewDataSummary("trixie", "main")
		summary.AddCounts(2, 1, 0)

		result, err := enc.EncodeTOON(summary)
		require.NoError(t, err)

		jsonResult, err := enc.EncodeJSON(summary)
		require.NoError(t, err)

		t.Logf("TOON (%d bytes): %s", len(result), string(result))
		t.Logf("JSON (%d bytes): %s", len(jsonResult), string(jsonResult))

		require.Less(t, len(result), len(jsonResult), "TOON should be shorter than JSON")
		require.Contains(t, string(result), "ti:2")
		require.Contains(t, string(result), "tw:1")
	})

	t.Run("encode stats snapshot", func(t *testing.T) {
		snap := entities.StatsSnapshot{
			Suite:          "sid",
			Section:        "main",
			InfoCount:      3,
			WarningCount:   1,
			ErrorCount:     0,
			PackageCount:   10,
			ComponentCount: 8,
		}

		result, err := enc.EncodeTOON(snap)
		require.NoError(t, err)
		require.Contains(t, string(result), "sid")
		require.Contains(t, string(result), "pc:10")
		require.Contains(t, string(result), "cc:8")
	})

	t.Run("encode time series points", func(t *testing.T) {
		points := []entities.TimeSeriesPoint{
			{X: 1000, Y: 5},
			{X: 2000, Y: 7},
		}

		result, err := enc.EncodeTOON(points)
		require.NoError(t, err)
		require.Contains(t, string(result), "x:1000")
		require.Contains(t, string(result), "y:7")
	})

	t.Run("encode empty map", func(t *testing.T) {
		result, err := enc.EncodeTOON(map[string]string{})
		require.NoError(t, err)
		require.Equal(t, "{}", string(result))
	})

	t.Run("encode nil pointer", func(t *testing.T) {
		var p *entities.StatsSnapshot
		result, err := enc.EncodeTOON(p)
		require.NoError(t, err)
		require.Equal(t, "-", string(result))
	})
}

package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"species-matrix/internal/model"
	"species-matrix/internal/reader"
)

func TestAnalyzeSequential(t *testing.T) {
	sheet := &reader.Sheet{
		Source: "survey.xlsx",
		Name:   "Sheet1",
		Format: "xlsx",
		Grid: model.NewGrid(
			[]interface{}{"物种名称 1-1-1"},
			[]interface{}{"Oak", 3},
			[]interface{}{"物种名称", "样地B"},
			[]interface{}{"物种名称 ?"},
			[]interface{}{"Pine", 1, "note"},
		),
	}

	r := Analyze(sheet, Options{Rows: 2, Cols: 2})

	assert.Equal(t, model.LayoutSequential, r.Layout)
	assert.Equal(t, 5, r.Rows)
	assert.Equal(t, 3, r.Cols)
	assert.Equal(t, []HeaderHit{
		{Row: 1, Text: "物种名称 1-1-1", ID: "1-1-1", Matcher: "dash-triplet", Recognized: true},
		{Row: 3, Text: "物种名称", ID: "样地B", Matcher: "literal-text", Recognized: true},
		{Row: 4, Text: "物种名称 ?"},
	}, r.PlotHeaders)
	assert.Len(t, r.Unrecognized(), 1)

	assert.Equal(t, [][]string{{"物种名称 1-1-1", ""}, {"Oak", "3"}}, r.Preview)
	assert.True(t, r.Truncated)
}

func TestInspectGridFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.csv")
	require.NoError(t, os.WriteFile(path, []byte("物种,P1,P2\nOak,1,2\n,,\n,物种,P3\n,Fern,4\n"), 0644))

	r, err := Inspect(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "csv", r.Format)
	assert.Equal(t, model.LayoutGrid, r.Layout)
	assert.Equal(t, []AnchorHit{
		{Row: 1, Col: 1, Plots: []string{"P1", "P2"}},
		{Row: 4, Col: 2, Plots: []string{"P3"}},
	}, r.Anchors)
	assert.Empty(t, r.PlotHeaders)
	assert.False(t, r.Truncated)
	assert.Len(t, r.Preview, 5)
}

package exporter

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"species-matrix/internal/exporter/common"
	"species-matrix/internal/exporter/data"
	"species-matrix/internal/matrix"
	"species-matrix/internal/model"
)

func sampleDocument() *common.Document {
	pd := model.NewPlotData()
	pd.Record("1-1-2", "Quercus", 3, model.PolicySum)
	pd.Record("1-1-10", "Quercus", 1.5, model.PolicySum)
	pd.Record("1-1-2", "白桦", 12, model.PolicySum)

	m := matrix.Assemble(pd)
	return &common.Document{
		Matrix:      m,
		Summary:     model.Summary{Layout: model.LayoutSequential, Plots: m.Width(), Species: m.Len(), Records: 3},
		Source:      "survey.xlsx",
		HeaderLabel: "物种",
		SheetName:   DefaultSheetName,
		AutoWidth:   true,
		Generated:   time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestGetExporters(t *testing.T) {
	exps, err := GetExporters(nil)
	require.NoError(t, err)
	require.Len(t, exps, 1)
	assert.Equal(t, "excel", exps[0].Format())

	exps, err = GetExporters([]string{"xlsx", " CSV ", "excel", "docx", "json", "toon", "html"})
	require.NoError(t, err)
	var names []string
	for _, e := range exps {
		names = append(names, e.Format())
	}
	assert.Equal(t, []string{"excel", "csv", "word", "json", "toon", "html"}, names)

	_, err = GetExporters([]string{"pdf"})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestExcelExport(t *testing.T) {
	doc := sampleDocument()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, NewExcelExporter().Export(doc, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"物种", "1-1-2", "1-1-10"},
		{"Quercus", "3", "1.5"},
		{"白桦", "12", "0"},
	}, rows)

	// Integral values are stored as numbers
	typ, err := f.GetCellType(DefaultSheetName, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)

	width, err := f.GetColWidth(DefaultSheetName, "A")
	require.NoError(t, err)
	assert.InDelta(t, columnWidth(len("Quercus")), width, 0.01)

	panes, err := f.GetPanes(DefaultSheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)

	t.Logf("✅ Output file created: %s", path)
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want interface{}
	}{
		{"Integral", 8, int64(8)},
		{"Zero", 0, int64(0)},
		{"Fraction", 2.5, 2.5},
		{"Largest exact integer", 1<<53 - 1, int64(1<<53 - 1)},
		{"Beyond exact range", 1 << 53, float64(1 << 53)},
		{"Beyond int64", 1e19, 1e19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellValue(tt.in))
		})
	}
}

func TestColumnWidth(t *testing.T) {
	assert.InDelta(t, 6.0, columnWidth(3), 0.001)
	assert.Equal(t, float64(maxColumnWidth), columnWidth(1000))
}

func TestCSVExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, NewCSVExporter().Export(sampleDocument(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF物种,1-1-2,1-1-10\nQuercus,3,1.5\n白桦,12,0\n", string(content))
}

func TestAllFormatsExport(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()

	exps, err := GetExporters(KnownFormats)
	require.NoError(t, err)

	paths := make(map[string]string)
	for _, e := range exps {
		path := OutputPath(filepath.Join(dir, "survey.xlsx"), PathOptions{Suffix: DefaultSuffix}, e.Extension())
		require.NoError(t, e.Export(doc, path), e.Format())
		paths[e.Format()] = path
	}

	assert.Equal(t, filepath.Join(dir, "survey_矩阵.xlsx"), paths["excel"])

	html, err := os.ReadFile(paths["html"])
	require.NoError(t, err)
	assert.Contains(t, string(html), "<td class=\"species\">白桦</td>")
	assert.Contains(t, string(html), "<td class=\"zero\">0</td>")

	var payload data.Payload
	raw, err := os.ReadFile(paths["json"])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, []string{"1-1-2", "1-1-10"}, payload.Plots)
	assert.Equal(t, data.PayloadRow{Species: "白桦", Values: []float64{12, 0}}, payload.Rows[1])
	assert.Equal(t, 3, payload.Summary.Records)

	toonOut, err := os.ReadFile(paths["toon"])
	require.NoError(t, err)
	assert.Contains(t, string(toonOut), "Quercus")

	zr, err := zip.OpenReader(paths["word"])
	require.NoError(t, err)
	defer zr.Close()
	var body string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			body = string(b)
		}
	}
	assert.Contains(t, body, "Quercus")
	assert.Contains(t, body, "survey.xlsx")
	assert.False(t, strings.Contains(body, "{{Content}}"))
}

func TestOutputPathCollisions(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "survey.xlsx")

	first := OutputPath(input, PathOptions{Suffix: DefaultSuffix}, ".xlsx")
	assert.Equal(t, filepath.Join(dir, "survey_矩阵.xlsx"), first)
	require.NoError(t, os.WriteFile(first, []byte("x"), 0644))

	second := OutputPath(input, PathOptions{Suffix: DefaultSuffix}, ".xlsx")
	assert.Equal(t, filepath.Join(dir, "survey_矩阵_1.xlsx"), second)
	require.NoError(t, os.WriteFile(second, []byte("x"), 0644))

	assert.Equal(t, filepath.Join(dir, "survey_矩阵_2.xlsx"), OutputPath(input, PathOptions{Suffix: DefaultSuffix}, ".xlsx"))
}

func TestOutputPathOptions(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "reports")

	assert.Equal(t, filepath.Join(out, "survey.csv"), OutputPath("/data/survey.xlsx", PathOptions{Dir: out}, ".csv"))

	explicit := filepath.Join(dir, "result.xlsx")
	assert.Equal(t, explicit, OutputPath("/data/survey.xlsx", PathOptions{Output: explicit}, ".xlsx"))
	assert.Equal(t, filepath.Join(dir, "result.html"), OutputPath("/data/survey.xlsx", PathOptions{Output: explicit}, ".html"))

	require.NoError(t, os.WriteFile(explicit, nil, 0644))
	assert.Equal(t, filepath.Join(dir, "result_1.xlsx"), OutputPath("/data/survey.xlsx", PathOptions{Output: explicit}, ".xlsx"))
}

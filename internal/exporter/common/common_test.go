package common

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"species-matrix/internal/matrix"
	"species-matrix/internal/model"
)

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 3, DisplayWidth("Oak"))
	assert.Equal(t, 4, DisplayWidth("物种"))
	assert.Equal(t, 8, DisplayWidth("1-1 白桦"))
	assert.Equal(t, "物种  |", Pad("物种", 6)+"|")
	assert.Equal(t, "toolong", Pad("toolong", 3))
}

func TestColumnWidths(t *testing.T) {
	widths := ColumnWidths([][]string{{"物种", "P1"}, {"Oak", "12.5", "x"}})
	assert.Equal(t, []int{4, 4, 1}, widths)
}

func TestDocumentTable(t *testing.T) {
	data := model.NewPlotData()
	data.Record("1-2", "Oak", 3, model.PolicySum)
	data.Record("1-10", "Oak", 0.5, model.PolicySum)
	doc := &Document{Matrix: matrix.Assemble(data), HeaderLabel: "物种"}

	assert.Equal(t, [][]string{{"物种", "1-2", "1-10"}, {"Oak", "3", "0.5"}}, doc.Table())
	assert.Equal(t, "", doc.Date())
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	failing := filepath.Join(dir, "failed.txt")
	boom := errors.New("boom")
	err = WriteFile(failing, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, failing)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

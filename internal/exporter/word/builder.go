package word

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"species-matrix/internal/exporter/common"

	"github.com/nguyenthenguyen/docx"
)

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Format() string    { return "word" }
func (e *WordExporter) Extension() string { return ".docx" }

func (e *WordExporter) Export(doc *common.Document, path string) error {
	// 1. Open the in-memory template
	templateBytes, err := buildTemplate()
	if err != nil {
		return fmt.Errorf("failed to build template: %w", err)
	}

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return fmt.Errorf("failed to read docx template: %w", err)
	}
	defer r.Close()

	editable := r.Editable()

	// 2. Replace Summary Placeholders
	title := doc.SheetName
	if doc.Source != "" {
		title = fmt.Sprintf("%s (%s)", doc.SheetName, doc.Source)
	}
	m := doc.Matrix
	summary := fmt.Sprintf("Species: %d    Plots: %d    Records: %d    Layout: %s",
		m.Len(), m.Width(), doc.Summary.Records, doc.Summary.Layout)

	// The docx library handles the XML encoding
	editable.Replace(placeholderTitle, title, -1)
	editable.Replace(placeholderDate, doc.Date(), -1)
	editable.Replace(placeholderSummary, summary, -1)
	editable.Replace(placeholderContent, renderTable(doc.Table()), -1)

	return common.WriteFile(path, func(w io.Writer) error {
		if err := editable.Write(w); err != nil {
			return fmt.Errorf("failed to write Word document: %w", err)
		}
		return nil
	})
}

// renderTable lays the matrix out as fixed-width text lines
func renderTable(table [][]string) string {
	widths := common.ColumnWidths(table)
	total := 0
	for _, w := range widths {
		total += w + 2
	}

	var sb strings.Builder
	for i, row := range table {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			if j == len(row)-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(common.Pad(cell, widths[j]))
			}
		}
		sb.WriteString("\n")
		if i == 0 {
			sb.WriteString(strings.Repeat("-", total) + "\n")
		}
	}
	return sb.String()
}

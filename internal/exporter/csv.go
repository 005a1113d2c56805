package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"species-matrix/internal/exporter/common"
)

// CSVExporter writes the matrix as UTF-8 CSV with a byte order mark so spreadsheet
// applications detect the encoding of non-ASCII species names
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Format() string    { return "csv" }
func (e *CSVExporter) Extension() string { return ".csv" }

func (e *CSVExporter) Export(doc *common.Document, path string) error {
	return common.WriteFile(path, func(w io.Writer) error {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(doc.Table()); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	})
}

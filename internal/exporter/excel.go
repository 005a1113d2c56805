package exporter

import (
	"fmt"
	"io"
	"math"

	"species-matrix/internal/coerce"
	"species-matrix/internal/exporter/common"

	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSheetName is the worksheet holding the matrix ("species plot matrix")
	DefaultSheetName = "物种样地矩阵"

	maxColumnWidth = 255
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Format() string    { return "excel" }
func (e *ExcelExporter) Extension() string { return ".xlsx" }

// Export writes the matrix as a single styled worksheet
func (e *ExcelExporter) Export(doc *common.Document, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	sheet := doc.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("invalid sheet name %q: %w", sheet, err)
	}

	if err := e.writeMatrix(f, styler, sheet, doc); err != nil {
		return err
	}

	return common.WriteFile(path, func(w io.Writer) error {
		if _, err := f.WriteTo(w); err != nil {
			return fmt.Errorf("failed to write Excel file: %w", err)
		}
		return nil
	})
}

func (e *ExcelExporter) writeMatrix(f *excelize.File, s *Styler, sheet string, doc *common.Document) error {
	m := doc.Matrix
	header := doc.Header()

	e.writeRow(f, sheet, 1, header, s.HeaderStyle)

	for i, row := range m.Rows() {
		r := i + 2
		values := make([]interface{}, 0, len(row.Values)+1)
		values = append(values, row.Species)
		for _, v := range row.Values {
			values = append(values, cellValue(v))
		}

		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
		f.SetCellStyle(sheet, start, start, s.SpeciesStyle)

		for j, v := range row.Values {
			cell, _ := excelize.CoordinatesToCellName(j+2, r)
			style := s.ValueStyle
			if v == 0 {
				style = s.ZeroStyle
			}
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	// Freeze header row and species column
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})

	if doc.AutoWidth {
		for j, w := range common.ColumnWidths(doc.Table()) {
			col, _ := excelize.ColumnNumberToName(j + 1)
			if err := f.SetColWidth(sheet, col, col, columnWidth(w)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

// columnWidth converts the widest content of a column into an Excel width
func columnWidth(contentWidth int) float64 {
	w := float64(contentWidth+2) * 1.2
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}

// maxExactInt is the largest magnitude below which every integer is exact in a float64
const maxExactInt = 1 << 53

// cellValue writes integral counts as integers and everything else as floats
func cellValue(v float64) interface{} {
	if coerce.IsIntegral(v) && math.Abs(v) < maxExactInt {
		return int64(v)
	}
	return v
}

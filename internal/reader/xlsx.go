package reader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"

	"species-matrix/internal/model"
)

// readExcelize loads the first sheet with excelize.
// Cell types decide text versus number so that "007" typed as text stays text.
func readExcelize(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}

	grid := make(model.Grid, len(rows))
	for r, row := range rows {
		cells := make([]model.Cell, len(row))
		for c, raw := range row {
			if raw == "" {
				cells[c] = model.Empty()
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell %s: %w", axis, err)
			}
			cells[c] = excelizeCell(typ, raw)
		}
		grid[r] = cells
	}

	return &Sheet{Name: name, Grid: grid}, nil
}

func excelizeCell(typ excelize.CellType, raw string) model.Cell {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return model.Number(v)
		}
		return model.Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" {
			return model.Text("TRUE")
		}
		return model.Text("FALSE")
	default:
		return model.Text(raw)
	}
}

// readStream loads the first sheet from the xlsxreader row channel.
// The channel is always drained so the reader goroutine can exit.
func readStream(data []byte) (*Sheet, error) {
	xl, err := xlsxreader.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(xl.Sheets) == 0 {
		return nil, ErrNoSheet
	}
	name := xl.Sheets[0]

	var (
		grid    model.Grid
		readErr error
	)
	for row := range xl.ReadRows(name) {
		if readErr != nil {
			continue
		}
		if row.Error != nil {
			readErr = fmt.Errorf("failed to read sheet %s: %w", name, row.Error)
			continue
		}
		for _, cell := range row.Cells {
			col, err := excelize.ColumnNameToNumber(cell.Column)
			if err != nil {
				readErr = fmt.Errorf("row %d: %w", row.Index, err)
				break
			}
			grid = place(grid, row.Index-1, col-1, streamCell(cell))
		}
	}
	if readErr != nil {
		return nil, readErr
	}

	return &Sheet{Name: name, Grid: grid}, nil
}

func streamCell(cell xlsxreader.Cell) model.Cell {
	if cell.Value == "" {
		return model.Empty()
	}
	if cell.Type == xlsxreader.TypeNumerical {
		if v, err := strconv.ParseFloat(strings.TrimSpace(cell.Value), 64); err == nil {
			return model.Number(v)
		}
	}
	return model.Text(cell.Value)
}

// Package reader loads the first worksheet of an input file into a typed model.Grid.
//
// Spreadsheets are read values-only: formulas contribute their cached results.
// The input is never modified.
package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"species-matrix/internal/model"
)

// Engine selects the xlsx backend
type Engine string

const (
	// EngineExcelize reads the whole sheet with excelize and per-cell type information
	EngineExcelize Engine = "excelize"
	// EngineStream reads rows from a streaming xlsxreader channel
	EngineStream Engine = "stream"
)

// DefaultEncodings are tried in order for CSV input that is not valid UTF-8
var DefaultEncodings = []string{"gb18030", "gbk"}

var (
	// ErrUnsupportedFormat is returned for file extensions no engine handles
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrNoSheet is returned for a workbook without worksheets
	ErrNoSheet = errors.New("workbook has no worksheet")
)

// Options configures input loading
type Options struct {
	Engine    Engine
	Encodings []string // CSV fallback encodings, WHATWG names
}

// Sheet is the loaded first worksheet
type Sheet struct {
	Source string     // File name the data came from
	Name   string     // Worksheet name ("" for CSV)
	Format string     // "xlsx" or "csv"
	Engine Engine     // Backend used for xlsx input
	Grid   model.Grid // Cell values, trailing empty cells removed
}

// ParseEngine converts a configuration value into an Engine
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "excelize":
		return EngineExcelize, nil
	case "stream", "xlsxreader":
		return EngineStream, nil
	default:
		return "", fmt.Errorf("unknown input engine: %q (want excelize or stream)", s)
	}
}

// Supported reports whether the file extension can be read
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	}
	return false
}

// Load reads the file at path
func Load(path string, opts Options) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return Read(filepath.Base(path), data, opts)
}

// Read parses input bytes; name is used to pick the format by extension
func Read(name string, data []byte, opts Options) (*Sheet, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var (
		sheet *Sheet
		err   error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		engine := opts.Engine
		if engine == "" {
			engine = EngineExcelize
		}
		switch engine {
		case EngineStream:
			sheet, err = readStream(data)
		case EngineExcelize:
			sheet, err = readExcelize(data)
		default:
			return nil, fmt.Errorf("unknown input engine: %q", engine)
		}
		if sheet != nil {
			sheet.Format = "xlsx"
			sheet.Engine = engine
		}
	case ".csv":
		encodings := opts.Encodings
		if len(encodings) == 0 {
			encodings = DefaultEncodings
		}
		sheet, err = readCSV(data, encodings)
		if sheet != nil {
			sheet.Format = "csv"
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	sheet.Source = name
	sheet.Grid = compact(sheet.Grid)
	return sheet, nil
}

// compact removes trailing empty cells and trailing empty rows
func compact(g model.Grid) model.Grid {
	for i, row := range g {
		n := len(row)
		for n > 0 && row[n-1].IsEmpty() {
			n--
		}
		if row == nil {
			row = []model.Cell{}
		}
		g[i] = row[:n]
	}
	n := len(g)
	for n > 0 && len(g[n-1]) == 0 {
		n--
	}
	return g[:n]
}

// place stores a cell at a 0-based position, growing the grid as needed
func place(g model.Grid, row, col int, c model.Cell) model.Grid {
	for len(g) <= row {
		g = append(g, nil)
	}
	for len(g[row]) <= col {
		g[row] = append(g[row], model.Empty())
	}
	g[row][col] = c
	return g
}

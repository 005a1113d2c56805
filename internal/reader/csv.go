package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"species-matrix/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText converts CSV bytes to UTF-8.
// Valid UTF-8 is used as is; otherwise each encoding is tried in order and the first
// decoding without replacement characters wins.
func decodeText(data []byte, encodings []string) (string, string, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), "utf-8", nil
	}

	var fallback, fallbackName string
	for _, name := range encodings {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return "", "", fmt.Errorf("unknown encoding %q: %w", name, err)
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			continue
		}
		text := string(decoded)
		if !strings.ContainsRune(text, utf8.RuneError) {
			return text, name, nil
		}
		if fallback == "" {
			fallback, fallbackName = text, name
		}
	}
	if fallback != "" {
		return fallback, fallbackName, nil
	}
	return "", "", fmt.Errorf("input is not valid UTF-8 and none of %v could decode it", encodings)
}

// readCSV parses comma separated input; cells that parse as numbers become number cells
func readCSV(data []byte, encodings []string) (*Sheet, error) {
	text, enc, err := decodeText(data, encodings)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv (%s): %w", enc, err)
	}

	grid := make(model.Grid, len(records))
	for i, rec := range records {
		cells := make([]model.Cell, len(rec))
		for j, field := range rec {
			cells[j] = csvCell(field)
		}
		grid[i] = cells
	}
	return &Sheet{Grid: grid}, nil
}

func csvCell(field string) model.Cell {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return model.Empty()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return model.Number(v)
	}
	return model.Text(field)
}

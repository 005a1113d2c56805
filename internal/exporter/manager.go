package exporter

import (
	"fmt"
	"strings"

	"species-matrix/internal/exporter/data"
	"species-matrix/internal/exporter/html"
	"species-matrix/internal/exporter/word"
)

// DefaultFormats is used when no format is configured
var DefaultFormats = []string{"excel"}

// KnownFormats lists the accepted format names
var KnownFormats = []string{"excel", "csv", "html", "word", "json", "toon"}

// GetExporters returns the Exporters for the requested formats, in order and without duplicates
func GetExporters(formats []string) ([]Exporter, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if fmtStr == "" {
			continue
		}

		var e Exporter
		switch fmtStr {
		case "excel", "xlsx":
			e = NewExcelExporter()
		case "csv":
			e = NewCSVExporter()
		case "html":
			e = html.NewHTMLExporter()
		case "word", "docx":
			e = word.NewWordExporter()
		case "json":
			e = data.NewJSONExporter()
		case "toon":
			e = data.NewTOONExporter()
		default:
			return nil, fmt.Errorf("unknown output format: %q (known: %s)", fmtStr, strings.Join(KnownFormats, ", "))
		}

		if seen[e.Format()] {
			continue
		}
		seen[e.Format()] = true
		exporters = append(exporters, e)
	}

	if len(exporters) == 0 {
		return nil, fmt.Errorf("no output format selected")
	}
	return exporters, nil
}

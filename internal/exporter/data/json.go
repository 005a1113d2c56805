package data

import (
	"encoding/json"
	"io"

	"species-matrix/internal/exporter/common"
)

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Format() string    { return "json" }
func (e *JSONExporter) Extension() string { return ".json" }

func (e *JSONExporter) Export(doc *common.Document, path string) error {
	payload := NewPayload(doc)
	return common.WriteFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(payload)
	})
}

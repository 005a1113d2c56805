package data

import (
	"fmt"
	"io"

	toon "github.com/mateuszkardas/toon-go"

	"species-matrix/internal/exporter/common"
)

// TOONExporter writes the compact token-oriented notation used for LLM-friendly dumps
type TOONExporter struct{}

func NewTOONExporter() *TOONExporter {
	return &TOONExporter{}
}

func (e *TOONExporter) Format() string    { return "toon" }
func (e *TOONExporter) Extension() string { return ".toon" }

func (e *TOONExporter) Export(doc *common.Document, path string) error {
	out, err := toon.Marshal(compact(doc), nil)
	if err != nil {
		return fmt.Errorf("failed to encode TOON: %w", err)
	}
	return common.WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	})
}

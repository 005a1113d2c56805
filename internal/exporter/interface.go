package exporter

import "species-matrix/internal/exporter/common"

// Exporter is the unified interface for all output renderings of the matrix
type Exporter interface {
	// Format is the configuration name of the rendering ("excel", "csv", ...)
	Format() string
	// Extension is the file extension written, including the dot
	Extension() string
	// Export writes doc to path; the file only appears once it is complete
	Export(doc *common.Document, path string) error
}

package html

import (
	"html/template"
	"io"

	"species-matrix/internal/coerce"
	"species-matrix/internal/exporter/common"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Data structures for the matrix template
type MatrixReportData struct {
	Title   string
	Source  string
	Date    string
	Layout  string
	Species int
	Plots   int
	Records int
	Header  []string
	Rows    []ReportRow
}

type ReportRow struct {
	Species string
	Cells   []ReportCell
}

type ReportCell struct {
	Text string
	Zero bool
}

func (e *HTMLExporter) Format() string    { return "html" }
func (e *HTMLExporter) Extension() string { return ".html" }

func (e *HTMLExporter) Export(doc *common.Document, path string) error {
	tmpl, err := template.New("matrix-report").Parse(MatrixReportTemplate)
	if err != nil {
		return err
	}

	data := buildReportData(doc)
	return common.WriteFile(path, func(w io.Writer) error {
		return tmpl.Execute(w, data)
	})
}

func buildReportData(doc *common.Document) MatrixReportData {
	m := doc.Matrix
	data := MatrixReportData{
		Title:   doc.SheetName,
		Source:  doc.Source,
		Date:    doc.Date(),
		Layout:  string(doc.Summary.Layout),
		Species: m.Len(),
		Plots:   m.Width(),
		Records: doc.Summary.Records,
		Header:  doc.Header(),
	}

	for _, row := range m.Rows() {
		r := ReportRow{Species: row.Species, Cells: make([]ReportCell, len(row.Values))}
		for j, v := range row.Values {
			r.Cells[j] = ReportCell{Text: coerce.Format(v), Zero: v == 0}
		}
		data.Rows = append(data.Rows, r)
	}
	return data
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"species-matrix/internal/exporter/common"
	"species-matrix/internal/inspect"
	"species-matrix/internal/model"
)

// RenderSummary draws the result box printed after a successful conversion
func RenderSummary(input string, summary model.Summary, outputs []string) string {
	lines := []string{
		TitleStyle.Render("Conversion complete"),
		"",
		field("Input", input),
		field("Layout", string(summary.Layout)),
		field("Species", fmt.Sprintf("%d", summary.Species)),
		field("Plots", fmt.Sprintf("%d", summary.Plots)),
		field("Raw records", fmt.Sprintf("%d", summary.Records)),
	}
	if summary.Layout == model.LayoutGrid {
		lines = append(lines, field("Tables", fmt.Sprintf("%d", summary.Tables)))
	}
	if summary.Warnings > 0 {
		lines = append(lines, LabelStyle.Render("Warnings")+WarnStyle.Render(fmt.Sprintf("%d (see log)", summary.Warnings)))
	}
	for i, out := range outputs {
		label := ""
		if i == 0 {
			label = "Saved to"
		}
		lines = append(lines, field(label, out))
	}
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderInspection draws an inspection report with its preview table
func RenderInspection(r *inspect.Report) string {
	head := []string{
		TitleStyle.Render(fmt.Sprintf("%s [%s]", r.Source, r.Sheet)),
		"",
		field("Size", fmt.Sprintf("%d rows x %d cols", r.Rows, r.Cols)),
		field("Detected layout", string(r.Layout)),
		field("Plot headers", fmt.Sprintf("%d", r.Evidence.PlotHeaders)),
		field("Table anchors", fmt.Sprintf("%d", r.Evidence.Anchors)),
	}

	var body []string
	for _, h := range r.PlotHeaders {
		if h.Recognized {
			body = append(body, fmt.Sprintf("  row %-5d %-20s -> %s (%s)", h.Row, h.Text, h.ID, h.Matcher))
		} else {
			body = append(body, WarnStyle.Render(fmt.Sprintf("  row %-5d %-20s -> not recognized", h.Row, h.Text)))
		}
	}
	for _, a := range r.Anchors {
		body = append(body, fmt.Sprintf("  anchor R%dC%d plots: %s", a.Row, a.Col, strings.Join(a.Plots, ", ")))
	}

	var sb strings.Builder
	sb.WriteString(BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head...)))
	sb.WriteString("\n")
	if len(body) > 0 {
		sb.WriteString(strings.Join(body, "\n"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(previewTable(r.Preview))
	if r.Truncated {
		sb.WriteString(LabelStyle.Render("(preview truncated)") + "\n")
	}
	return sb.String()
}

func field(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// previewTable renders rows with a 1-based row number column, aligned by display width
func previewTable(rows [][]string) string {
	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = append([]string{fmt.Sprintf("%d", i+1)}, row...)
	}
	widths := common.ColumnWidths(table)

	var sb strings.Builder
	for _, row := range table {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" │ ")
			}
			sb.WriteString(common.Pad(cell, widths[j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

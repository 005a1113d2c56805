package model

// Summary collects statistics about one processing run
type Summary struct {
	Layout   Layout
	Rows     int // Rows in the input sheet
	Plots    int // Distinct plots in the matrix
	Species  int // Distinct species in the matrix
	Records  int // Raw species rows read
	Tables   int // Grid sub-tables with data (grid layout only)
	Warnings int // Non-fatal row problems
}

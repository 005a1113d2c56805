// verify_matrix checks a generated matrix workbook: plot columns in natural order,
// species rows in code point order, and a non-negative number in every cell.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"species-matrix/internal/exporter"
	"species-matrix/internal/natsort"
)

func main() {
	sheetName := flag.String("sheet", exporter.DefaultSheetName, "Sheet holding the matrix")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("usage: verify_matrix [-sheet name] <matrix.xlsx>")
		os.Exit(2)
	}
	filename := flag.Arg(0)

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(*sheetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== MATRIX CHECK: %s ===\n", filename)
	fmt.Printf("Checking sheet: %s\n", *sheetName)
	fmt.Printf("Total rows: %d\n\n", len(rows))

	if len(rows) == 0 {
		fmt.Println("❌ FAILED: sheet is empty")
		os.Exit(1)
	}

	problems := 0
	report := func(format string, args ...interface{}) {
		problems++
		fmt.Printf("  ❌ "+format+"\n", args...)
	}

	plots := rows[0][1:]
	for i := 1; i < len(plots); i++ {
		if natsort.Compare(plots[i-1], plots[i]) >= 0 {
			report("Plot columns out of order: %q before %q", plots[i-1], plots[i])
		}
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			report("Row %d: missing species name", i+1)
			continue
		}
		if i > 1 && len(rows[i-1]) > 0 && rows[i-1][0] >= row[0] {
			report("Row %d: species %q not after %q", i+1, row[0], rows[i-1][0])
		}
		for j := range plots {
			cell := ""
			if j+1 < len(row) {
				cell = row[j+1]
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || v < 0 {
				report("Row %d (%s), plot %s: bad value %q", i+1, row[0], plots[j], cell)
			}
		}
	}

	fmt.Printf("Species: %d, Plots: %d\n", len(rows)-1, len(plots))
	if problems > 0 {
		fmt.Printf("\n❌ FAILED: %d problems\n", problems)
		os.Exit(1)
	}
	fmt.Println("\n✅ PASSED: matrix is complete and ordered")
}

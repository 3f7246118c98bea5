// Package output provides formatters for writing decoded parquet tables.
//
// Currently supported formats:
//   - CSV: Comma-separated values with a header row and a leading row index
//
// Example usage:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(tbl); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/parquet2csv/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert a table to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

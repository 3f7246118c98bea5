package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vegasq/parquet2csv/table"
)

// CSVFormatter outputs tables as CSV.
//
// The first column is an unlabeled, zero-based row index. The header row
// therefore starts with an empty cell followed by the table's column names.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as CSV
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	schema := t.Schema()

	// Write header
	header := make([]string, 0, len(schema.Columns)+1)
	header = append(header, "")
	header = append(header, schema.Names()...)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	styles := make([]columnStyle, t.Cols())
	for i := range styles {
		styles[i] = newColumnStyle(t.Column(i))
	}

	// Write rows
	record := make([]string, len(header))
	for r := 0; r < t.Rows(); r++ {
		record[0] = strconv.Itoa(r)
		for i, v := range t.Row(r) {
			record[i+1] = styles[i].format(v)
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r, err)
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

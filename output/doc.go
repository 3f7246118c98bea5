// Package output provides formatters for writing decoded parquet tables.
//
// This package defines the Formatter interface and the CSV implementation
// used by parquet2csv. Formatters work on *table.Table values produced by
// the reader package.
//
// # CSV Layout
//
// The CSV formatter writes a header row whose first cell is empty, followed
// by the column names in table order. Each data row starts with its
// zero-based row index:
//
//	,id,total
//	0,1,10.5
//	1,2,20.0
//
// Quoting is handled by encoding/csv: a field is quoted only when it
// contains the delimiter, a quote, a line break, or leading space.
//
// # Basic Usage
//
// Writing to a file:
//
//	file, err := os.Create("orders.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	if err := output.NewCSVFormatter(file).Format(tbl); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a bytes buffer to get string output:
//
//	var buf bytes.Buffer
//	if err := output.NewCSVFormatter(&buf).Format(tbl); err != nil {
//	    log.Fatal(err)
//	}
//	csvString := buf.String()
//
// # Type Handling
//
// Cells are rendered per column, so a column shares one timestamp precision
// and one integer style:
//   - nulls and NaN are written as empty fields
//   - booleans as True/False, integers in base 10, or as floats ("1.0") when
//     the column holds nulls
//   - floats in shortest round-trip form, integral values as "2.0"
//   - dates as 2006-01-02, timestamps as 2006-01-02 15:04:05 with 3, 6 or 9
//     fractional digits when any value of the column needs them and +00:00
//     for UTC-adjusted columns; naive columns holding only midnights are
//     written as dates
//   - times of day as 15:04:05 with microseconds when present
//   - repeated values as [a, b, c], groups as {'name': value} and maps as
//     [(key, value)]
package output

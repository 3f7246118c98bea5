// Package reader provides functionality for reading Apache Parquet files.
//
// It uses the segmentio/parquet-go library to read parquet files and returns
// their contents as a table.Table with one column per top-level field.
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/parquet2csv/table"
)

// readBatchSize is the number of rows requested from the parquet reader per call.
const readBatchSize = 256

// Reader reads parquet files into tables.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file    *os.File
	pqFile  *parquet.File
	leaves  []leafColumn
	columns []*fieldPlan
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
//
// Example:
//
//	reader, err := NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %s is a directory", path)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	schema := pqFile.Schema()
	leaves := describeColumns(schema)

	return &Reader{
		file:    file,
		pqFile:  pqFile,
		leaves:  leaves,
		columns: planColumns(schema, leaves, groupShapes(pqFile.Metadata().Schema)),
	}, nil
}

// NumRows returns the row count recorded in the file metadata.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// ReadTable reads all rows from the parquet file into memory.
//
// Each top-level field of the schema becomes one table column, in file
// order. Lists decode to []any, groups to table.Struct and maps to
// table.Map. The entire file is loaded into memory, so this method may not
// be suitable for very large files.
//
// Returns an error if any row fails to read.
func (r *Reader) ReadTable() (*table.Table, error) {
	tbl := table.New(r.tableSchema())

	rows := parquet.NewReader(r.pqFile)
	defer func() { _ = rows.Close() }()

	asm := newRowAssembler(len(r.leaves))
	buf := make([]parquet.Row, readBatchSize)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			if appendErr := tbl.AppendRow(asm.assemble(row, r.columns)); appendErr != nil {
				return nil, fmt.Errorf("failed to assemble row %d: %w", tbl.Rows(), appendErr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return tbl, nil
}

func (r *Reader) tableSchema() table.Schema {
	s := table.Schema{Columns: make([]table.ColumnSchema, len(r.columns))}
	for i, c := range r.columns {
		s.Columns[i] = c.schema()
	}
	return s
}

// Close closes the parquet reader and releases associated resources.
//
// Should be called when done reading to avoid resource leaks. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

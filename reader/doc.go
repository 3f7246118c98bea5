// Package reader provides functionality for reading Apache Parquet files.
//
// This package offers a simple, high-level API for decoding a parquet file
// into a table.Table. Every top-level field of the file schema becomes one
// table column and the column order of the file is preserved. Nested fields
// stay inside their top-level column.
//
// # Basic Usage
//
// Reading a parquet file:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	tbl, err := r.ReadTable()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(tbl.Schema().Names(), tbl.Rows())
//
// # Schema Introspection
//
// Listing the leaf columns of a file, with nested names in dot notation:
//
//	infos, err := reader.ExtractSchemaInfo("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, info := range infos {
//	    fmt.Printf("%s: %s\n", info.Name, info.Type)
//	}
//
// # Value Mapping
//
// Parquet values decode into plain Go values:
//   - BOOLEAN as bool, INT32/INT64 as int64 (uint64 when unsigned)
//   - FLOAT as float32, DOUBLE as float64
//   - STRING, ENUM and JSON as string; other byte arrays as []byte
//   - DATE and TIMESTAMP (and legacy INT96) as time.Time in UTC
//   - TIME as time.Duration since midnight
//   - DECIMAL as an exact decimal string, UUID as its canonical string
//   - LIST and repeated fields as []any
//   - groups as table.Struct, one value per member
//   - MAP as table.Map, entries in file order
//
// Nulls decode to nil.
//
// # Resource Management
//
// Always call Close() when done reading to release file handles:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// The package uses github.com/segmentio/parquet-go for the underlying
// parquet file operations.
package reader

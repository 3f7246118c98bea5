// Package table holds decoded tabular data in memory.
//
// A Table is an ordered set of named columns that all have the same length.
// The reader package produces tables and the output package consumes them.
package table

import (
	"errors"
	"fmt"
)

// ErrRowWidth is returned when a row does not match the schema width.
var ErrRowWidth = errors.New("row width does not match schema")

// Kind enumerates the logical type of a column.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindDate
	KindTime
	KindTimestamp
	KindDecimal
	KindUUID
	KindInt96
	KindStruct
	KindMap
)

var kindNames = [...]string{
	KindInvalid:   "INVALID",
	KindBool:      "BOOLEAN",
	KindInt:       "INT",
	KindUint:      "UINT",
	KindFloat:     "FLOAT32",
	KindDouble:    "FLOAT64",
	KindString:    "STRING",
	KindBytes:     "BYTES",
	KindDate:      "DATE",
	KindTime:      "TIME",
	KindTimestamp: "TIMESTAMP",
	KindDecimal:   "DECIMAL",
	KindUUID:      "UUID",
	KindInt96:     "INT96",
	KindStruct:    "STRUCT",
	KindMap:       "MAP",
}

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ColumnSchema describes a single column, or a field nested inside one.
type ColumnSchema struct {
	Name     string
	Kind     Kind
	Nullable bool
	// Repeated values are []any lists. Kind and Fields describe the elements.
	Repeated bool
	// AdjustedToUTC is only meaningful for KindTimestamp and KindTime.
	AdjustedToUTC bool
	// Fields holds the members of a KindStruct, or the key and value of a
	// KindMap.
	Fields []ColumnSchema
}

// Struct is the value of a KindStruct cell, one entry per schema field.
type Struct []any

// Entry is one key/value pair of a map.
type Entry struct {
	Key   any
	Value any
}

// Map is the value of a KindMap cell. Entries keep file order.
type Map []Entry

// Schema describes the ordered columns of a table.
type Schema struct {
	Columns []ColumnSchema
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column is a named sequence of values. A nil value is a null.
type Column struct {
	schema ColumnSchema
	values []any
}

// Schema returns the column description.
func (c *Column) Schema() ColumnSchema { return c.schema }

// Len returns the number of values.
func (c *Column) Len() int { return len(c.values) }

// Value returns the i-th value.
func (c *Column) Value(i int) any { return c.values[i] }

// IsNull reports whether the i-th value is null.
func (c *Column) IsNull(i int) bool { return c.values[i] == nil }

// Table is a columnar container for decoded rows.
type Table struct {
	schema Schema
	cols   []*Column
	nrows  int
}

// New creates an empty table with the given schema.
func New(s Schema) *Table {
	t := &Table{
		schema: s,
		cols:   make([]*Column, len(s.Columns)),
	}
	for i, cs := range s.Columns {
		t.cols[i] = &Column{schema: cs}
	}
	return t
}

// Schema returns the table schema.
func (t *Table) Schema() Schema { return t.schema }

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.nrows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.cols) }

// Column returns the i-th column.
func (t *Table) Column(i int) *Column { return t.cols[i] }

// AppendRow appends one value per column. The row is rejected if its width
// differs from the schema, which keeps every column the same length.
func (t *Table) AppendRow(values []any) error {
	if len(values) != len(t.cols) {
		return fmt.Errorf("%w: got %d values, want %d", ErrRowWidth, len(values), len(t.cols))
	}
	for i, c := range t.cols {
		c.values = append(c.values, values[i])
	}
	t.nrows++
	return nil
}

// Row returns a copy of the values at row r, in column order.
func (t *Table) Row(r int) []any {
	row := make([]any, len(t.cols))
	for i, c := range t.cols {
		row[i] = c.values[r]
	}
	return row
}

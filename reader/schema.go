package reader

import (
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/format"

	"github.com/vegasq/parquet2csv/table"
)

// SchemaInfo represents metadata about a single column in a Parquet file.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
}

// ExtractSchemaInfo extracts schema information from a Parquet file.
//
// Returns a slice of SchemaInfo containing metadata about each leaf column
// including name, type information, and whether the field is
// required/optional/repeated. Columns are listed in file order.
//
// For nested types, field names use dot notation (e.g., "address.street").
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	reader, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return reader.SchemaInfo(), nil
}

// SchemaInfo returns metadata about each leaf column of the open file.
func (r *Reader) SchemaInfo() []SchemaInfo {
	infos := make([]SchemaInfo, len(r.leaves))
	for i, leaf := range r.leaves {
		infos[i] = leaf.info
	}
	return infos
}

// leafColumn carries everything needed to decode values of one leaf column.
type leafColumn struct {
	info SchemaInfo
	kind table.Kind

	scale         int
	unit          time.Duration
	adjustedToUTC bool
}

// schema describes a single value of the leaf column.
func (c *leafColumn) schema(name string, nullable bool) table.ColumnSchema {
	return table.ColumnSchema{
		Name:          name,
		Kind:          c.kind,
		Nullable:      nullable,
		AdjustedToUTC: c.adjustedToUTC,
	}
}

// describeColumns classifies every leaf column of the schema in column order.
func describeColumns(schema *parquet.Schema) []leafColumn {
	paths := schema.Columns()
	leaves := make([]leafColumn, 0, len(paths))
	for _, path := range paths {
		lc, ok := schema.Lookup(path...)
		if !ok {
			continue
		}
		leaves = append(leaves, describeLeaf(schema, path, lc))
	}
	return leaves
}

func describeLeaf(schema *parquet.Schema, path []string, lc parquet.LeafColumn) leafColumn {
	node := lc.Node
	repeated := lc.MaxRepetitionLevel > 0

	var leaf leafColumn
	leaf.kind = classify(node, &leaf)
	leaf.info = SchemaInfo{
		Name:         columnName(schema, path),
		Type:         getUserFriendlyType(node, leaf.kind),
		PhysicalType: getPhysicalType(node),
		LogicalType:  getLogicalType(node),
		Required:     node.Required() && !repeated,
		Optional:     node.Optional(),
		Repeated:     repeated,
	}
	return leaf
}

// columnName joins the path with dots. A standard three-level list
// (name.list.element) is named after the list field itself.
func columnName(schema *parquet.Schema, path []string) string {
	if n := len(path); n >= 3 {
		last := path[n-1]
		if path[n-2] == "list" && (last == "element" || last == "item") {
			if group := nodeAt(schema, path[:n-1]); group != nil && group.Repeated() {
				return strings.Join(path[:n-2], ".")
			}
		}
	}
	return strings.Join(path, ".")
}

// nodeAt walks the schema tree along path. It returns nil if any segment is missing.
func nodeAt(root parquet.Node, path []string) parquet.Node {
	node := root
	for _, name := range path {
		var next parquet.Node
		for _, f := range node.Fields() {
			if f.Name() == name {
				next = f
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

// classify maps a leaf node onto a table kind, recording decimal scale and
// time units on leaf along the way.
func classify(node parquet.Node, leaf *leafColumn) table.Kind {
	t := node.Type()
	if lt := t.LogicalType(); lt != nil {
		switch {
		case lt.Decimal != nil:
			leaf.scale = int(lt.Decimal.Scale)
			return table.KindDecimal
		case lt.Date != nil:
			return table.KindDate
		case lt.Time != nil:
			leaf.unit = timeUnit(lt.Time.Unit)
			leaf.adjustedToUTC = lt.Time.IsAdjustedToUTC
			return table.KindTime
		case lt.Timestamp != nil:
			leaf.unit = timeUnit(lt.Timestamp.Unit)
			leaf.adjustedToUTC = lt.Timestamp.IsAdjustedToUTC
			return table.KindTimestamp
		case lt.UUID != nil:
			return table.KindUUID
		case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil:
			return table.KindString
		case lt.Integer != nil && !lt.Integer.IsSigned:
			return table.KindUint
		}
	}

	switch t.Kind() {
	case parquet.Boolean:
		return table.KindBool
	case parquet.Int32, parquet.Int64:
		return table.KindInt
	case parquet.Int96:
		return table.KindInt96
	case parquet.Float:
		return table.KindFloat
	case parquet.Double:
		return table.KindDouble
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.KindBytes
	default:
		return table.KindInvalid
	}
}

func timeUnit(u format.TimeUnit) time.Duration {
	switch {
	case u.Millis != nil:
		return time.Millisecond
	case u.Micros != nil:
		return time.Microsecond
	default:
		return time.Nanosecond
	}
}

// getPhysicalType returns the physical type name of a Parquet node.
func getPhysicalType(node parquet.Node) string {
	if node.Type() == nil {
		return "GROUP"
	}

	switch node.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// getLogicalType returns the logical type name of a Parquet node.
func getLogicalType(node parquet.Node) string {
	if node.Type() == nil {
		return ""
	}

	logicalType := node.Type().LogicalType()
	if logicalType == nil {
		return ""
	}

	return logicalType.String()
}

// getUserFriendlyType returns a user-friendly type name for a leaf column.
//
// Integers keep their physical width; everything else uses the table kind.
func getUserFriendlyType(node parquet.Node, kind table.Kind) string {
	switch kind {
	case table.KindInt:
		return getPhysicalType(node)
	case table.KindUint:
		return "U" + getPhysicalType(node)
	case table.KindBytes:
		return getPhysicalType(node)
	default:
		return kind.String()
	}
}

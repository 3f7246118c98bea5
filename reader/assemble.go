package reader

import (
	"strings"

	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/deprecated"
	"github.com/segmentio/parquet-go/format"

	"github.com/vegasq/parquet2csv/table"
)

// shape is the kind of value a schema node assembles into.
type shape int

const (
	shapeLeaf shape = iota
	shapeStruct
	shapeList
	shapeMap
)

// fieldPlan describes how to rebuild the value of one schema node from the
// leaf values of a row.
type fieldPlan struct {
	name     string
	shape    shape
	optional bool
	// def is the definition level at which the node is present.
	def int
	// leaf columns under the node are [first, last).
	first, last int
	leaf        *leafColumn

	// levels of the repeated node holding list elements or map entries
	entryDef int
	entryRep int

	// struct members, map key and value, or the single list element
	fields []*fieldPlan
}

// schema describes the values produced by the plan.
func (p *fieldPlan) schema() table.ColumnSchema {
	switch p.shape {
	case shapeLeaf:
		return p.leaf.schema(p.name, p.optional)
	case shapeList:
		cs := p.fields[0].schema()
		cs.Name = p.name
		cs.Nullable = p.optional
		cs.Repeated = true
		return cs
	}

	kind := table.KindStruct
	if p.shape == shapeMap {
		kind = table.KindMap
	}
	fields := make([]table.ColumnSchema, len(p.fields))
	for i, f := range p.fields {
		fields[i] = f.schema()
	}
	return table.ColumnSchema{Name: p.name, Kind: kind, Nullable: p.optional, Fields: fields}
}

type planner struct {
	leaves []leafColumn
	groups map[string]shape
	next   int
}

// planColumns builds one plan per top-level field of the schema. groups holds
// LIST and MAP annotations that the node types do not carry, keyed by path.
func planColumns(schema *parquet.Schema, leaves []leafColumn, groups map[string]shape) []*fieldPlan {
	p := &planner{leaves: leaves, groups: groups}
	fields := schema.Fields()
	plans := make([]*fieldPlan, 0, len(fields))
	for _, f := range fields {
		plans = append(plans, p.plan(f, []string{f.Name()}, 0, 0))
	}
	return plans
}

// plan builds the plan for node given the levels of its parent.
func (p *planner) plan(node parquet.Node, path []string, def, rep int) *fieldPlan {
	if node.Repeated() {
		first := p.next
		elem := p.value(node, path, def+1, rep+1)
		return &fieldPlan{
			name:     path[len(path)-1],
			shape:    shapeList,
			def:      def,
			first:    first,
			last:     p.next,
			entryDef: def + 1,
			entryRep: rep + 1,
			fields:   []*fieldPlan{elem},
		}
	}

	if node.Optional() {
		def++
	}
	fp := p.value(node, path, def, rep)
	fp.optional = node.Optional()
	return fp
}

// value builds the plan for a single occurrence of node. def and rep already
// include the node's own levels.
func (p *planner) value(node parquet.Node, path []string, def, rep int) *fieldPlan {
	fp := &fieldPlan{name: path[len(path)-1], def: def, first: p.next}

	switch {
	case node.Leaf():
		fp.shape = shapeLeaf
		if p.next < len(p.leaves) {
			fp.leaf = &p.leaves[p.next]
		} else {
			fp.leaf = &leafColumn{}
		}
		p.next++

	case p.isList(node, path):
		entry := node.Fields()[0]
		entryPath := appendPath(path, entry.Name())
		fp.shape = shapeList
		fp.entryDef, fp.entryRep = def+1, rep+1

		var elem *fieldPlan
		if inner := entry.Fields(); !entry.Leaf() && len(inner) == 1 && !isElementGroup(entry.Name(), path) {
			elem = p.plan(inner[0], appendPath(entryPath, inner[0].Name()), def+1, rep+1)
		} else {
			elem = p.value(entry, entryPath, def+1, rep+1)
		}
		fp.fields = []*fieldPlan{elem}

	case p.isMap(node, path):
		entry := node.Fields()[0]
		entryPath := appendPath(path, entry.Name())
		fp.shape = shapeMap
		fp.entryDef, fp.entryRep = def+1, rep+1

		kv := entry.Fields()
		fp.fields = []*fieldPlan{
			p.plan(kv[0], appendPath(entryPath, kv[0].Name()), def+1, rep+1),
			p.plan(kv[1], appendPath(entryPath, kv[1].Name()), def+1, rep+1),
		}

	default:
		fp.shape = shapeStruct
		for _, f := range node.Fields() {
			fp.fields = append(fp.fields, p.plan(f, appendPath(path, f.Name()), def, rep))
		}
	}

	fp.last = p.next
	return fp
}

func (p *planner) isList(node parquet.Node, path []string) bool {
	fields := node.Fields()
	if len(fields) != 1 || !fields[0].Repeated() {
		return false
	}
	if lt := node.Type().LogicalType(); lt != nil && lt.List != nil {
		return true
	}
	return p.groups[pathKey(path)] == shapeList
}

func (p *planner) isMap(node parquet.Node, path []string) bool {
	fields := node.Fields()
	if len(fields) != 1 || !fields[0].Repeated() || fields[0].Leaf() || len(fields[0].Fields()) != 2 {
		return false
	}
	if lt := node.Type().LogicalType(); lt != nil && lt.Map != nil {
		return true
	}
	return p.groups[pathKey(path)] == shapeMap
}

// isElementGroup reports whether the repeated group of a LIST is itself the
// element rather than a wrapper around it. Older writers name such groups
// "array" or "<list>_tuple".
func isElementGroup(name string, listPath []string) bool {
	return name == "array" || name == listPath[len(listPath)-1]+"_tuple"
}

// groupShapes reads LIST and MAP annotations of the file schema elements.
// Groups loaded from a file do not expose them through their node type.
func groupShapes(elements []format.SchemaElement) map[string]shape {
	shapes := make(map[string]shape)

	var walk func(i int, path []string) int
	walk = func(i int, path []string) int {
		e := &elements[i]
		if i > 0 {
			path = appendPath(path, e.Name)
		}
		if s, ok := annotatedShape(e); ok {
			shapes[pathKey(path)] = s
		}
		next := i + 1
		for c := int32(0); c < e.NumChildren && next < len(elements); c++ {
			next = walk(next, path)
		}
		return next
	}

	if len(elements) > 0 {
		walk(0, nil)
	}
	return shapes
}

func annotatedShape(e *format.SchemaElement) (shape, bool) {
	if lt := e.LogicalType; lt != nil {
		switch {
		case lt.List != nil:
			return shapeList, true
		case lt.Map != nil:
			return shapeMap, true
		}
	}
	if ct := e.ConvertedType; ct != nil {
		switch *ct {
		case deprecated.List:
			return shapeList, true
		case deprecated.Map, deprecated.MapKeyValue:
			return shapeMap, true
		}
	}
	return shapeLeaf, false
}

func appendPath(path []string, name string) []string {
	return append(path[:len(path):len(path)], name)
}

func pathKey(path []string) string {
	return strings.Join(path, "\x00")
}

// rowAssembler rebuilds the top-level values of a row from its flat leaf
// values using their repetition and definition levels.
type rowAssembler struct {
	columns [][]parquet.Value
	pos     []int
}

func newRowAssembler(numLeaves int) *rowAssembler {
	return &rowAssembler{
		columns: make([][]parquet.Value, numLeaves),
		pos:     make([]int, numLeaves),
	}
}

// assemble returns one cell per plan.
func (a *rowAssembler) assemble(row parquet.Row, plans []*fieldPlan) []any {
	for i := range a.columns {
		a.columns[i] = a.columns[i][:0]
		a.pos[i] = 0
	}
	for _, v := range row {
		if c := v.Column(); c >= 0 && c < len(a.columns) {
			a.columns[c] = append(a.columns[c], v)
		}
	}

	cells := make([]any, len(plans))
	for i, p := range plans {
		cells[i] = a.read(p)
	}
	return cells
}

func (a *rowAssembler) peek(col int) (parquet.Value, bool) {
	if col >= len(a.columns) || a.pos[col] >= len(a.columns[col]) {
		return parquet.Value{}, false
	}
	return a.columns[col][a.pos[col]], true
}

// skip consumes the single value every leaf under p holds for a null or
// empty node.
func (a *rowAssembler) skip(p *fieldPlan) {
	for c := p.first; c < p.last && c < len(a.pos); c++ {
		a.pos[c]++
	}
}

func (a *rowAssembler) read(p *fieldPlan) any {
	if p.first == p.last {
		return nil
	}
	v, ok := a.peek(p.first)
	if !ok {
		return nil
	}
	if p.optional && v.DefinitionLevel() < p.def {
		a.skip(p)
		return nil
	}

	switch p.shape {
	case shapeLeaf:
		a.pos[p.first]++
		return p.leaf.convert(v)
	case shapeStruct:
		s := make(table.Struct, len(p.fields))
		for i, f := range p.fields {
			s[i] = a.read(f)
		}
		return s
	case shapeList:
		list := []any{}
		a.entries(p, func() {
			list = append(list, a.read(p.fields[0]))
		})
		return list
	default:
		m := table.Map{}
		a.entries(p, func() {
			key := a.read(p.fields[0])
			m = append(m, table.Entry{Key: key, Value: a.read(p.fields[1])})
		})
		return m
	}
}

// entries calls next once per list element or map entry of the current value.
func (a *rowAssembler) entries(p *fieldPlan, next func()) {
	v, ok := a.peek(p.first)
	if !ok {
		return
	}
	if v.DefinitionLevel() < p.entryDef {
		a.skip(p)
		return
	}
	for {
		next()
		v, ok = a.peek(p.first)
		if !ok || v.RepetitionLevel() != p.entryRep {
			return
		}
	}
}

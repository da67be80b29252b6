// Package schema models table metadata for the pipeline builder.
//
// A Table is an immutable value: the builder never mutates a schema in
// place, it derives new Table values clause by clause. This makes the
// builder's rollback-on-error behaviour structurally free - the snapshot
// taken before a failed append is still the live schema.
package schema

import "fmt"

// Type is the semantic type of a column or expression.
type Type int

const (
	TypeUnknown Type = iota
	TypeInteger
	TypeLong
	TypeDouble
	TypeString
	TypeBoolean
	TypeDate
	TypeDateTime
)

var typeNames = map[Type]string{
	TypeInteger:  "integer",
	TypeLong:     "long",
	TypeDouble:   "double",
	TypeString:   "string",
	TypeBoolean:  "boolean",
	TypeDate:     "date",
	TypeDateTime: "datetime",
}

// String returns the catalog spelling of the type.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType maps a catalog type name to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown column type %q", s)
}

// IsNumeric reports whether the type participates in arithmetic.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeLong, TypeDouble:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether the type is a date or datetime.
func (t Type) IsTemporal() bool {
	return t == TypeDate || t == TypeDateTime
}

// Comparable reports whether two types share a value family and may
// appear as the branches of a conditional: numeric with numeric,
// string with string, temporal with temporal, boolean with boolean.
// Comparison operators are stricter and exclude booleans.
func Comparable(a, b Type) bool {
	switch {
	case a.IsNumeric() && b.IsNumeric():
		return true
	case a == TypeString && b == TypeString:
		return true
	case a.IsTemporal() && b.IsTemporal():
		return true
	case a == TypeBoolean && b == TypeBoolean:
		return true
	default:
		return false
	}
}

// numeric widening rank: integer < long < double.
var widenRank = map[Type]int{
	TypeInteger: 1,
	TypeLong:    2,
	TypeDouble:  3,
}

// Widen returns the wider of two numeric types.
// The second result is false if either type is not numeric.
func Widen(a, b Type) (Type, bool) {
	ra, okA := widenRank[a]
	rb, okB := widenRank[b]
	if !okA || !okB {
		return TypeUnknown, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

// Column is a named, typed table column. Immutable once created.
type Column struct {
	Name string
	Type Type
}

// Table is an immutable table schema: a database name, a table name and
// an ordered column list. Column order matters - select lists render
// positionally.
type Table struct {
	database string
	name     string
	columns  []Column
	index    map[string]int
}

// New builds a Table. Column names must be unique.
func New(database, name string, columns []Column) (*Table, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q in table %s.%s", c.Name, database, name)
		}
		idx[c.Name] = i
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{database: database, name: name, columns: cols, index: idx}, nil
}

// Database returns the database name.
func (t *Table) Database() string { return t.database }

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Qualified returns "<database>.<table>".
func (t *Table) Qualified() string {
	return t.database + "." + t.name
}

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.columns) }

// Columns returns a copy of the ordered column list.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the column with the given name.
func (t *Table) Lookup(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

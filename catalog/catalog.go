// Package catalog loads table schemas from CUE catalog files.
//
// A catalog file declares one database and its tables with ordered
// column lists:
//
//	database: "company"
//
//	tables: [
//		{
//			name: "employees"
//			columns: [
//				{name: "id", type: "integer"},
//				{name: "name", type: "string"},
//			]
//		},
//	]
//
// Columns are a CUE list, not a struct, because column order matters
// for positional rendering. Identifiers are NFC-normalized on load so
// schema lookups are byte-stable regardless of how the file encoded
// them. The builder does not otherwise depend on where a schema came
// from; the catalog is just one registration path.
package catalog

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/strata/schema"
)

// Catalog is a named database with a set of registered tables.
type Catalog struct {
	database string
	tables   map[string]*schema.Table
	names    []string
}

// Database returns the database name.
func (c *Catalog) Database() string { return c.database }

// Table returns the registered table with the given name.
func (c *Catalog) Table(name string) (*schema.Table, bool) {
	t, ok := c.tables[norm.NFC.String(name)]
	return t, ok
}

// TableNames returns the table names in declaration order.
func (c *Catalog) TableNames() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Load reads and compiles a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return Compile(v)
}

// Compile parses a CUE value into a Catalog.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
func Compile(v cue.Value) (*Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	dbVal := v.LookupPath(cue.ParsePath("database"))
	if !dbVal.Exists() {
		return nil, &CompileError{
			Field:   "database",
			Message: "database is required",
			Pos:     v.Pos(),
		}
	}
	db, err := dbVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	db = norm.NFC.String(db)

	cat := &Catalog{
		database: db,
		tables:   make(map[string]*schema.Table),
	}

	tablesVal := v.LookupPath(cue.ParsePath("tables"))
	if !tablesVal.Exists() {
		return nil, &CompileError{
			Field:   "tables",
			Message: "tables is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := tablesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		table, err := compileTable(db, iter.Value())
		if err != nil {
			return nil, err
		}
		if _, dup := cat.tables[table.Name()]; dup {
			return nil, &CompileError{
				Field:   "tables",
				Message: fmt.Sprintf("duplicate table %q", table.Name()),
				Pos:     iter.Value().Pos(),
			}
		}
		cat.tables[table.Name()] = table
		cat.names = append(cat.names, table.Name())
	}
	if len(cat.names) == 0 {
		return nil, &CompileError{
			Field:   "tables",
			Message: "at least one table is required",
			Pos:     v.Pos(),
		}
	}

	return cat, nil
}

// compileTable parses one table declaration.
func compileTable(db string, v cue.Value) (*schema.Table, error) {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "table name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	name = norm.NFC.String(name)

	columnsVal := v.LookupPath(cue.ParsePath("columns"))
	if !columnsVal.Exists() {
		return nil, &CompileError{
			Field:   "columns",
			Message: fmt.Sprintf("table %q has no columns", name),
			Pos:     v.Pos(),
		}
	}
	iter, err := columnsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var cols []schema.Column
	for iter.Next() {
		col, err := compileColumn(name, iter.Value())
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	table, err := schema.New(db, name, cols)
	if err != nil {
		return nil, &CompileError{
			Field:   "columns",
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return table, nil
}

// compileColumn parses one column declaration.
func compileColumn(table string, v cue.Value) (schema.Column, error) {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return schema.Column{}, &CompileError{
			Field:   "columns",
			Message: fmt.Sprintf("column of table %q has no name", table),
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return schema.Column{}, formatCUEError(err)
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return schema.Column{}, &CompileError{
			Field:   "columns",
			Message: fmt.Sprintf("column %q has no type", name),
			Pos:     v.Pos(),
		}
	}
	typeName, err := typeVal.String()
	if err != nil {
		return schema.Column{}, formatCUEError(err)
	}
	colType, err := schema.ParseType(typeName)
	if err != nil {
		return schema.Column{}, &CompileError{
			Field:   "columns",
			Message: fmt.Sprintf("column %q: %v", name, err),
			Pos:     typeVal.Pos(),
		}
	}

	return schema.Column{Name: norm.NFC.String(name), Type: colType}, nil
}

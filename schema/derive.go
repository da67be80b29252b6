package schema

// Derivation helpers produce the next schema snapshot from a validated
// clause. They assume the builder has already checked the inputs: an
// unknown name or a collision here is a builder bug, so they return a
// plain error rather than a taxonomy error.

import "fmt"

// Project returns a new Table holding the named columns in the given
// order, with their original types.
func (t *Table) Project(names []string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, ok := t.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("project: no column %q in %s", n, t.Qualified())
		}
		cols = append(cols, c)
	}
	return New(t.database, t.name, cols)
}

// Append returns a new Table with extra columns added at the end.
func (t *Table) Append(extra ...Column) (*Table, error) {
	return New(t.database, t.name, append(t.Columns(), extra...))
}

// RenameColumns returns a new Table with the mapped columns renamed in
// place, order preserved.
func (t *Table) RenameColumns(mapping map[string]string) (*Table, error) {
	cols := t.Columns()
	for i, c := range cols {
		if to, ok := mapping[c.Name]; ok {
			cols[i].Name = to
		}
	}
	return New(t.database, t.name, cols)
}

// Replace returns a new Table with an entirely new column list, keeping
// the database and table identity. Used for aggregation results.
func (t *Table) Replace(columns []Column) (*Table, error) {
	return New(t.database, t.name, columns)
}

// Concat returns a new Table combining the columns of t and other, in
// that order. The caller checks for name collisions beforehand.
func (t *Table) Concat(other *Table) (*Table, error) {
	return New(t.database, t.name, append(t.Columns(), other.Columns()...))
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employees(t *testing.T) *Table {
	t.Helper()
	table, err := New("company", "employees", []Column{
		{Name: "id", Type: TypeInteger},
		{Name: "name", Type: TypeString},
		{Name: "age", Type: TypeInteger},
		{Name: "salary", Type: TypeDouble},
	})
	require.NoError(t, err)
	return table
}

func TestNew_DuplicateColumn(t *testing.T) {
	_, err := New("company", "employees", []Column{
		{Name: "id", Type: TypeInteger},
		{Name: "id", Type: TypeLong},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "id"`)
}

func TestTable_Lookup(t *testing.T) {
	table := employees(t)

	col, ok := table.Lookup("salary")
	require.True(t, ok)
	assert.Equal(t, Column{Name: "salary", Type: TypeDouble}, col)

	_, ok = table.Lookup("missing")
	assert.False(t, ok)
	assert.True(t, table.Has("id"))
	assert.False(t, table.Has("missing"))
}

func TestTable_Qualified(t *testing.T) {
	assert.Equal(t, "company.employees", employees(t).Qualified())
}

func TestTable_ColumnsCopies(t *testing.T) {
	table := employees(t)

	cols := table.Columns()
	cols[0].Name = "mutated"

	again, ok := table.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, "id", again.Name, "mutating the returned slice must not affect the table")
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"integer", "long", "double", "string", "boolean", "date", "datetime"} {
		typ, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, name, typ.String())
	}

	_, err := ParseType("decimal")
	assert.Error(t, err)
}

func TestWiden(t *testing.T) {
	tests := []struct {
		a, b Type
		want Type
		ok   bool
	}{
		{TypeInteger, TypeInteger, TypeInteger, true},
		{TypeInteger, TypeLong, TypeLong, true},
		{TypeLong, TypeDouble, TypeDouble, true},
		{TypeDouble, TypeInteger, TypeDouble, true},
		{TypeInteger, TypeString, TypeUnknown, false},
		{TypeBoolean, TypeBoolean, TypeUnknown, false},
	}
	for _, tt := range tests {
		got, ok := Widen(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%s/%s", tt.a, tt.b)
	}
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(TypeInteger, TypeDouble))
	assert.True(t, Comparable(TypeString, TypeString))
	assert.True(t, Comparable(TypeDate, TypeDateTime))
	assert.True(t, Comparable(TypeBoolean, TypeBoolean))
	assert.False(t, Comparable(TypeString, TypeInteger))
	assert.False(t, Comparable(TypeDate, TypeLong))
}

func TestProject(t *testing.T) {
	table := employees(t)

	projected, err := table.Project([]string{"name", "id"})
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Name: "name", Type: TypeString},
		{Name: "id", Type: TypeInteger},
	}, projected.Columns(), "projection preserves requested order and original types")

	// The source table is untouched.
	assert.Equal(t, 4, table.Len())

	_, err = table.Project([]string{"missing"})
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	table := employees(t)

	extended, err := table.Append(Column{Name: "bonus", Type: TypeDouble})
	require.NoError(t, err)
	assert.Equal(t, 5, extended.Len())
	assert.Equal(t, 4, table.Len())

	_, err = table.Append(Column{Name: "id", Type: TypeLong})
	assert.Error(t, err, "appending an existing name must fail")
}

func TestRenameColumns(t *testing.T) {
	table := employees(t)

	renamed, err := table.RenameColumns(map[string]string{"name": "full_name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "full_name", "age", "salary"}, renamed.ColumnNames(), "order preserved")
	assert.True(t, table.Has("name"), "source table untouched")
}

func TestConcat(t *testing.T) {
	left := employees(t)
	right, err := New("company", "departments", []Column{
		{Name: "dept_id", Type: TypeInteger},
		{Name: "budget", Type: TypeDouble},
	})
	require.NoError(t, err)

	joined, err := left.Concat(right)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "age", "salary", "dept_id", "budget"}, joined.ColumnNames())

	_, err = left.Concat(left)
	assert.Error(t, err, "concat with colliding names must fail")
}

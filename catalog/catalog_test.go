package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/schema"
)

const companyCatalog = `
database: "company"

tables: [
	{
		name: "employees"
		columns: [
			{name: "id", type: "integer"},
			{name: "name", type: "string"},
			{name: "age", type: "integer"},
			{name: "salary", type: "double"},
		]
	},
	{
		name: "departments"
		columns: [
			{name: "dept_id", type: "integer"},
			{name: "budget", type: "double"},
		]
	},
]
`

func loadString(t *testing.T, src string) (*Catalog, error) {
	t.Helper()
	return Compile(cuecontext.New().CompileString(src))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "company.cue")
	require.NoError(t, os.WriteFile(path, []byte(companyCatalog), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "company", cat.Database())
	assert.Equal(t, []string{"employees", "departments"}, cat.TableNames())

	employees, ok := cat.Table("employees")
	require.True(t, ok)
	assert.Equal(t, "company.employees", employees.Qualified())
	assert.Equal(t, []schema.Column{
		{Name: "id", Type: schema.TypeInteger},
		{Name: "name", Type: schema.TypeString},
		{Name: "age", Type: schema.TypeInteger},
		{Name: "salary", Type: schema.TypeDouble},
	}, employees.Columns(), "column order follows the file")

	_, ok = cat.Table("missing")
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing database", `tables: [{name: "t", columns: [{name: "a", type: "integer"}]}]`, "database is required"},
		{"missing tables", `database: "db"`, "tables is required"},
		{"empty tables", `database: "db", tables: []`, "at least one table is required"},
		{"missing table name", `database: "db", tables: [{columns: [{name: "a", type: "integer"}]}]`, "table name is required"},
		{"missing columns", `database: "db", tables: [{name: "t"}]`, "has no columns"},
		{"missing column name", `database: "db", tables: [{name: "t", columns: [{type: "integer"}]}]`, "has no name"},
		{"missing column type", `database: "db", tables: [{name: "t", columns: [{name: "a"}]}]`, "has no type"},
		{"bad column type", `database: "db", tables: [{name: "t", columns: [{name: "a", type: "decimal"}]}]`, "unknown column type"},
		{
			"duplicate table",
			`database: "db", tables: [{name: "t", columns: [{name: "a", type: "integer"}]}, {name: "t", columns: [{name: "a", type: "integer"}]}]`,
			`duplicate table "t"`,
		},
		{
			"duplicate column",
			`database: "db", tables: [{name: "t", columns: [{name: "a", type: "integer"}, {name: "a", type: "long"}]}]`,
			"duplicate column",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompile_NormalizesIdentifiers(t *testing.T) {
	// "café" with a decomposed e + combining acute in the file.
	cat, err := loadString(t, "database: \"db\", tables: [{name: \"cafe\\u0301\", columns: [{name: \"a\", type: \"integer\"}]}]")
	require.NoError(t, err)

	// Lookup with the precomposed form succeeds.
	table, ok := cat.Table("café")
	require.True(t, ok)
	assert.Equal(t, "café", table.Name())
}

func TestCompile_BadSyntax(t *testing.T) {
	_, err := loadString(t, `database: "db", tables: [`)
	require.Error(t, err)
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/ir"
	"github.com/roach88/strata/schema"
)

func employees(t *testing.T) *schema.Table {
	t.Helper()
	table, err := schema.New("company", "employees", []schema.Column{
		{Name: "id", Type: schema.TypeInteger},
		{Name: "name", Type: schema.TypeString},
		{Name: "age", Type: schema.TypeInteger},
		{Name: "salary", Type: schema.TypeDouble},
		{Name: "department_id", Type: schema.TypeInteger},
		{Name: "hired", Type: schema.TypeDate},
		{Name: "active", Type: schema.TypeBoolean},
	})
	require.NoError(t, err)
	return table
}

func departments(t *testing.T) *schema.Table {
	t.Helper()
	table, err := schema.New("company", "departments", []schema.Column{
		{Name: "dept_id", Type: schema.TypeInteger},
		{Name: "dept_name", Type: schema.TypeString},
		{Name: "budget", Type: schema.TypeDouble},
	})
	require.NoError(t, err)
	return table
}

func TestNew(t *testing.T) {
	p := New(employees(t))

	assert.NotEmpty(t, p.ID())
	require.Equal(t, 1, p.Len())
	assert.Equal(t, ir.From{Database: "company", Table: "employees"}, p.Clauses()[0])
	assert.Equal(t, 7, p.Schema().Len())
}

func TestNew_DistinctIDs(t *testing.T) {
	assert.NotEqual(t, New(employees(t)).ID(), New(employees(t)).ID())
}

func TestSelect(t *testing.T) {
	p := New(employees(t))

	require.NoError(t, p.Select("name", "id"))
	assert.Equal(t, []schema.Column{
		{Name: "name", Type: schema.TypeString},
		{Name: "id", Type: schema.TypeInteger},
	}, p.Schema().Columns(), "order and types follow the request")
}

func TestSelect_Idempotent(t *testing.T) {
	p := New(employees(t))
	before := p.Schema().Columns()

	require.NoError(t, p.Select(p.Schema().ColumnNames()...))
	assert.Equal(t, before, p.Schema().Columns())
}

func TestSelect_UnknownColumn(t *testing.T) {
	p := New(employees(t))

	err := p.Select("id", "missing")
	require.Error(t, err)
	assert.True(t, IsUnknownColumn(err))
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "missing", be.Name)
}

func TestSelect_DuplicateName(t *testing.T) {
	err := New(employees(t)).Select("id", "id")
	assert.True(t, IsDuplicateAlias(err))
}

func TestFailedAppend_RollsBack(t *testing.T) {
	p := New(employees(t))
	require.NoError(t, p.Select("name", "salary"))

	// Scenario: age was dropped by the select above.
	err := p.Filter(ir.Gt(ir.Col("age"), ir.Int(30)))
	require.Error(t, err)
	assert.True(t, IsUnknownColumn(err))

	// The failed append stored nothing; the pipeline stays usable.
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"name", "salary"}, p.Schema().ColumnNames())
	require.NoError(t, p.Filter(ir.Gt(ir.Col("salary"), ir.Float(1000))))
	assert.Equal(t, 3, p.Len())
}

func TestExtend(t *testing.T) {
	p := New(employees(t))

	require.NoError(t, p.Extend(
		ir.As("bonus", ir.Mul(ir.Col("salary"), ir.Float(0.1))),
		ir.As("next_age", ir.Add(ir.Col("age"), ir.Int(1))),
	))

	bonus, ok := p.Schema().Lookup("bonus")
	require.True(t, ok)
	assert.Equal(t, schema.TypeDouble, bonus.Type, "double * double widens to double")
	nextAge, ok := p.Schema().Lookup("next_age")
	require.True(t, ok)
	assert.Equal(t, schema.TypeInteger, nextAge.Type)
	assert.Equal(t, 9, p.Schema().Len(), "extend appends to the existing schema")
}

func TestExtend_Widening(t *testing.T) {
	p := New(employees(t))

	require.NoError(t, p.Extend(ir.As("mixed", ir.Add(ir.Col("age"), ir.Long(1)))))
	col, ok := p.Schema().Lookup("mixed")
	require.True(t, ok)
	assert.Equal(t, schema.TypeLong, col.Type, "integer + long widens to long")
}

func TestExtend_DuplicateAlias(t *testing.T) {
	p := New(employees(t))

	err := p.Extend(ir.As("name", ir.Add(ir.Col("age"), ir.Int(1))))
	require.Error(t, err)
	assert.True(t, IsDuplicateAlias(err), "an existing column is never silently overwritten")

	err = p.Extend(
		ir.As("b1", ir.Int(1)),
		ir.As("b1", ir.Int(2)),
	)
	assert.True(t, IsDuplicateAlias(err), "collisions inside one extend batch are rejected")
}

func TestExtend_MissingAlias(t *testing.T) {
	err := New(employees(t)).Extend(ir.Alias{Expr: ir.Int(1)})
	assert.True(t, IsConfig(err))
}

func TestExtend_TypeError(t *testing.T) {
	err := New(employees(t)).Extend(ir.As("bad", ir.Add(ir.Col("name"), ir.Int(1))))
	assert.True(t, IsTypeMismatch(err))
}

func TestRename(t *testing.T) {
	p := New(employees(t))

	require.NoError(t, p.Rename(ir.RenamePair{From: "name", To: "full_name"}))
	assert.Equal(t, []string{"id", "full_name", "age", "salary", "department_id", "hired", "active"},
		p.Schema().ColumnNames(), "rename keeps column order")
}

func TestRename_Swap(t *testing.T) {
	p := New(employees(t))

	// id -> old_id frees "id" for age in the same clause.
	require.NoError(t, p.Rename(
		ir.RenamePair{From: "id", To: "old_id"},
		ir.RenamePair{From: "age", To: "id"},
	))
	assert.True(t, p.Schema().Has("old_id"))
	col, _ := p.Schema().Lookup("id")
	assert.Equal(t, schema.TypeInteger, col.Type)
}

func TestRename_Errors(t *testing.T) {
	t.Run("unknown source", func(t *testing.T) {
		err := New(employees(t)).Rename(ir.RenamePair{From: "missing", To: "x"})
		assert.True(t, IsUnknownColumn(err))
	})
	t.Run("duplicate source", func(t *testing.T) {
		err := New(employees(t)).Rename(
			ir.RenamePair{From: "name", To: "a"},
			ir.RenamePair{From: "name", To: "b"},
		)
		assert.True(t, IsDuplicateAlias(err))
	})
	t.Run("target hits untouched column", func(t *testing.T) {
		err := New(employees(t)).Rename(ir.RenamePair{From: "name", To: "age"})
		assert.True(t, IsDuplicateAlias(err))
	})
	t.Run("duplicate target", func(t *testing.T) {
		err := New(employees(t)).Rename(
			ir.RenamePair{From: "name", To: "x"},
			ir.RenamePair{From: "age", To: "x"},
		)
		assert.True(t, IsDuplicateAlias(err))
	})
}

func TestFilter(t *testing.T) {
	p := New(employees(t))
	before := p.Schema()

	require.NoError(t, p.Filter(ir.And(
		ir.Like(ir.Col("name"), ir.Str("A%")),
		ir.Ge(ir.Col("salary"), ir.Int(1000)),
	)))
	assert.Same(t, before, p.Schema(), "filter leaves the schema unchanged")
}

func TestFilter_NotBoolean(t *testing.T) {
	err := New(employees(t)).Filter(ir.Add(ir.Col("age"), ir.Int(1)))
	assert.True(t, IsTypeMismatch(err))
}

func TestFilter_NullChecks(t *testing.T) {
	p := New(employees(t))
	require.NoError(t, p.Filter(ir.IsNull(ir.Col("hired"))))
	require.NoError(t, p.Filter(ir.IsNotNull(ir.Col("age"))))
}

func TestFilter_Membership(t *testing.T) {
	p := New(employees(t))
	require.NoError(t, p.Filter(ir.In(ir.Col("age"), ir.Int(30), ir.Int(40))))

	err := p.Filter(ir.In(ir.Col("age"), ir.Str("x")))
	assert.True(t, IsTypeMismatch(err), "list items must share the left operand's family")

	err = p.Filter(ir.In(ir.Col("age")))
	assert.True(t, IsTypeMismatch(err), "empty membership list is rejected")
}

func TestOrderBy(t *testing.T) {
	p := New(employees(t))

	require.NoError(t, p.OrderBy(ir.Asc(ir.Col("name")), ir.Desc(ir.Col("salary"))))
	assert.Equal(t, 2, p.Len())

	err := p.OrderBy(ir.Asc(ir.Col("missing")))
	assert.True(t, IsUnknownColumn(err))

	err = p.OrderBy()
	assert.True(t, IsConfig(err))
}

func TestLimitOffset(t *testing.T) {
	p := New(employees(t))

	require.NoError(t, p.Limit(5))
	require.NoError(t, p.Offset(10))
	assert.Equal(t, []ir.Clause{
		ir.From{Database: "company", Table: "employees"},
		ir.Limit{Count: 5},
		ir.Offset{Count: 10},
	}, p.Clauses())

	assert.True(t, IsConfig(p.Limit(-1)))
	assert.True(t, IsConfig(p.Offset(-7)))
	assert.Equal(t, 3, p.Len(), "rejected scalars are not appended")
}

func TestDistinct(t *testing.T) {
	p := New(employees(t))
	require.NoError(t, p.Distinct())
	assert.Equal(t, ir.Distinct{}, p.Clauses()[1])
}

func TestJoin(t *testing.T) {
	p := New(employees(t))

	cond := ir.Eq(ir.Col("department_id"), ir.Col("dept_id"))
	require.NoError(t, p.Join(departments(t), ir.JoinLeftOuter, cond))

	assert.Equal(t, 10, p.Schema().Len(), "join concatenates both column lists")
	assert.True(t, p.Schema().Has("budget"))

	join, ok := p.Clauses()[1].(ir.Join)
	require.True(t, ok)
	assert.Equal(t, ir.JoinLeftOuter, join.Kind)
	assert.Equal(t, ir.From{Database: "company", Table: "departments"}, join.Source)
}

func TestJoin_CollisionBeforeCondition(t *testing.T) {
	p := New(employees(t))
	colliding, err := schema.New("company", "departments", []schema.Column{
		{Name: "dept_id", Type: schema.TypeInteger},
		{Name: "name", Type: schema.TypeString},
	})
	require.NoError(t, err)

	// The condition references a column that exists on neither side; a
	// collision must win because it is checked first.
	joinErr := p.Join(colliding, ir.JoinInner, ir.Gt(ir.Col("nowhere"), ir.Int(0)))
	require.Error(t, joinErr)
	assert.True(t, IsDuplicateAlias(joinErr))
	var be *BuildError
	require.ErrorAs(t, joinErr, &be)
	assert.Equal(t, "name", be.Name)
}

func TestJoin_ConditionMustBeBoolean(t *testing.T) {
	err := New(employees(t)).Join(departments(t), ir.JoinInner, ir.Add(ir.Col("id"), ir.Int(1)))
	assert.True(t, IsTypeMismatch(err))
}

func TestSnapshots(t *testing.T) {
	p := New(employees(t))
	require.NoError(t, p.Select("id", "name"))
	require.NoError(t, p.Select("name"))

	snaps := p.Snapshots()
	require.Len(t, snaps, 3)
	assert.Equal(t, 7, snaps[0].Len())
	assert.Equal(t, []string{"id", "name"}, snaps[1].ColumnNames())
	assert.Equal(t, []string{"name"}, snaps[2].ColumnNames())
}

func TestClauses_ReturnsCopy(t *testing.T) {
	p := New(employees(t))
	require.NoError(t, p.Limit(1))

	clauses := p.Clauses()
	clauses[1] = ir.Limit{Count: 99}

	assert.Equal(t, ir.Limit{Count: 1}, p.Clauses()[1])
}

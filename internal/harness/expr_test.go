package harness

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/strata/ir"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func decodeExpr(t *testing.T, src string) *ExprNode {
	t.Helper()
	var node ExprNode
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return &node
}

func TestExprNode_Leaves(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ir.Expr
	}{
		{"column", `{col: age}`, ir.Col("age")},
		{"integer", `{int: 30}`, ir.Int(30)},
		{"long", `{long: 7}`, ir.Long(7)},
		{"double", `{double: 0.5}`, ir.Float(0.5)},
		{"string", `{str: hello}`, ir.Str("hello")},
		{"boolean", `{bool: true}`, ir.Bool(true)},
		{"date", `{date: "2020-01-02"}`, ir.Date(2020, 1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeExpr(t, tt.src).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExprNode_Binary(t *testing.T) {
	node := decodeExpr(t, `
op: gt
left: {col: age}
right: {int: 30}
`)
	got, err := node.Build()
	require.NoError(t, err)
	assert.Equal(t, ir.Gt(ir.Col("age"), ir.Int(30)), got)
}

func TestExprNode_UnaryAndIn(t *testing.T) {
	isNull, err := decodeExpr(t, `{op: is_null, left: {col: age}}`).Build()
	require.NoError(t, err)
	assert.Equal(t, ir.IsNull(ir.Col("age")), isNull)

	in, err := decodeExpr(t, `
op: in
left: {col: age}
items:
  - {int: 1}
  - {int: 2}
`).Build()
	require.NoError(t, err)
	assert.Equal(t, ir.In(ir.Col("age"), ir.Int(1), ir.Int(2)), in)
}

func TestExprNode_FunctionAlias(t *testing.T) {
	node := decodeExpr(t, `
fn: avg
args: [{col: salary}]
as: avg_salary
`)
	got, err := node.Build()
	require.NoError(t, err)
	assert.Equal(t, ir.As("avg_salary", ir.Avg(ir.Col("salary"))), got)
}

func TestExprNode_Conditional(t *testing.T) {
	node := decodeExpr(t, `
if: {col: active}
then: {int: 1}
else: {int: 0}
`)
	got, err := node.Build()
	require.NoError(t, err)
	assert.Equal(t, ir.If(ir.Col("active"), ir.Int(1), ir.Int(0)), got)
}

func TestExprNode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", `{}`},
		{"unknown operator", `{op: xor, left: {col: a}, right: {col: b}}`},
		{"unknown function", `{fn: median, args: [{col: a}]}`},
		{"missing operand", `{op: gt, left: {col: a}}`},
		{"bad arity", `{fn: count, args: [{col: a}, {col: b}]}`},
		{"bad date", `{date: "01/02/2020"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeExpr(t, tt.src).Build()
			assert.Error(t, err)
		})
	}
}

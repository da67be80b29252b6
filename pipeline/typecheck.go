package pipeline

import (
	"github.com/roach88/strata/ir"
	"github.com/roach88/strata/schema"
)

// typeOf resolves an expression against a schema snapshot and returns
// its semantic type. It implements the operator and function legality
// rules:
//
//   - comparisons need both operands in one comparison family
//     (numeric-numeric, string-string, temporal-temporal)
//   - arithmetic needs numeric operands; the result widens to the
//     wider operand type (integer < long < double)
//   - logical operators need boolean operands
//   - LIKE needs a string column on the left and a string literal
//     pattern on the right
//   - IS [NOT] NULL accepts an operand of any type
//   - bitwise operators need integer or long operands
//
// clause is the clause kind being appended, for error context.
func typeOf(e ir.Expr, s *schema.Table, clause string) (schema.Type, *BuildError) {
	switch n := e.(type) {
	case ir.ColumnRef:
		col, ok := s.Lookup(n.Name)
		if !ok {
			return schema.TypeUnknown, unknownColumn(clause, n.Name)
		}
		return col.Type, nil

	case ir.Literal:
		if n.Value == nil {
			return schema.TypeUnknown, typeMismatch(clause, "literal carries no value")
		}
		return n.Value.ValueType(), nil

	case ir.Unary:
		return typeOfUnary(n, s, clause)

	case ir.Binary:
		return typeOfBinary(n, s, clause)

	case ir.FunctionCall:
		return typeOfFunction(n, s, clause)

	case ir.Alias:
		return typeOf(n.Expr, s, clause)

	case ir.Conditional:
		return typeOfConditional(n, s, clause)

	case ir.OrderSpec:
		return typeOf(n.Expr, s, clause)

	case ir.List:
		return schema.TypeUnknown, typeMismatch(clause, "list is only valid as the right side of in / not in")

	default:
		return schema.TypeUnknown, typeMismatch(clause, "expression kind %T cannot be resolved", e)
	}
}

func typeOfUnary(n ir.Unary, s *schema.Table, clause string) (schema.Type, *BuildError) {
	operand, err := typeOf(n.Operand, s, clause)
	if err != nil {
		return schema.TypeUnknown, err
	}
	switch n.Op {
	case ir.OpNot:
		if operand != schema.TypeBoolean {
			return schema.TypeUnknown, typeMismatch(clause, "not requires a boolean operand, got %s", operand)
		}
		return schema.TypeBoolean, nil
	case ir.OpIsNull, ir.OpIsNotNull:
		// Null checks accept any operand type.
		return schema.TypeBoolean, nil
	default:
		return schema.TypeUnknown, typeMismatch(clause, "operator %s is not unary", n.Op)
	}
}

func typeOfBinary(n ir.Binary, s *schema.Table, clause string) (schema.Type, *BuildError) {
	switch {
	case n.Op.IsComparison():
		left, err := typeOf(n.Left, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		right, err := typeOf(n.Right, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		if !comparisonFamily(left, right) {
			return schema.TypeUnknown, typeMismatch(clause, "cannot compare %s with %s", left, right)
		}
		return schema.TypeBoolean, nil

	case n.Op == ir.OpLike:
		return typeOfLike(n, s, clause)

	case n.Op == ir.OpIn || n.Op == ir.OpNotIn:
		return typeOfIn(n, s, clause)

	case n.Op.IsLogical():
		for _, operand := range []ir.Expr{n.Left, n.Right} {
			t, err := typeOf(operand, s, clause)
			if err != nil {
				return schema.TypeUnknown, err
			}
			if t != schema.TypeBoolean {
				return schema.TypeUnknown, typeMismatch(clause, "%s requires boolean operands, got %s", n.Op, t)
			}
		}
		return schema.TypeBoolean, nil

	case n.Op.IsArithmetic():
		left, err := typeOf(n.Left, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		right, err := typeOf(n.Right, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		wide, ok := schema.Widen(left, right)
		if !ok {
			return schema.TypeUnknown, typeMismatch(clause, "%s requires numeric operands, got %s and %s", n.Op, left, right)
		}
		return wide, nil

	case n.Op.IsBitwise():
		left, err := typeOf(n.Left, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		right, err := typeOf(n.Right, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		if !integral(left) || !integral(right) {
			return schema.TypeUnknown, typeMismatch(clause, "%s requires integer or long operands, got %s and %s", n.Op, left, right)
		}
		wide, _ := schema.Widen(left, right)
		return wide, nil

	default:
		return schema.TypeUnknown, typeMismatch(clause, "operator %s is not binary", n.Op)
	}
}

func typeOfLike(n ir.Binary, s *schema.Table, clause string) (schema.Type, *BuildError) {
	ref, ok := n.Left.(ir.ColumnRef)
	if !ok {
		return schema.TypeUnknown, typeMismatch(clause, "like requires a column reference on the left")
	}
	left, err := typeOf(ref, s, clause)
	if err != nil {
		return schema.TypeUnknown, err
	}
	if left != schema.TypeString {
		return schema.TypeUnknown, typeMismatch(clause, "like requires a string column, got %s", left)
	}
	lit, ok := n.Right.(ir.Literal)
	if !ok {
		return schema.TypeUnknown, typeMismatch(clause, "like requires a string literal pattern")
	}
	if _, ok := lit.Value.(ir.StringValue); !ok {
		return schema.TypeUnknown, typeMismatch(clause, "like pattern must be a string literal")
	}
	return schema.TypeBoolean, nil
}

func typeOfIn(n ir.Binary, s *schema.Table, clause string) (schema.Type, *BuildError) {
	left, err := typeOf(n.Left, s, clause)
	if err != nil {
		return schema.TypeUnknown, err
	}
	list, ok := n.Right.(ir.List)
	if !ok {
		return schema.TypeUnknown, typeMismatch(clause, "%s requires a literal list on the right", n.Op)
	}
	if len(list.Items) == 0 {
		return schema.TypeUnknown, typeMismatch(clause, "%s requires at least one list item", n.Op)
	}
	for _, item := range list.Items {
		lit, ok := item.(ir.Literal)
		if !ok {
			return schema.TypeUnknown, typeMismatch(clause, "%s list items must be literals", n.Op)
		}
		lt, err := typeOf(lit, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		if !comparisonFamily(left, lt) {
			return schema.TypeUnknown, typeMismatch(clause, "cannot compare %s with %s list item", left, lt)
		}
	}
	return schema.TypeBoolean, nil
}

func typeOfFunction(n ir.FunctionCall, s *schema.Table, clause string) (schema.Type, *BuildError) {
	if len(n.Args) != n.Fn.Arity() {
		return schema.TypeUnknown, typeMismatch(clause, "%s takes %d argument(s), got %d", n.Fn, n.Fn.Arity(), len(n.Args))
	}
	args := make([]schema.Type, len(n.Args))
	for i, a := range n.Args {
		t, err := typeOf(a, s, clause)
		if err != nil {
			return schema.TypeUnknown, err
		}
		args[i] = t
	}

	switch n.Fn {
	case ir.FnCount:
		return schema.TypeLong, nil
	case ir.FnSum:
		if !args[0].IsNumeric() {
			return schema.TypeUnknown, typeMismatch(clause, "sum requires a numeric argument, got %s", args[0])
		}
		return args[0], nil
	case ir.FnAvg:
		if !args[0].IsNumeric() {
			return schema.TypeUnknown, typeMismatch(clause, "avg requires a numeric argument, got %s", args[0])
		}
		return schema.TypeDouble, nil
	case ir.FnMin, ir.FnMax:
		if !args[0].IsNumeric() && args[0] != schema.TypeString && !args[0].IsTemporal() {
			return schema.TypeUnknown, typeMismatch(clause, "%s requires a comparable argument, got %s", n.Fn, args[0])
		}
		return args[0], nil
	case ir.FnModulo:
		if !integral(args[0]) || !integral(args[1]) {
			return schema.TypeUnknown, typeMismatch(clause, "modulo requires integer or long arguments, got %s and %s", args[0], args[1])
		}
		wide, _ := schema.Widen(args[0], args[1])
		return wide, nil
	case ir.FnPower:
		if !args[0].IsNumeric() || !args[1].IsNumeric() {
			return schema.TypeUnknown, typeMismatch(clause, "power requires numeric arguments, got %s and %s", args[0], args[1])
		}
		return schema.TypeDouble, nil
	default:
		return schema.TypeUnknown, typeMismatch(clause, "unknown function")
	}
}

func typeOfConditional(n ir.Conditional, s *schema.Table, clause string) (schema.Type, *BuildError) {
	test, err := typeOf(n.Test, s, clause)
	if err != nil {
		return schema.TypeUnknown, err
	}
	if test != schema.TypeBoolean {
		return schema.TypeUnknown, typeMismatch(clause, "if test must be boolean, got %s", test)
	}
	then, err := typeOf(n.Then, s, clause)
	if err != nil {
		return schema.TypeUnknown, err
	}
	els, err := typeOf(n.Else, s, clause)
	if err != nil {
		return schema.TypeUnknown, err
	}
	if wide, ok := schema.Widen(then, els); ok {
		return wide, nil
	}
	if !schema.Comparable(then, els) {
		return schema.TypeUnknown, typeMismatch(clause, "if branches must share a type family, got %s and %s", then, els)
	}
	return then, nil
}

// comparisonFamily limits comparisons to the three documented families.
// Boolean operands are deliberately excluded.
func comparisonFamily(a, b schema.Type) bool {
	switch {
	case a.IsNumeric() && b.IsNumeric():
		return true
	case a == schema.TypeString && b == schema.TypeString:
		return true
	case a.IsTemporal() && b.IsTemporal():
		return true
	default:
		return false
	}
}

func integral(t schema.Type) bool {
	return t == schema.TypeInteger || t == schema.TypeLong
}

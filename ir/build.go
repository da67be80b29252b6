package ir

import "time"

// Explicit constructor functions for expression nodes. These replace
// host-language operator sugar: each returns the IR node directly, so
// no call-context capture is ever needed to recover the predicate.

// Col references a column by name.
func Col(name string) ColumnRef { return ColumnRef{Name: name} }

// Int builds an integer literal.
func Int(v int64) Literal { return Literal{Value: IntValue(v)} }

// Long builds a long literal.
func Long(v int64) Literal { return Literal{Value: LongValue(v)} }

// Float builds a double literal.
func Float(v float64) Literal { return Literal{Value: FloatValue(v)} }

// Str builds a string literal.
func Str(v string) Literal { return Literal{Value: StringValue(v)} }

// Bool builds a boolean literal.
func Bool(v bool) Literal { return Literal{Value: BoolValue(v)} }

// Date builds a date literal.
func Date(year int, month time.Month, day int) Literal {
	return Literal{Value: DateValue{Year: year, Month: month, Day: day}}
}

// Eq builds left == right.
func Eq(left, right Expr) Binary { return Binary{Op: OpEq, Left: left, Right: right} }

// Ne builds left != right.
func Ne(left, right Expr) Binary { return Binary{Op: OpNe, Left: left, Right: right} }

// Lt builds left < right.
func Lt(left, right Expr) Binary { return Binary{Op: OpLt, Left: left, Right: right} }

// Le builds left <= right.
func Le(left, right Expr) Binary { return Binary{Op: OpLe, Left: left, Right: right} }

// Gt builds left > right.
func Gt(left, right Expr) Binary { return Binary{Op: OpGt, Left: left, Right: right} }

// Ge builds left >= right.
func Ge(left, right Expr) Binary { return Binary{Op: OpGe, Left: left, Right: right} }

// Like builds a string pattern match.
func Like(left, pattern Expr) Binary { return Binary{Op: OpLike, Left: left, Right: pattern} }

// IsNull builds a null check.
func IsNull(operand Expr) Unary { return Unary{Op: OpIsNull, Operand: operand} }

// IsNotNull builds a not-null check.
func IsNotNull(operand Expr) Unary { return Unary{Op: OpIsNotNull, Operand: operand} }

// In builds a membership test against a list of literals.
func In(left Expr, items ...Expr) Binary {
	return Binary{Op: OpIn, Left: left, Right: List{Items: items}}
}

// NotIn builds a negated membership test.
func NotIn(left Expr, items ...Expr) Binary {
	return Binary{Op: OpNotIn, Left: left, Right: List{Items: items}}
}

// And builds left && right.
func And(left, right Expr) Binary { return Binary{Op: OpAnd, Left: left, Right: right} }

// Or builds left || right.
func Or(left, right Expr) Binary { return Binary{Op: OpOr, Left: left, Right: right} }

// Not negates a boolean expression.
func Not(operand Expr) Unary { return Unary{Op: OpNot, Operand: operand} }

// Add builds left + right.
func Add(left, right Expr) Binary { return Binary{Op: OpAdd, Left: left, Right: right} }

// Sub builds left - right.
func Sub(left, right Expr) Binary { return Binary{Op: OpSub, Left: left, Right: right} }

// Mul builds left * right.
func Mul(left, right Expr) Binary { return Binary{Op: OpMul, Left: left, Right: right} }

// Div builds left / right.
func Div(left, right Expr) Binary { return Binary{Op: OpDiv, Left: left, Right: right} }

// Mod builds left % right.
func Mod(left, right Expr) Binary { return Binary{Op: OpMod, Left: left, Right: right} }

// Pow builds left raised to right.
func Pow(left, right Expr) Binary { return Binary{Op: OpPow, Left: left, Right: right} }

// BitAnd builds a bitwise conjunction.
func BitAnd(left, right Expr) Binary { return Binary{Op: OpBitAnd, Left: left, Right: right} }

// BitOr builds a bitwise disjunction.
func BitOr(left, right Expr) Binary { return Binary{Op: OpBitOr, Left: left, Right: right} }

// As names an expression.
func As(name string, expr Expr) Alias { return Alias{Name: name, Expr: expr} }

// If builds a conditional expression.
func If(test, then, els Expr) Conditional {
	return Conditional{Test: test, Then: then, Else: els}
}

// Asc tags an expression for ascending sort.
func Asc(expr Expr) OrderSpec { return OrderSpec{Direction: Ascending, Expr: expr} }

// Desc tags an expression for descending sort.
func Desc(expr Expr) OrderSpec { return OrderSpec{Direction: Descending, Expr: expr} }

// Group builds an aggregation spec from key names and selections.
func Group(keys []string, selections ...Expr) GroupSpec {
	refs := make([]ColumnRef, len(keys))
	for i, k := range keys {
		refs[i] = ColumnRef{Name: k}
	}
	return GroupSpec{Keys: refs, Selections: selections}
}

// WithHaving returns a copy of the spec with a having predicate. The
// predicate is resolved against the aggregated schema.
func (g GroupSpec) WithHaving(cond Expr) GroupSpec {
	g.Having = cond
	return g
}

// Count builds count(arg).
func Count(arg Expr) FunctionCall { return FunctionCall{Fn: FnCount, Args: []Expr{arg}} }

// Sum builds sum(arg).
func Sum(arg Expr) FunctionCall { return FunctionCall{Fn: FnSum, Args: []Expr{arg}} }

// Avg builds avg(arg).
func Avg(arg Expr) FunctionCall { return FunctionCall{Fn: FnAvg, Args: []Expr{arg}} }

// Min builds min(arg).
func Min(arg Expr) FunctionCall { return FunctionCall{Fn: FnMin, Args: []Expr{arg}} }

// Max builds max(arg).
func Max(arg Expr) FunctionCall { return FunctionCall{Fn: FnMax, Args: []Expr{arg}} }

// Modulo builds modulo(left, right).
func Modulo(left, right Expr) FunctionCall {
	return FunctionCall{Fn: FnModulo, Args: []Expr{left, right}}
}

// Power builds power(left, right).
func Power(left, right Expr) FunctionCall {
	return FunctionCall{Fn: FnPower, Args: []Expr{left, right}}
}

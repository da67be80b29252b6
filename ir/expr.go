package ir

// Expr is a sealed interface over expression nodes.
//
// Expression types:
//   - ColumnRef: reference to a column by name
//   - Literal: a typed literal value
//   - Unary: NOT, IS NULL, IS NOT NULL
//   - Binary: comparison, logical, arithmetic, bitwise combinations
//   - List: literal list forming the right side of IN / NOT IN
//   - FunctionCall: built-in function application
//   - Alias: a named expression (extend, aggregation selections)
//   - Conditional: if/then/else
//   - OrderSpec: direction-tagged sort expression
//   - GroupSpec: aggregation keys, selections and optional having
//   - JoinSpec: join condition
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// ColumnRef references a column of the current schema snapshot by name.
type ColumnRef struct {
	Name string
}

func (ColumnRef) exprNode() {}

// Literal wraps a typed literal value.
type Literal struct {
	Value Value
}

func (Literal) exprNode() {}

// Unary applies a single-operand operator.
type Unary struct {
	Op      Operator
	Operand Expr
}

func (Unary) exprNode() {}

// Binary applies a two-operand operator. For OpIn and OpNotIn the right
// operand is a List of literals.
type Binary struct {
	Op    Operator
	Left  Expr
	Right Expr
}

func (Binary) exprNode() {}

// List holds the right-hand side of IN / NOT IN.
type List struct {
	Items []Expr
}

func (List) exprNode() {}

// FunctionCall applies a built-in function to its arguments.
type FunctionCall struct {
	Fn   Function
	Args []Expr
}

func (FunctionCall) exprNode() {}

// Alias names an expression. Extend requires every item to be an Alias;
// aggregation selections may use one to name the output column.
type Alias struct {
	Name string
	Expr Expr
}

func (Alias) exprNode() {}

// Conditional is an if/then/else expression. Then and Else must share a
// comparable type family.
type Conditional struct {
	Test Expr
	Then Expr
	Else Expr
}

func (Conditional) exprNode() {}

// OrderSpec tags an expression with a sort direction.
type OrderSpec struct {
	Direction Direction
	Expr      Expr
}

func (OrderSpec) exprNode() {}

// GroupSpec describes an aggregation: grouping keys, output selections
// and an optional having predicate evaluated against the aggregated
// schema.
type GroupSpec struct {
	Keys       []ColumnRef
	Selections []Expr
	Having     Expr // nil when absent
}

func (GroupSpec) exprNode() {}

// JoinSpec carries a join condition evaluated against the concatenation
// of both sides' schemas.
type JoinSpec struct {
	Condition Expr
}

func (JoinSpec) exprNode() {}

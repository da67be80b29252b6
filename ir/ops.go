package ir

// Operator identifies a unary or binary operator.
type Operator int

const (
	OpInvalid Operator = iota

	// Comparison.
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
	OpIsNull
	OpIsNotNull
	OpIn
	OpNotIn

	// Logical.
	OpAnd
	OpOr
	OpNot

	// Arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	// Bitwise.
	OpBitAnd
	OpBitOr
)

var operatorNames = map[Operator]string{
	OpEq:        "eq",
	OpNe:        "ne",
	OpLt:        "lt",
	OpLe:        "le",
	OpGt:        "gt",
	OpGe:        "ge",
	OpLike:      "like",
	OpIsNull:    "is_null",
	OpIsNotNull: "is_not_null",
	OpIn:        "in",
	OpNotIn:     "not_in",
	OpAnd:       "and",
	OpOr:        "or",
	OpNot:       "not",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMul:       "mul",
	OpDiv:       "div",
	OpMod:       "mod",
	OpPow:       "pow",
	OpBitAnd:    "bitand",
	OpBitOr:     "bitor",
}

// String returns a stable diagnostic name for the operator.
func (op Operator) String() string {
	if s, ok := operatorNames[op]; ok {
		return s
	}
	return "op(invalid)"
}

// IsComparison reports whether the operator yields a boolean from two
// comparable operands.
func (op Operator) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// IsLogical reports whether the operator combines boolean operands.
func (op Operator) IsLogical() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

// IsArithmetic reports whether the operator combines numeric operands.
func (op Operator) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow:
		return true
	default:
		return false
	}
}

// IsBitwise reports whether the operator is a bitwise combination.
func (op Operator) IsBitwise() bool {
	return op == OpBitAnd || op == OpBitOr
}

// Function identifies a built-in function.
type Function int

const (
	FnInvalid Function = iota
	FnCount
	FnSum
	FnAvg
	FnMin
	FnMax
	FnModulo
	FnPower
)

var functionNames = map[Function]string{
	FnCount:  "count",
	FnSum:    "sum",
	FnAvg:    "avg",
	FnMin:    "min",
	FnMax:    "max",
	FnModulo: "modulo",
	FnPower:  "power",
}

// String returns the render spelling of the function.
func (fn Function) String() string {
	if s, ok := functionNames[fn]; ok {
		return s
	}
	return "fn(invalid)"
}

// IsAggregate reports whether the function aggregates a column over
// grouped rows.
func (fn Function) IsAggregate() bool {
	switch fn {
	case FnCount, FnSum, FnAvg, FnMin, FnMax:
		return true
	default:
		return false
	}
}

// Arity returns the number of arguments the function requires.
func (fn Function) Arity() int {
	switch fn {
	case FnModulo, FnPower:
		return 2
	default:
		return 1
	}
}

// Direction orders a sort specification.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns the render spelling of the direction.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// JoinKind selects the join semantics.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeftOuter
)

// String returns the render spelling of the join kind.
func (k JoinKind) String() string {
	if k == JoinLeftOuter {
		return "LEFT_OUTER"
	}
	return "INNER"
}

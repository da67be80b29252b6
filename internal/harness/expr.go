package harness

import (
	"fmt"
	"time"

	"github.com/roach88/strata/ir"
)

// ExprNode is the YAML encoding of an expression. Exactly one of the
// leaf fields (col, int, long, double, str, bool, date) or one of the
// composite fields (op, fn, if) must be set. As wraps the node in an
// alias.
type ExprNode struct {
	Col    string   `yaml:"col,omitempty"`
	Int    *int64   `yaml:"int,omitempty"`
	Long   *int64   `yaml:"long,omitempty"`
	Double *float64 `yaml:"double,omitempty"`
	Str    *string  `yaml:"str,omitempty"`
	Bool   *bool    `yaml:"bool,omitempty"`
	Date   string   `yaml:"date,omitempty"` // YYYY-MM-DD

	// Composite: operator application.
	Op    string     `yaml:"op,omitempty"` // eq, ne, lt, le, gt, ge, like, and, or, add, sub, mul, div, mod, not, is_null, is_not_null, in, not_in
	Left  *ExprNode  `yaml:"left,omitempty"`
	Right *ExprNode  `yaml:"right,omitempty"`
	Items []ExprNode `yaml:"items,omitempty"` // in / not_in list

	// Composite: function call.
	Fn   string     `yaml:"fn,omitempty"` // count, sum, avg, min, max, modulo, power
	Args []ExprNode `yaml:"args,omitempty"`

	// Composite: conditional.
	If   *ExprNode `yaml:"if,omitempty"`
	Then *ExprNode `yaml:"then,omitempty"`
	Else *ExprNode `yaml:"else,omitempty"`

	// As names the built expression.
	As string `yaml:"as,omitempty"`
}

var binaryOps = map[string]ir.Operator{
	"eq":   ir.OpEq,
	"ne":   ir.OpNe,
	"lt":   ir.OpLt,
	"le":   ir.OpLe,
	"gt":   ir.OpGt,
	"ge":   ir.OpGe,
	"like": ir.OpLike,
	"and":  ir.OpAnd,
	"or":   ir.OpOr,
	"add":  ir.OpAdd,
	"sub":  ir.OpSub,
	"mul":  ir.OpMul,
	"div":  ir.OpDiv,
	"mod":  ir.OpMod,
	"pow":  ir.OpPow,
}

var unaryOps = map[string]ir.Operator{
	"not":         ir.OpNot,
	"is_null":     ir.OpIsNull,
	"is_not_null": ir.OpIsNotNull,
}

var functions = map[string]func(args []ir.Expr) (ir.Expr, error){
	"count":  unaryFn("count", ir.Count),
	"sum":    unaryFn("sum", ir.Sum),
	"avg":    unaryFn("avg", ir.Avg),
	"min":    unaryFn("min", ir.Min),
	"max":    unaryFn("max", ir.Max),
	"modulo": binaryFn("modulo", ir.Modulo),
	"power":  binaryFn("power", ir.Power),
}

func unaryFn(name string, build func(ir.Expr) ir.FunctionCall) func([]ir.Expr) (ir.Expr, error) {
	return func(args []ir.Expr) (ir.Expr, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, got %d", name, len(args))
		}
		return build(args[0]), nil
	}
}

func binaryFn(name string, build func(ir.Expr, ir.Expr) ir.FunctionCall) func([]ir.Expr) (ir.Expr, error) {
	return func(args []ir.Expr) (ir.Expr, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d", name, len(args))
		}
		return build(args[0], args[1]), nil
	}
}

// Build converts the YAML node into expression IR.
func (n *ExprNode) Build() (ir.Expr, error) {
	e, err := n.build()
	if err != nil {
		return nil, err
	}
	if n.As != "" {
		return ir.As(n.As, e), nil
	}
	return e, nil
}

func (n *ExprNode) build() (ir.Expr, error) {
	switch {
	case n.Col != "":
		return ir.Col(n.Col), nil
	case n.Int != nil:
		return ir.Int(*n.Int), nil
	case n.Long != nil:
		return ir.Long(*n.Long), nil
	case n.Double != nil:
		return ir.Float(*n.Double), nil
	case n.Str != nil:
		return ir.Str(*n.Str), nil
	case n.Bool != nil:
		return ir.Bool(*n.Bool), nil
	case n.Date != "":
		d, err := time.Parse("2006-01-02", n.Date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", n.Date, err)
		}
		return ir.Date(d.Year(), d.Month(), d.Day()), nil
	case n.Op != "":
		return n.buildOp()
	case n.Fn != "":
		return n.buildFn()
	case n.If != nil:
		return n.buildIf()
	default:
		return nil, fmt.Errorf("empty expression node")
	}
}

func (n *ExprNode) buildOp() (ir.Expr, error) {
	if op, ok := unaryOps[n.Op]; ok {
		if n.Left == nil {
			return nil, fmt.Errorf("operator %s needs a left operand", n.Op)
		}
		operand, err := n.Left.Build()
		if err != nil {
			return nil, err
		}
		return ir.Unary{Op: op, Operand: operand}, nil
	}

	if n.Op == "in" || n.Op == "not_in" {
		if n.Left == nil || len(n.Items) == 0 {
			return nil, fmt.Errorf("operator %s needs a left operand and items", n.Op)
		}
		left, err := n.Left.Build()
		if err != nil {
			return nil, err
		}
		items := make([]ir.Expr, len(n.Items))
		for i := range n.Items {
			item, err := n.Items[i].Build()
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		if n.Op == "in" {
			return ir.In(left, items...), nil
		}
		return ir.NotIn(left, items...), nil
	}

	op, ok := binaryOps[n.Op]
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", n.Op)
	}
	if n.Left == nil || n.Right == nil {
		return nil, fmt.Errorf("operator %s needs left and right operands", n.Op)
	}
	left, err := n.Left.Build()
	if err != nil {
		return nil, err
	}
	right, err := n.Right.Build()
	if err != nil {
		return nil, err
	}
	return ir.Binary{Op: op, Left: left, Right: right}, nil
}

func (n *ExprNode) buildFn() (ir.Expr, error) {
	build, ok := functions[n.Fn]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", n.Fn)
	}
	args := make([]ir.Expr, len(n.Args))
	for i := range n.Args {
		arg, err := n.Args[i].Build()
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return build(args)
}

func (n *ExprNode) buildIf() (ir.Expr, error) {
	if n.Then == nil || n.Else == nil {
		return nil, fmt.Errorf("if needs then and else branches")
	}
	test, err := n.If.Build()
	if err != nil {
		return nil, err
	}
	then, err := n.Then.Build()
	if err != nil {
		return nil, err
	}
	els, err := n.Else.Build()
	if err != nil {
		return nil, err
	}
	return ir.If(test, then, els), nil
}

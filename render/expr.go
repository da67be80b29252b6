package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/strata/ir"
)

// Fixed token mapping for binary operators. Operators absent from this
// table (pow, bitwise and/or) are unsupported by the text backend.
var binaryTokens = map[ir.Operator]string{
	ir.OpEq:   "==",
	ir.OpNe:   "!=",
	ir.OpLt:   "<",
	ir.OpLe:   "<=",
	ir.OpGt:   ">",
	ir.OpGe:   ">=",
	ir.OpLike: "like",
	ir.OpAnd:  "&&",
	ir.OpOr:   "||",
	ir.OpAdd:  "+",
	ir.OpSub:  "-",
	ir.OpMul:  "*",
	ir.OpDiv:  "/",
	ir.OpMod:  "%",
}

// expr renders an expression node.
func expr(e ir.Expr) (string, error) {
	switch n := e.(type) {
	case ir.ColumnRef:
		return n.Name, nil

	case ir.Literal:
		return value(n.Value)

	case ir.Unary:
		return unary(n)

	case ir.Binary:
		return binary(n)

	case ir.FunctionCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			s, err := expr(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s(%s)", n.Fn, strings.Join(args, ", ")), nil

	case ir.Alias:
		inner, err := expr(n.Expr)
		if err != nil {
			return "", err
		}
		return inner + " as " + n.Name, nil

	case ir.Conditional:
		test, err := expr(n.Test)
		if err != nil {
			return "", err
		}
		then, err := expr(n.Then)
		if err != nil {
			return "", err
		}
		els, err := expr(n.Else)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("if(%s, %s, %s)", test, then, els), nil

	case ir.OrderSpec:
		inner, err := expr(n.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", n.Direction, inner), nil

	case ir.List:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			s, err := expr(item)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		return "[" + strings.Join(items, ", ") + "]", nil

	default:
		return "", unsupported("expression %T", e)
	}
}

func unary(n ir.Unary) (string, error) {
	operand, err := operand(n.Operand)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ir.OpNot:
		return "!(" + operand + ")", nil
	case ir.OpIsNull:
		return operand + " is null", nil
	case ir.OpIsNotNull:
		return operand + " is not null", nil
	default:
		return "", unsupported("unary operator %s", n.Op)
	}
}

func binary(n ir.Binary) (string, error) {
	left, err := operand(n.Left)
	if err != nil {
		return "", err
	}
	right, err := operand(n.Right)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ir.OpIn:
		return left + " in " + right, nil
	case ir.OpNotIn:
		return left + " not in " + right, nil
	}
	tok, ok := binaryTokens[n.Op]
	if !ok {
		return "", unsupported("operator %s", n.Op)
	}
	return left + " " + tok + " " + right, nil
}

// operand renders a sub-expression, parenthesizing nested binary
// operands so the output is unambiguous without operator precedence.
func operand(e ir.Expr) (string, error) {
	s, err := expr(e)
	if err != nil {
		return "", err
	}
	switch e.(type) {
	case ir.Binary:
		return "(" + s + ")", nil
	default:
		return s, nil
	}
}

// value renders a literal: integers and longs as bare digits, doubles
// as shortest round-trip decimal, strings single-quoted, dates as
// %YYYY-MM-DD%, booleans as true/false.
func value(v ir.Value) (string, error) {
	switch val := v.(type) {
	case ir.IntValue:
		return strconv.FormatInt(int64(val), 10), nil
	case ir.LongValue:
		return strconv.FormatInt(int64(val), 10), nil
	case ir.FloatValue:
		return strconv.FormatFloat(float64(val), 'g', -1, 64), nil
	case ir.StringValue:
		return "'" + escape(string(val)) + "'", nil
	case ir.BoolValue:
		return strconv.FormatBool(bool(val)), nil
	case ir.DateValue:
		return fmt.Sprintf("%%%04d-%02d-%02d%%", val.Year, int(val.Month), val.Day), nil
	default:
		return "", unsupported("literal %T", v)
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

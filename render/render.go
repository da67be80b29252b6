package render

import (
	"fmt"
	"strings"

	"github.com/roach88/strata/ir"
	"github.com/roach88/strata/pipeline"
)

// Pipeline renders a built pipeline into backend text: the From source
// followed by one suffix per clause, in clause order. Read-only; safe
// to call concurrently on a pipeline that is no longer mutated.
func Pipeline(p *pipeline.Pipeline) (string, error) {
	var sb strings.Builder
	for _, c := range p.Clauses() {
		s, err := Clause(c)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// Clause renders a single clause: the source text for From, a
// "\n-><op>(...)" suffix for everything else. Rendering a pipeline is
// the concatenation of its clause renderings.
func Clause(c ir.Clause) (string, error) {
	switch n := c.(type) {
	case ir.From:
		return n.Database + "." + n.Table, nil

	case ir.Select:
		names := make([]string, len(n.Columns))
		for i, ref := range n.Columns {
			names[i] = ref.Name
		}
		return suffix("project", "["+strings.Join(names, ", ")+"]"), nil

	case ir.Extend:
		items := make([]string, len(n.Exprs))
		for i, a := range n.Exprs {
			s, err := expr(a)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		return suffix("extend", "["+strings.Join(items, ", ")+"]"), nil

	case ir.Rename:
		items := make([]string, len(n.Pairs))
		for i, pair := range n.Pairs {
			items[i] = pair.From + " as " + pair.To
		}
		return suffix("rename", "["+strings.Join(items, ", ")+"]"), nil

	case ir.Filter:
		cond, err := expr(n.Cond)
		if err != nil {
			return "", err
		}
		return suffix("filter", cond), nil

	case ir.GroupBy:
		return groupBy(n.Spec)

	case ir.OrderBy:
		specs := make([]string, len(n.Specs))
		for i, spec := range n.Specs {
			s, err := expr(spec)
			if err != nil {
				return "", err
			}
			specs[i] = s
		}
		return suffix("sort", "["+strings.Join(specs, ", ")+"]"), nil

	case ir.Limit:
		return suffix("take", fmt.Sprintf("%d", n.Count)), nil

	case ir.Offset:
		return suffix("drop", fmt.Sprintf("%d", n.Count)), nil

	case ir.Join:
		cond, err := expr(n.Spec.Condition)
		if err != nil {
			return "", err
		}
		source := n.Source.Database + "." + n.Source.Table
		return suffix("join", fmt.Sprintf("%s, %s, %s", source, n.Kind, cond)), nil

	case ir.Distinct:
		return "", unsupported("clause ir.Distinct")

	default:
		return "", unsupported("clause %T", c)
	}
}

// groupBy renders "groupBy([keys], [selections])". A having predicate
// renders as a trailing filter suffix over the aggregated schema.
func groupBy(spec ir.GroupSpec) (string, error) {
	keys := make([]string, len(spec.Keys))
	for i, key := range spec.Keys {
		keys[i] = key.Name
	}
	sels := make([]string, len(spec.Selections))
	for i, sel := range spec.Selections {
		s, err := expr(sel)
		if err != nil {
			return "", err
		}
		sels[i] = s
	}
	out := suffix("groupBy", fmt.Sprintf("[%s], [%s]", strings.Join(keys, ", "), strings.Join(sels, ", ")))
	if spec.Having != nil {
		having, err := expr(spec.Having)
		if err != nil {
			return "", err
		}
		out += suffix("filter", having)
	}
	return out, nil
}

func suffix(op, args string) string {
	return "\n->" + op + "(" + args + ")"
}

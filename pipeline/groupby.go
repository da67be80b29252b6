package pipeline

import (
	"fmt"

	"github.com/roach88/strata/ir"
	"github.com/roach88/strata/schema"
)

// GroupBy aggregates rows by the spec's keys and replaces the schema
// with the spec's selections. A selection is either a grouping key, an
// aggregate function call over columns of the current schema, or an
// alias of one of those. Selections are named by their alias when one
// is given; bare keys keep their column name; bare aggregates are
// named positionally (col1, col2, ...).
//
// The optional having predicate is resolved against the aggregated
// schema: a reference to a column that survived neither as key nor as
// aggregate is INVALID_AGGREGATE_REF, not UNKNOWN_COLUMN.
func (p *Pipeline) GroupBy(spec ir.GroupSpec) error {
	s := p.Schema()

	keys := make(map[string]bool, len(spec.Keys))
	for _, key := range spec.Keys {
		if !s.Has(key.Name) {
			return unknownColumn("groupBy", key.Name)
		}
		keys[key.Name] = true
	}
	if len(spec.Selections) == 0 {
		return configError("groupBy", "groupBy requires at least one selection")
	}

	cols := make([]schema.Column, 0, len(spec.Selections))
	seen := make(map[string]bool, len(spec.Selections))
	for i, sel := range spec.Selections {
		col, berr := p.resolveSelection(sel, s, keys, i)
		if berr != nil {
			return berr
		}
		if seen[col.Name] {
			return duplicateAlias("groupBy", col.Name)
		}
		seen[col.Name] = true
		cols = append(cols, col)
	}

	next, err := s.Replace(cols)
	if err != nil {
		return duplicateAlias("groupBy", "")
	}

	if spec.Having != nil {
		t, berr := typeOf(spec.Having, next, "groupBy")
		if berr != nil {
			if berr.Code == ErrCodeUnknownColumn {
				return invalidAggregate("groupBy", berr.Name,
					"having references a column that is neither a grouping key nor an aggregate")
			}
			return berr
		}
		if t != schema.TypeBoolean {
			return typeMismatch("groupBy", "having must be boolean, got %s", t)
		}
	}

	p.push(ir.GroupBy{Spec: spec}, next)
	return nil
}

// resolveSelection maps one groupBy selection to an output column.
func (p *Pipeline) resolveSelection(sel ir.Expr, s *schema.Table, keys map[string]bool, pos int) (schema.Column, *BuildError) {
	switch n := sel.(type) {
	case ir.ColumnRef:
		if !s.Has(n.Name) {
			return schema.Column{}, unknownColumn("groupBy", n.Name)
		}
		if !keys[n.Name] {
			return schema.Column{}, invalidAggregate("groupBy", n.Name,
				"selection must be a grouping key or an aggregate")
		}
		col, _ := s.Lookup(n.Name)
		return col, nil

	case ir.Alias:
		inner, berr := p.resolveSelection(n.Expr, s, keys, pos)
		if berr != nil {
			return schema.Column{}, berr
		}
		inner.Name = n.Name
		return inner, nil

	case ir.FunctionCall:
		if !n.Fn.IsAggregate() {
			return schema.Column{}, invalidAggregate("groupBy", n.Fn.String(),
				"%s is not an aggregate function", n.Fn)
		}
		t, berr := typeOf(n, s, "groupBy")
		if berr != nil {
			return schema.Column{}, berr
		}
		return schema.Column{Name: fmt.Sprintf("col%d", pos+1), Type: t}, nil

	default:
		return schema.Column{}, invalidAggregate("groupBy", "",
			"selection must be a grouping key or an aggregate, got %T", sel)
	}
}

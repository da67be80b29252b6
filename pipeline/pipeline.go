package pipeline

import (
	"github.com/google/uuid"

	"github.com/roach88/strata/ir"
	"github.com/roach88/strata/schema"
)

// Pipeline is an ordered clause list over a base table, with one schema
// snapshot per clause. snapshot[0] is the base table's schema and
// snapshot[i] is the result of applying clauses[i] to snapshot[i-1].
//
// A Pipeline owns its clause and snapshot lists exclusively; clauses
// are never shared between pipelines.
type Pipeline struct {
	id        string
	clauses   []ir.Clause
	snapshots []*schema.Table
}

// New starts a pipeline from a base table. The From clause is element
// zero and the base schema is snapshot zero.
func New(base *schema.Table) *Pipeline {
	return &Pipeline{
		id:        uuid.NewString(),
		clauses:   []ir.Clause{ir.From{Database: base.Database(), Table: base.Name()}},
		snapshots: []*schema.Table{base},
	}
}

// ID returns the pipeline's identity token, used in diagnostics.
func (p *Pipeline) ID() string { return p.id }

// Len returns the number of clauses, including From.
func (p *Pipeline) Len() int { return len(p.clauses) }

// Schema returns the current schema snapshot.
func (p *Pipeline) Schema() *schema.Table {
	return p.snapshots[len(p.snapshots)-1]
}

// Clauses returns a copy of the clause list for read-only traversal.
func (p *Pipeline) Clauses() []ir.Clause {
	out := make([]ir.Clause, len(p.clauses))
	copy(out, p.clauses)
	return out
}

// Snapshots returns a copy of the schema snapshot list.
func (p *Pipeline) Snapshots() []*schema.Table {
	out := make([]*schema.Table, len(p.snapshots))
	copy(out, p.snapshots)
	return out
}

// push appends a validated clause and its resulting snapshot. Only
// called after validation has fully succeeded.
func (p *Pipeline) push(c ir.Clause, next *schema.Table) {
	p.clauses = append(p.clauses, c)
	p.snapshots = append(p.snapshots, next)
}

// Select narrows the schema to the named columns, in the given order,
// keeping their original types.
func (p *Pipeline) Select(names ...string) error {
	s := p.Schema()
	seen := make(map[string]bool, len(names))
	refs := make([]ir.ColumnRef, 0, len(names))
	for _, n := range names {
		if !s.Has(n) {
			return unknownColumn("select", n)
		}
		if seen[n] {
			return duplicateAlias("select", n)
		}
		seen[n] = true
		refs = append(refs, ir.Col(n))
	}
	next, err := s.Project(names)
	if err != nil {
		return configError("select", "%v", err)
	}
	p.push(ir.Select{Columns: refs}, next)
	return nil
}

// Extend appends one computed column per aliased expression. The new
// columns are typed by the operator rules and named by their aliases.
func (p *Pipeline) Extend(items ...ir.Alias) error {
	s := p.Schema()
	extra := make([]schema.Column, 0, len(items))
	batch := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Name == "" {
			return configError("extend", "extend expressions must be aliased")
		}
		if s.Has(item.Name) || batch[item.Name] {
			return duplicateAlias("extend", item.Name)
		}
		batch[item.Name] = true
		t, berr := typeOf(item.Expr, s, "extend")
		if berr != nil {
			return berr
		}
		extra = append(extra, schema.Column{Name: item.Name, Type: t})
	}
	next, err := s.Append(extra...)
	if err != nil {
		return configError("extend", "%v", err)
	}
	p.push(ir.Extend{Exprs: items}, next)
	return nil
}

// Rename renames existing columns in place, order preserved. Sources
// must exist and be distinct; targets must not collide with columns
// the rename does not touch, nor with each other.
func (p *Pipeline) Rename(pairs ...ir.RenamePair) error {
	s := p.Schema()
	mapping := make(map[string]string, len(pairs))
	targets := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		if !s.Has(pair.From) {
			return unknownColumn("rename", pair.From)
		}
		if _, dup := mapping[pair.From]; dup {
			return duplicateAlias("rename", pair.From)
		}
		mapping[pair.From] = pair.To
		if targets[pair.To] {
			return duplicateAlias("rename", pair.To)
		}
		targets[pair.To] = true
	}
	for target := range targets {
		if _, renamed := mapping[target]; renamed {
			continue // the old name is freed by the same rename
		}
		if s.Has(target) {
			return duplicateAlias("rename", target)
		}
	}
	next, err := s.RenameColumns(mapping)
	if err != nil {
		return duplicateAlias("rename", "")
	}
	p.push(ir.Rename{Pairs: pairs}, next)
	return nil
}

// Filter keeps rows matching cond, which must type-check to boolean
// against the current schema. Schema unchanged.
func (p *Pipeline) Filter(cond ir.Expr) error {
	s := p.Schema()
	t, berr := typeOf(cond, s, "filter")
	if berr != nil {
		return berr
	}
	if t != schema.TypeBoolean {
		return typeMismatch("filter", "filter condition must be boolean, got %s", t)
	}
	p.push(ir.Filter{Cond: cond}, s)
	return nil
}

// OrderBy sorts by the given specs. Every spec expression must resolve
// against the current schema. Schema unchanged.
func (p *Pipeline) OrderBy(specs ...ir.OrderSpec) error {
	s := p.Schema()
	if len(specs) == 0 {
		return configError("sort", "sort requires at least one spec")
	}
	for _, spec := range specs {
		if _, berr := typeOf(spec.Expr, s, "sort"); berr != nil {
			return berr
		}
	}
	p.push(ir.OrderBy{Specs: specs}, s)
	return nil
}

// Limit keeps the first n rows. n must be non-negative.
func (p *Pipeline) Limit(n int64) error {
	if n < 0 {
		return configError("take", "limit must be non-negative, got %d", n)
	}
	p.push(ir.Limit{Count: n}, p.Schema())
	return nil
}

// Offset skips the first n rows. n must be non-negative.
func (p *Pipeline) Offset(n int64) error {
	if n < 0 {
		return configError("drop", "offset must be non-negative, got %d", n)
	}
	p.push(ir.Offset{Count: n}, p.Schema())
	return nil
}

// Distinct removes duplicate rows. Schema unchanged.
func (p *Pipeline) Distinct() error {
	p.push(ir.Distinct{}, p.Schema())
	return nil
}

// Join combines the pipeline with another table. Column names of both
// sides must be disjoint - the collision check runs before the
// condition is even looked at, so callers disambiguate with Rename
// first. The condition must type-check to boolean against the
// concatenated schema.
func (p *Pipeline) Join(other *schema.Table, kind ir.JoinKind, cond ir.Expr) error {
	s := p.Schema()
	for _, c := range other.Columns() {
		if s.Has(c.Name) {
			return duplicateAlias("join", c.Name)
		}
	}
	next, err := s.Concat(other)
	if err != nil {
		return duplicateAlias("join", "")
	}
	t, berr := typeOf(cond, next, "join")
	if berr != nil {
		return berr
	}
	if t != schema.TypeBoolean {
		return typeMismatch("join", "join condition must be boolean, got %s", t)
	}
	clause := ir.Join{
		Source: ir.From{Database: other.Database(), Table: other.Name()},
		Kind:   kind,
		Spec:   ir.JoinSpec{Condition: cond},
	}
	p.push(clause, next)
	return nil
}

package ir

// Clause is a sealed interface over pipeline stages. A pipeline is an
// ordered list of clauses with a From at element zero; every clause
// carries expression IR that was validated when the clause was
// appended.
type Clause interface {
	clauseNode() // Marker method - seals interface to this package
}

// From names the base table. Always the first clause of a pipeline.
type From struct {
	Database string
	Table    string
}

func (From) clauseNode() {}

// Select narrows the schema to the named columns, in order.
type Select struct {
	Columns []ColumnRef
}

func (Select) clauseNode() {}

// Extend appends computed columns. Every item is an Alias.
type Extend struct {
	Exprs []Alias
}

func (Extend) clauseNode() {}

// RenamePair maps an existing column name to its new name.
type RenamePair struct {
	From string
	To   string
}

// Rename renames columns in place, order preserved.
type Rename struct {
	Pairs []RenamePair
}

func (Rename) clauseNode() {}

// Filter keeps rows matching a boolean condition. Schema unchanged.
type Filter struct {
	Cond Expr
}

func (Filter) clauseNode() {}

// GroupBy aggregates rows by the spec's keys and replaces the schema
// with the spec's selections.
type GroupBy struct {
	Spec GroupSpec
}

func (GroupBy) clauseNode() {}

// OrderBy sorts rows. Schema unchanged.
type OrderBy struct {
	Specs []OrderSpec
}

func (OrderBy) clauseNode() {}

// Limit keeps the first Count rows. Schema unchanged.
type Limit struct {
	Count int64
}

func (Limit) clauseNode() {}

// Offset skips the first Count rows. Schema unchanged.
type Offset struct {
	Count int64
}

func (Offset) clauseNode() {}

// Distinct removes duplicate rows. Schema unchanged.
type Distinct struct{}

func (Distinct) clauseNode() {}

// Join combines the pipeline with another table. The new schema is the
// concatenation of both column lists.
type Join struct {
	Source From
	Kind   JoinKind
	Spec   JoinSpec
}

func (Join) clauseNode() {}

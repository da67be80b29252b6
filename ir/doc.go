// Package ir defines the intermediate representation for relational
// pipelines: expression trees, literal values and pipeline clauses.
//
// Expr, Value and Clause are sealed interfaces using the marker method
// pattern. Only types in this package implement them, which keeps the
// node set closed and lets backends rely on exhaustive type switches:
//
//	switch e := expr.(type) {
//	case ir.ColumnRef:
//	    // ...
//	case ir.Binary:
//	    // ...
//	}
//
// Nodes are immutable trees with strict parent-to-child ownership - no
// back-references, no sharing between pipelines. Constructor functions
// (Col, Eq, And, Count, ...) build nodes without validating them;
// validation is schema-aware and happens when a clause carrying the
// expression is appended to a pipeline.
package ir

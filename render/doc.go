// Package render turns a built pipeline into relational-algebra text.
//
// The layout is fixed: the From clause renders as "<database>.<table>"
// and every later clause appends one "\n-><op>(<args>)" suffix, in
// clause order. That gives the backend grammar
//
//	Program := Source Suffix*
//	Source  := Identifier "." Identifier
//	Suffix  := "\n->" OpName "(" Args ")"
//
// with OpName one of project, extend, rename, filter, groupBy, sort,
// take, drop, join.
//
// Rendering is a read-only, exhaustive type switch over the clause and
// expression IR. It never validates: a pipeline that finished
// construction is renderable by contract, and the only render-time
// failure is BACKEND_UNSUPPORTED for IR this backend has no mapping
// for (Distinct, bitwise operators, pow). Concurrent renders of a
// no-longer-mutated pipeline are safe.
package render

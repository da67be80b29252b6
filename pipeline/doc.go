// Package pipeline implements the schema-aware pipeline builder.
//
// A Pipeline is an ordered clause list plus one schema snapshot per
// clause. Every append validates the clause against the current
// snapshot before anything is stored, so a pipeline that finished
// construction is guaranteed renderable: renderers never re-validate.
//
// Appends mutate the pipeline in place, but a failed append stores
// nothing - the pipeline before the failure stays valid and usable.
// Validation failures are *BuildError values carrying a stable code,
// the offending clause and the offending name.
//
// A Pipeline is not safe for concurrent mutation. Once construction is
// done it is safe for concurrent read-only renders: clauses and
// snapshots are immutable and Clauses/Snapshots return copies.
package pipeline

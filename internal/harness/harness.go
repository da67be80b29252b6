// Package harness runs YAML-defined conformance scenarios against the
// builder and the text renderer. Successful pipelines are compared
// against golden files in testdata/golden; regenerate them with
//
//	go test ./internal/harness -update
package harness

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/catalog"
	"github.com/roach88/strata/ir"
	"github.com/roach88/strata/pipeline"
	"github.com/roach88/strata/render"
)

// Run executes one scenario file.
func Run(t *testing.T, path string) {
	t.Helper()

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	cat, err := catalog.Load(filepath.Join(dir, sc.Catalog))
	require.NoError(t, err, "scenario %s: catalog", sc.Name)

	base, ok := cat.Table(sc.Table)
	require.True(t, ok, "scenario %s: no table %q in catalog", sc.Name, sc.Table)

	p := pipeline.New(base)
	for i, step := range sc.Steps {
		err := applyStep(p, cat, step)
		if err == nil {
			continue
		}
		if sc.Expect == nil {
			t.Fatalf("scenario %s (pipeline %s): step %d (%s) failed: %v", sc.Name, p.ID(), i, step.Op, err)
		}
		require.Equal(t, len(sc.Steps)-1, i,
			"scenario %s: build error before the final step: %v", sc.Name, err)
		var be *pipeline.BuildError
		require.ErrorAs(t, err, &be, "scenario %s: not a build error: %v", sc.Name, err)
		assert.Equal(t, pipeline.BuildErrorCode(sc.Expect.Error), be.Code, "scenario %s", sc.Name)
		if sc.Expect.Name != "" {
			assert.Equal(t, sc.Expect.Name, be.Name, "scenario %s", sc.Name)
		}
		return
	}
	if sc.Expect != nil {
		t.Fatalf("scenario %s (pipeline %s): expected %s, all steps succeeded", sc.Name, p.ID(), sc.Expect.Error)
	}

	text, err := render.Pipeline(p)
	require.NoError(t, err, "scenario %s: render", sc.Name)

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")))
	g.Assert(t, sc.Name, []byte(text))
}

// applyStep appends one clause to the pipeline.
func applyStep(p *pipeline.Pipeline, cat *catalog.Catalog, step Step) error {
	switch step.Op {
	case "select":
		return p.Select(step.Columns...)

	case "extend":
		items := make([]ir.Alias, len(step.Extend))
		for i, node := range step.Extend {
			e, err := node.Expr.Build()
			if err != nil {
				return err
			}
			items[i] = ir.As(node.Name, e)
		}
		return p.Extend(items...)

	case "rename":
		pairs := make([]ir.RenamePair, len(step.Rename))
		for i, node := range step.Rename {
			pairs[i] = ir.RenamePair{From: node.From, To: node.To}
		}
		return p.Rename(pairs...)

	case "filter":
		if step.Cond == nil {
			return errMissing(step.Op, "cond")
		}
		cond, err := step.Cond.Build()
		if err != nil {
			return err
		}
		return p.Filter(cond)

	case "groupBy":
		sels := make([]ir.Expr, len(step.Selections))
		for i := range step.Selections {
			sel, err := step.Selections[i].Build()
			if err != nil {
				return err
			}
			sels[i] = sel
		}
		spec := ir.Group(step.Keys, sels...)
		if step.Having != nil {
			having, err := step.Having.Build()
			if err != nil {
				return err
			}
			spec = spec.WithHaving(having)
		}
		return p.GroupBy(spec)

	case "sort":
		specs := make([]ir.OrderSpec, len(step.Sort))
		for i, node := range step.Sort {
			e, err := node.Expr.Build()
			if err != nil {
				return err
			}
			if node.Desc {
				specs[i] = ir.Desc(e)
			} else {
				specs[i] = ir.Asc(e)
			}
		}
		return p.OrderBy(specs...)

	case "take":
		if step.Count == nil {
			return errMissing(step.Op, "count")
		}
		return p.Limit(*step.Count)

	case "drop":
		if step.Count == nil {
			return errMissing(step.Op, "count")
		}
		return p.Offset(*step.Count)

	case "distinct":
		return p.Distinct()

	case "join":
		other, ok := cat.Table(step.Table)
		if !ok {
			return errMissing(step.Op, "table "+step.Table)
		}
		kind := ir.JoinInner
		if step.Kind == "left" {
			kind = ir.JoinLeftOuter
		}
		if step.Cond == nil {
			// Collision checks run before the condition is even looked
			// at, so a scenario may omit it to probe that ordering.
			return p.Join(other, kind, ir.Bool(true))
		}
		cond, err := step.Cond.Build()
		if err != nil {
			return err
		}
		return p.Join(other, kind, cond)

	default:
		return errMissing("step", "known op, got "+step.Op)
	}
}

type missingError struct{ op, what string }

func (e missingError) Error() string {
	return "step " + e.op + ": missing " + e.what
}

func errMissing(op, what string) error {
	return missingError{op: op, what: what}
}

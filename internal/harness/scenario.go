package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test for the builder and renderer.
// A scenario loads a catalog, builds a pipeline step by step and then
// either expects a build error on the final step or compares the
// rendered text against a golden file.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is the path to the CUE catalog file, relative to the
	// scenario file location.
	Catalog string `yaml:"catalog"`

	// Table names the base table within the catalog.
	Table string `yaml:"table"`

	// Steps are the clause appends, applied in order.
	Steps []Step `yaml:"steps"`

	// Expect, when set, asserts that the final step fails with the
	// given build error instead of comparing rendered output.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// Step describes one clause append. Op selects the clause kind; the
// other fields carry its arguments.
type Step struct {
	// Op is one of: select, extend, rename, filter, groupBy, sort,
	// take, drop, distinct, join.
	Op string `yaml:"op"`

	// Columns lists column names (select).
	Columns []string `yaml:"columns,omitempty"`

	// Extend lists aliased expressions (extend).
	Extend []AliasNode `yaml:"extend,omitempty"`

	// Rename lists from/to pairs (rename).
	Rename []RenameNode `yaml:"rename,omitempty"`

	// Cond is the condition expression (filter, join).
	Cond *ExprNode `yaml:"cond,omitempty"`

	// Keys and Selections describe an aggregation (groupBy).
	Keys       []string   `yaml:"keys,omitempty"`
	Selections []ExprNode `yaml:"selections,omitempty"`
	Having     *ExprNode  `yaml:"having,omitempty"`

	// Sort lists direction-tagged expressions (sort).
	Sort []SortNode `yaml:"sort,omitempty"`

	// Count is the row count (take, drop).
	Count *int64 `yaml:"count,omitempty"`

	// Table and Kind describe the other side of a join.
	Table string `yaml:"table,omitempty"`
	Kind  string `yaml:"kind,omitempty"` // "inner" (default) or "left"
}

// AliasNode is a named expression in an extend step.
type AliasNode struct {
	Name string   `yaml:"name"`
	Expr ExprNode `yaml:"expr"`
}

// RenameNode is one from/to pair in a rename step.
type RenameNode struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// SortNode is one sort spec: an expression plus a direction.
type SortNode struct {
	Expr ExprNode `yaml:"expr"`
	Desc bool     `yaml:"desc,omitempty"`
}

// ExpectClause asserts a build error on the final step.
type ExpectClause struct {
	// Error is the expected BuildError code, e.g. "UNKNOWN_COLUMN".
	Error string `yaml:"error"`

	// Name, when set, is the expected offending column or alias name.
	Name string `yaml:"name,omitempty"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if sc.Catalog == "" || sc.Table == "" {
		return nil, fmt.Errorf("scenario %s: catalog and table are required", sc.Name)
	}
	return &sc, nil
}

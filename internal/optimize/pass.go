// Package optimize implements Thorn's optimization pipeline (spec.md
// §4.6, §4.7): a pluggable, dependency-ordered set of AST-to-AST rewrite
// passes run between parsing and interpretation. The teacher (tunaq) has
// no optimizer, so the pipeline's scheduling shape is grounded instead on
// its internal/ictiobus grammar-analysis packages: build a graph over
// named entities, topologically order it, run phases over it, adapted
// from LR automaton/CFG construction to AST pass scheduling.
package optimize

import "github.com/ThornLang/thorn/internal/ast"

// Level is Thorn's ordered optimization level (spec.md §4.6): each level
// includes every pass activated by the levels below it.
type Level int

const (
	O0 Level = iota
	O1
	O2
	O3
)

// Includes reports whether a pass whose minimum level is minimum runs
// when the pipeline is configured at l.
func (l Level) Includes(minimum Level) bool { return minimum <= l }

// PassType buckets a pass for the framework's stable-partition step
// (spec.md §4.6): every Analysis pass runs before every Transformation
// pass, which runs before every Cleanup pass.
type PassType int

const (
	Analysis PassType = iota
	Transformation
	Cleanup
)

// AnalysisCache holds results Analysis passes compute for Transformation
// and Cleanup passes to consume. A typed struct of optional slots rather
// than a string-keyed map, since Go's static typing makes a heterogeneous
// map an unnecessary detour for a fixed, known set of analyses.
type AnalysisCache struct {
	CFG        *ControlFlowGraph
	Loops      []NaturalLoop
	Reachable  map[BlockID]bool
}

func NewAnalysisCache() *AnalysisCache { return &AnalysisCache{} }

// Context carries a pipeline run's configuration: the selected level, a
// debug flag, per-pass options, and the analysis cache (spec.md §4.6).
type Context struct {
	Level  Level
	Debug  bool
	Config map[string]interface{}

	Analysis *AnalysisCache

	// Validate, when true, checks a pass's output for a nil top-level
	// statement before running the next pass (spec.md §4.6 step 4); a nil
	// slot inside a statement is not detected (see validate).
	Validate bool
}

// NewContext builds a Context for level with an empty config map and a
// fresh analysis cache.
func NewContext(level Level) *Context {
	return &Context{Level: level, Config: make(map[string]interface{}), Analysis: NewAnalysisCache()}
}

// IntConfig reads a per-pass integer option, falling back to def when the
// key is unset or holds a non-int value.
func (c *Context) IntConfig(key string, def int) int {
	if v, ok := c.Config[key]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return def
}

// Pass is one AST-to-AST rewriter (spec.md §4.6). Dependencies names
// other passes (by Name()) that must run before this one when both are
// selected at the active level.
type Pass interface {
	Name() string
	Type() PassType
	MinimumLevel() Level
	Dependencies() []string
	Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error)
}

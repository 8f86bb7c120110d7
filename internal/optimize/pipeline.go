package optimize

import (
	"fmt"
	"sort"

	"github.com/ThornLang/thorn/internal/ast"
)

// Pipeline registers passes under unique names and runs a level-selected,
// dependency-ordered subset of them against an AST (spec.md §4.6).
type Pipeline struct {
	passes map[string]Pass
	order  []string // registration order, for deterministic iteration
}

func NewPipeline() *Pipeline {
	return &Pipeline{passes: make(map[string]Pass)}
}

// Register adds pass to the pipeline. Names must be unique; a duplicate
// name is a programming error, not a runtime condition callers should
// recover from, so it panics.
func (p *Pipeline) Register(pass Pass) {
	if _, exists := p.passes[pass.Name()]; exists {
		panic(fmt.Sprintf("optimize: duplicate pass name %q", pass.Name()))
	}
	p.passes[pass.Name()] = pass
	p.order = append(p.order, pass.Name())
}

// Optimize selects every registered pass whose MinimumLevel is included
// by ctx.Level, topologically orders them by declared Dependencies,
// stable-partitions the result into Analysis -> Transformation -> Cleanup
// groups, and runs them in that order against stmts (spec.md §4.6 steps
// 1-4).
func (p *Pipeline) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	selected := p.selectPasses(ctx.Level)
	ordered, err := topoSort(selected)
	if err != nil {
		return nil, err
	}
	scheduled := stablePartition(ordered)

	for _, pass := range scheduled {
		var err error
		stmts, err = pass.Optimize(stmts, ctx)
		if err != nil {
			return nil, fmt.Errorf("optimize pass %q: %w", pass.Name(), err)
		}
		if ctx.Validate {
			if verr := validate(stmts); verr != nil {
				return nil, fmt.Errorf("optimize pass %q produced an invalid tree: %w", pass.Name(), verr)
			}
		}
	}
	return stmts, nil
}

func (p *Pipeline) selectPasses(level Level) []Pass {
	var out []Pass
	for _, name := range p.order {
		pass := p.passes[name]
		if level.Includes(pass.MinimumLevel()) {
			out = append(out, pass)
		}
	}
	return out
}

// topoSort orders passes by Kahn's algorithm over their declared
// Dependencies, breaking ties alphabetically for a deterministic result
// (spec.md §4.6 step 2). A dependency that isn't among the selected
// passes is ignored rather than treated as an error, since a pass may
// name a dependency that only exists at a higher optimization level.
func topoSort(passes []Pass) ([]Pass, error) {
	byName := make(map[string]Pass, len(passes))
	inDegree := make(map[string]int, len(passes))
	dependents := make(map[string][]string)

	for _, pass := range passes {
		byName[pass.Name()] = pass
		inDegree[pass.Name()] = 0
	}
	for _, pass := range passes {
		for _, dep := range pass.Dependencies() {
			if _, ok := byName[dep]; !ok {
				continue
			}
			inDegree[pass.Name()]++
			dependents[dep] = append(dependents[dep], pass.Name())
		}
	}

	var ready []string
	for _, pass := range passes {
		if inDegree[pass.Name()] == 0 {
			ready = append(ready, pass.Name())
		}
	}
	sort.Strings(ready)

	var orderedNames []string
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		orderedNames = append(orderedNames, name)

		next := append([]string{}, dependents[name]...)
		sort.Strings(next)
		for _, dep := range next {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}

	if len(orderedNames) != len(passes) {
		return nil, fmt.Errorf("optimize: dependency cycle detected among passes")
	}

	out := make([]Pass, len(orderedNames))
	for i, name := range orderedNames {
		out[i] = byName[name]
	}
	return out, nil
}

func insertSorted(s []string, v string) []string {
	i := sort.SearchStrings(s, v)
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// stablePartition groups already topologically-sorted passes into
// Analysis, Transformation, Cleanup buckets, preserving each pass's
// relative order within its bucket (spec.md §4.6 step 3).
func stablePartition(ordered []Pass) []Pass {
	var analysisPasses, transform, cleanup []Pass
	for _, pass := range ordered {
		switch pass.Type() {
		case Analysis:
			analysisPasses = append(analysisPasses, pass)
		case Transformation:
			transform = append(transform, pass)
		case Cleanup:
			cleanup = append(cleanup, pass)
		}
	}
	out := make([]Pass, 0, len(ordered))
	out = append(out, analysisPasses...)
	out = append(out, transform...)
	out = append(out, cleanup...)
	return out
}

// validate fails if a pass left a nil top-level statement in stmts.
// ast.Walk does not call the visitor for nil children, so a nil slot
// inside a statement is not reported.
func validate(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if s == nil {
			return fmt.Errorf("nil top-level statement")
		}
		var bad error
		ast.Walk(s, func(n ast.Node) bool {
			if n == nil {
				bad = fmt.Errorf("nil node reached during validation")
				return false
			}
			return true
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

// DefaultPipeline registers Thorn's built-in optimization passes and
// returns a ready-to-run Pipeline (spec.md §4.7).
func DefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.Register(ConstantFolding{})
	p.Register(ControlFlowAnalysis{})
	p.Register(CopyPropagation{})
	p.Register(DeadStoreElimination{})
	p.Register(DeadCodeElimination{})
	p.Register(FunctionInlining{})
	p.Register(LoopOptimization{})
	return p
}

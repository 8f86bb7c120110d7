package optimize

import "github.com/ThornLang/thorn/internal/ast"

// BlockID indexes a ControlFlowGraph's Blocks slice.
type BlockID int

// BasicBlock is a maximal straight-line run of statements with a single
// entry and a set of successor blocks.
type BasicBlock struct {
	ID    BlockID
	Stmts []ast.Stmt
	Succs []BlockID
}

// ControlFlowGraph is the basic-block graph built over a statement list
// (spec.md §4.7's control-flow analysis pass).
type ControlFlowGraph struct {
	Blocks []*BasicBlock
	Entry  BlockID
	Exit   BlockID
}

// NaturalLoop is a loop detected from a DFS back-edge: Header is the
// loop's entry block, Latch is the block whose edge back to Header closed
// the cycle, and Blocks is every block that can reach Latch without
// leaving the loop.
type NaturalLoop struct {
	Header BlockID
	Latch  BlockID
	Blocks map[BlockID]bool
}

// BuildCFG constructs the control-flow graph of stmts (spec.md §4.7).
func BuildCFG(stmts []ast.Stmt) *ControlFlowGraph {
	g := &ControlFlowGraph{}
	entry := g.newBlock()
	g.Entry = entry
	exit := g.newBlock()
	g.Exit = exit

	last := g.buildStmts(stmts, entry)
	if last >= 0 {
		g.connect(last, exit)
	}
	return g
}

func (g *ControlFlowGraph) newBlock() BlockID {
	id := BlockID(len(g.Blocks))
	g.Blocks = append(g.Blocks, &BasicBlock{ID: id})
	return id
}

func (g *ControlFlowGraph) connect(from, to BlockID) {
	g.Blocks[from].Succs = append(g.Blocks[from].Succs, to)
}

// buildStmts appends stmts' control flow starting at cur, returning the
// block subsequent statements fall through to, or -1 if every path out of
// stmts returns or throws.
func (g *ControlFlowGraph) buildStmts(stmts []ast.Stmt, cur BlockID) BlockID {
	for _, s := range stmts {
		if cur < 0 {
			return -1
		}
		switch st := s.(type) {
		case *ast.Block:
			cur = g.buildStmts(st.Statements, cur)
		case *ast.If:
			g.Blocks[cur].Stmts = append(g.Blocks[cur].Stmts, s)
			thenBlock := g.newBlock()
			g.connect(cur, thenBlock)
			thenEnd := g.buildStmts([]ast.Stmt{st.Then}, thenBlock)

			merge := g.newBlock()
			if thenEnd >= 0 {
				g.connect(thenEnd, merge)
			}
			if st.Else != nil {
				elseBlock := g.newBlock()
				g.connect(cur, elseBlock)
				elseEnd := g.buildStmts([]ast.Stmt{st.Else}, elseBlock)
				if elseEnd >= 0 {
					g.connect(elseEnd, merge)
				}
			} else {
				g.connect(cur, merge)
			}
			cur = merge
		case *ast.While:
			g.Blocks[cur].Stmts = append(g.Blocks[cur].Stmts, s)
			cond := g.newBlock()
			g.connect(cur, cond)
			body := g.newBlock()
			g.connect(cond, body)
			bodyEnd := g.buildStmts([]ast.Stmt{st.Body}, body)
			if bodyEnd >= 0 {
				g.connect(bodyEnd, cond)
			}
			after := g.newBlock()
			g.connect(cond, after)
			cur = after
		case *ast.For:
			g.Blocks[cur].Stmts = append(g.Blocks[cur].Stmts, s)
			head := g.newBlock()
			g.connect(cur, head)
			body := g.newBlock()
			g.connect(head, body)
			bodyEnd := g.buildStmts([]ast.Stmt{st.Body}, body)
			if bodyEnd >= 0 {
				g.connect(bodyEnd, head)
			}
			after := g.newBlock()
			g.connect(head, after)
			cur = after
		case *ast.Return, *ast.Throw:
			g.Blocks[cur].Stmts = append(g.Blocks[cur].Stmts, s)
			return -1
		case *ast.TryCatch:
			g.Blocks[cur].Stmts = append(g.Blocks[cur].Stmts, s)
			tryBlock := g.newBlock()
			g.connect(cur, tryBlock)
			tryEnd := g.buildStmts(st.Try.Statements, tryBlock)
			catchBlock := g.newBlock()
			g.connect(cur, catchBlock) // a fault anywhere in try may jump to catch
			catchEnd := g.buildStmts(st.Catch.Statements, catchBlock)

			merge := g.newBlock()
			if tryEnd >= 0 {
				g.connect(tryEnd, merge)
			}
			if catchEnd >= 0 {
				g.connect(catchEnd, merge)
			}
			cur = merge
		default:
			g.Blocks[cur].Stmts = append(g.Blocks[cur].Stmts, s)
		}
	}
	return cur
}

// Reachable returns the set of block IDs reachable from g.Entry.
func (g *ControlFlowGraph) Reachable() map[BlockID]bool {
	seen := make(map[BlockID]bool)
	var dfs func(BlockID)
	dfs = func(b BlockID) {
		if seen[b] {
			return
		}
		seen[b] = true
		for _, s := range g.Blocks[b].Succs {
			dfs(s)
		}
	}
	dfs(g.Entry)
	return seen
}

// FindNaturalLoops runs a DFS from Entry, records a back-edge whenever it
// reaches a block still on the current DFS stack, and collects each
// loop's body by walking predecessors backward from the latch up to the
// header (spec.md §4.7).
func (g *ControlFlowGraph) FindNaturalLoops() []NaturalLoop {
	onStack := make(map[BlockID]bool)
	visited := make(map[BlockID]bool)
	var loops []NaturalLoop

	var dfs func(BlockID)
	dfs = func(b BlockID) {
		visited[b] = true
		onStack[b] = true
		for _, s := range g.Blocks[b].Succs {
			if onStack[s] {
				loops = append(loops, g.collectLoop(s, b))
				continue
			}
			if !visited[s] {
				dfs(s)
			}
		}
		onStack[b] = false
	}
	dfs(g.Entry)
	return loops
}

func (g *ControlFlowGraph) collectLoop(header, latch BlockID) NaturalLoop {
	preds := g.predecessors()
	blocks := map[BlockID]bool{header: true, latch: true}
	stack := []BlockID{latch}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range preds[b] {
			if !blocks[p] {
				blocks[p] = true
				stack = append(stack, p)
			}
		}
	}
	return NaturalLoop{Header: header, Latch: latch, Blocks: blocks}
}

func (g *ControlFlowGraph) predecessors() map[BlockID][]BlockID {
	preds := make(map[BlockID][]BlockID)
	for _, b := range g.Blocks {
		for _, s := range b.Succs {
			preds[s] = append(preds[s], b.ID)
		}
	}
	return preds
}

// ControlFlowAnalysis builds the program's control-flow graph and
// populates ctx.Analysis for later passes to consume (spec.md §4.7). It
// never rewrites the tree itself.
type ControlFlowAnalysis struct{}

func (ControlFlowAnalysis) Name() string          { return "control-flow-analysis" }
func (ControlFlowAnalysis) Type() PassType         { return Analysis }
func (ControlFlowAnalysis) MinimumLevel() Level    { return O1 }
func (ControlFlowAnalysis) Dependencies() []string { return nil }

func (ControlFlowAnalysis) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	cfg := BuildCFG(stmts)
	ctx.Analysis.CFG = cfg
	ctx.Analysis.Loops = cfg.FindNaturalLoops()
	ctx.Analysis.Reachable = cfg.Reachable()
	return stmts, nil
}

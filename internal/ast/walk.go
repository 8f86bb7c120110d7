package ast

// Visitor is called once per node in pre-order by Walk. Returning false
// skips that node's children.
type Visitor func(n Node) bool

// Walk performs a generic pre-order traversal of any Stmt or Expr, calling
// visit at every node it reaches (including n itself). This is the single
// fold every optimizer pass and debug dump shares, replacing a
// visitXStmt/visitXExpr method pair per node kind per consumer.
func Walk(n Node, visit Visitor) {
	if n == nil || isNilNode(n) {
		return
	}
	if !visit(n) {
		return
	}

	switch node := n.(type) {
	case *Block:
		for _, s := range node.Statements {
			Walk(s, visit)
		}
	case *Expression:
		Walk(node.Expr, visit)
	case *Function:
		for _, p := range node.Params {
			Walk(p.Type, visit)
		}
		Walk(node.ReturnType, visit)
		for _, s := range node.Body {
			Walk(s, visit)
		}
	case *If:
		Walk(node.Condition, visit)
		Walk(node.Then, visit)
		Walk(node.Else, visit)
	case *Return:
		Walk(node.Value, visit)
	case *Throw:
		Walk(node.Value, visit)
	case *Var:
		Walk(node.Type, visit)
		Walk(node.Init, visit)
	case *While:
		Walk(node.Condition, visit)
		Walk(node.Body, visit)
	case *For:
		Walk(node.Iterable, visit)
		Walk(node.Body, visit)
	case *Class:
		for _, m := range node.Methods {
			Walk(m, visit)
		}
	case *Import:
		// leaf: module path and names carry no sub-expressions
	case *Export:
		Walk(node.Decl, visit)
	case *ExportIdentifier:
		// leaf
	case *TryCatch:
		Walk(node.Try, visit)
		Walk(node.Catch, visit)
	case *TypeAlias:
		Walk(node.Type, visit)

	case *Binary:
		Walk(node.Left, visit)
		Walk(node.Right, visit)
	case *Grouping:
		Walk(node.Expression, visit)
	case *Literal:
		// leaf
	case *Unary:
		Walk(node.Right, visit)
	case *Variable:
		// leaf
	case *Assign:
		Walk(node.Value, visit)
	case *Logical:
		Walk(node.Left, visit)
		Walk(node.Right, visit)
	case *Call:
		Walk(node.Callee, visit)
		for _, a := range node.Args {
			Walk(a, visit)
		}
	case *Lambda:
		for _, p := range node.Params {
			Walk(p.Type, visit)
		}
		for _, s := range node.Body {
			Walk(s, visit)
		}
	case *ListExpr:
		for _, e := range node.Elements {
			Walk(e, visit)
		}
	case *Dict:
		for i := range node.Keys {
			Walk(node.Keys[i], visit)
			Walk(node.Values[i], visit)
		}
	case *Index:
		Walk(node.Object, visit)
		Walk(node.Index, visit)
	case *IndexSet:
		Walk(node.Object, visit)
		Walk(node.Index, visit)
		Walk(node.Value, visit)
	case *Slice:
		Walk(node.Object, visit)
		Walk(node.Start, visit)
		Walk(node.End, visit)
	case *Match:
		Walk(node.Subject, visit)
		for _, c := range node.Cases {
			Walk(c.Guard, visit)
			if c.IsBlock {
				for _, s := range c.Stmts {
					Walk(s, visit)
				}
			} else {
				Walk(c.Value, visit)
			}
		}
	case *Get:
		Walk(node.Object, visit)
	case *Set:
		Walk(node.Object, visit)
		Walk(node.Value, visit)
	case *This, *Type:
		// leaf
	case *GenericType:
		for _, a := range node.Args {
			Walk(a, visit)
		}
	case *FunctionType:
		for _, p := range node.Params {
			Walk(p, visit)
		}
		Walk(node.Ret, visit)
	case *ArrayType:
		Walk(node.Elem, visit)
	}
}

// isNilNode reports whether n holds a typed-nil pointer (e.g. a nil
// *ast.Block stored in an Expr/Stmt interface), which == nil does not catch.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Expression:
		return v == nil
	case *Function:
		return v == nil
	case *If:
		return v == nil
	case *Return:
		return v == nil
	case *Throw:
		return v == nil
	case *Var:
		return v == nil
	case *While:
		return v == nil
	case *For:
		return v == nil
	case *Class:
		return v == nil
	case *Import:
		return v == nil
	case *Export:
		return v == nil
	case *ExportIdentifier:
		return v == nil
	case *TryCatch:
		return v == nil
	case *TypeAlias:
		return v == nil
	case *Binary:
		return v == nil
	case *Grouping:
		return v == nil
	case *Literal:
		return v == nil
	case *Unary:
		return v == nil
	case *Variable:
		return v == nil
	case *Assign:
		return v == nil
	case *Logical:
		return v == nil
	case *Call:
		return v == nil
	case *Lambda:
		return v == nil
	case *ListExpr:
		return v == nil
	case *Dict:
		return v == nil
	case *Index:
		return v == nil
	case *IndexSet:
		return v == nil
	case *Slice:
		return v == nil
	case *Match:
		return v == nil
	case *Get:
		return v == nil
	case *Set:
		return v == nil
	case *This:
		return v == nil
	case *Type:
		return v == nil
	case *GenericType:
		return v == nil
	case *FunctionType:
		return v == nil
	case *ArrayType:
		return v == nil
	default:
		return false
	}
}

// Count returns the number of nodes in the subtree rooted at n, used by the
// inliner to measure a candidate function body's size.
func Count(n Node) int {
	c := 0
	Walk(n, func(Node) bool { c++; return true })
	return c
}

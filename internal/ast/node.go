// Package ast defines the typed tree produced by the parser: Stmt and Expr
// are small interfaces implemented by one concrete struct per grammar
// variant (the idiomatic Go analogue of a tagged sum type), each carrying
// its originating token.Token for diagnostics. A single generic Walk
// replaces the one-visit-method-per-node-kind pattern so every consumer
// (optimizer passes, the interpreter, debug dumps) shares one traversal.
package ast

import "github.com/ThornLang/thorn/internal/token"

// Node is implemented by every Stmt and Expr so a single Walk can handle
// both trees.
type Node interface {
	Tok() token.Token
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Parameter is a formal parameter: a name with an optional type annotation.
// Type is nil when the parameter is unannotated.
type Parameter struct {
	Name token.Token
	Type Expr
}

// TypeParameter is a generic type parameter with an optional constraint.
type TypeParameter struct {
	Name       token.Token
	Constraint Expr
}

// Pattern is a match-case pattern.
type Pattern interface {
	patternNode()
}

// WildcardPattern is `_`, matching anything and binding nothing.
type WildcardPattern struct {
	Keyword token.Token
}

func (WildcardPattern) patternNode() {}

// LiteralPattern matches by equality against a literal expression.
type LiteralPattern struct {
	Value Expr
}

func (LiteralPattern) patternNode() {}

// ConstructorPattern matches `Ok(x)` or `Err(e)`, unwrapping a Result and
// binding the inner value to Binder in the case's scope.
type ConstructorPattern struct {
	Keyword token.Token
	Name    string // "Ok" or "Err"
	Binder  token.Token
}

func (ConstructorPattern) patternNode() {}

// Case is one arm of a Match expression: `pattern ('if' guard)? '=>' body`.
// Exactly one of Value or Stmts is populated, selected by IsBlock.
type Case struct {
	Pattern Pattern
	Guard   Expr // nil if no guard
	Value   Expr // populated when !IsBlock
	Stmts   []Stmt
	IsBlock bool
}

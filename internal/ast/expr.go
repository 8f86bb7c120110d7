package ast

import "github.com/ThornLang/thorn/internal/token"

// Binary is `left op right` for arithmetic/comparison/equality operators.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (b *Binary) exprNode()        {}
func (b *Binary) Tok() token.Token { return b.Operator }

// Grouping is a parenthesized expression, kept distinct from its inner
// expression so the optimizer can tell "the user wrote parens" apart from
// operator precedence, and so re-printing round-trips.
type Grouping struct {
	Paren      token.Token
	Expression Expr
}

func (g *Grouping) exprNode()        {}
func (g *Grouping) Tok() token.Token { return g.Paren }

// Literal is a number, string, boolean, or null constant.
type Literal struct {
	Token token.Token
	Value interface{} // float64, string, bool, or nil
}

func (l *Literal) exprNode()        {}
func (l *Literal) Tok() token.Token { return l.Token }

// Unary is `-expr` or `!expr`.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (u *Unary) exprNode()        {}
func (u *Unary) Tok() token.Token { return u.Operator }

// Variable is a bare identifier read.
type Variable struct {
	Name token.Token
}

func (v *Variable) exprNode()        {}
func (v *Variable) Tok() token.Token { return v.Name }

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (a *Assign) exprNode()        {}
func (a *Assign) Tok() token.Token { return a.Name }

// Logical is `left && right` or `left || right` or `left ?? right`, all of
// which may short-circuit and so are kept distinct from Binary.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (l *Logical) exprNode()        {}
func (l *Logical) Tok() token.Token { return l.Operator }

// Call is `callee(args...)`.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (c *Call) exprNode()        {}
func (c *Call) Tok() token.Token { return c.Paren }

// Lambda is `$(params) => body` or `$(params) => { block }`.
type Lambda struct {
	Keyword    token.Token
	Params     []Parameter
	ReturnType Expr
	Body       []Stmt
	IsBlock    bool // false => Body holds exactly one Expression-wrapping Return
}

func (l *Lambda) exprNode()        {}
func (l *Lambda) Tok() token.Token { return l.Keyword }

// ListExpr is a `[elements...]` literal.
type ListExpr struct {
	Bracket  token.Token
	Elements []Expr
}

func (l *ListExpr) exprNode()        {}
func (l *ListExpr) Tok() token.Token { return l.Bracket }

// Dict is a `{ key: value, ... }` literal. Keys and Values evaluate
// key-then-value per entry, in source order.
type Dict struct {
	Brace  token.Token
	Keys   []Expr
	Values []Expr
}

func (d *Dict) exprNode()        {}
func (d *Dict) Tok() token.Token { return d.Brace }

// Index is `obj[index]`.
type Index struct {
	Object  Expr
	Bracket token.Token
	Index   Expr
}

func (i *Index) exprNode()        {}
func (i *Index) Tok() token.Token { return i.Bracket }

// IndexSet is `obj[index] = value`.
type IndexSet struct {
	Object  Expr
	Bracket token.Token
	Index   Expr
	Value   Expr
}

func (i *IndexSet) exprNode()        {}
func (i *IndexSet) Tok() token.Token { return i.Bracket }

// Slice is `obj[start:end]`; Start/End are nil when omitted.
type Slice struct {
	Object  Expr
	Bracket token.Token
	Start   Expr
	End     Expr
}

func (s *Slice) exprNode()        {}
func (s *Slice) Tok() token.Token { return s.Bracket }

// Match is `match (subject) { cases... }`.
type Match struct {
	Keyword token.Token
	Subject Expr
	Cases   []Case
}

func (m *Match) exprNode()        {}
func (m *Match) Tok() token.Token { return m.Keyword }

// Get is `obj.name`, a field read or bound-method lookup.
type Get struct {
	Object Expr
	Name   token.Token
}

func (g *Get) exprNode()        {}
func (g *Get) Tok() token.Token { return g.Name }

// Set is `obj.name = value`.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (s *Set) exprNode()        {}
func (s *Set) Tok() token.Token { return s.Name }

// This is the `this` keyword inside a method body.
type This struct {
	Keyword token.Token
}

func (t *This) exprNode()        {}
func (t *This) Tok() token.Token { return t.Keyword }

// Type is a bare type-name annotation, e.g. `string` or a class name.
type Type struct {
	Name token.Token
}

func (t *Type) exprNode()        {}
func (t *Type) Tok() token.Token { return t.Name }

// GenericType is `Name<Args...>`.
type GenericType struct {
	Name token.Token
	Args []Expr
}

func (g *GenericType) exprNode()        {}
func (g *GenericType) Tok() token.Token { return g.Name }

// FunctionType is `Function(Params...): Ret`.
type FunctionType struct {
	Keyword token.Token
	Params  []Expr
	Ret     Expr
}

func (f *FunctionType) exprNode()        {}
func (f *FunctionType) Tok() token.Token { return f.Keyword }

// ArrayType is `Array<Elem>`.
type ArrayType struct {
	Keyword token.Token
	Elem    Expr
}

func (a *ArrayType) exprNode()        {}
func (a *ArrayType) Tok() token.Token { return a.Keyword }

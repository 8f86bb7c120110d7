package ast

import "github.com/ThornLang/thorn/internal/token"

// Block is `{ stmts... }`.
type Block struct {
	Brace      token.Token
	Statements []Stmt
}

func (b *Block) stmtNode()       {}
func (b *Block) Tok() token.Token { return b.Brace }

// Expression is a bare expression used as a statement.
type Expression struct {
	Expr Expr
}

func (e *Expression) stmtNode()       {}
func (e *Expression) Tok() token.Token { return e.Expr.Tok() }

// Function is `$ name(params) (: returnType)? { body }`. Methods inside a
// class body are also represented as Function.
type Function struct {
	Keyword    token.Token
	Name       token.Token
	TypeParams []TypeParameter
	Params     []Parameter
	ReturnType Expr
	Body       []Stmt
}

func (f *Function) stmtNode()       {}
func (f *Function) Tok() token.Token { return f.Keyword }

// If is `if (cond) then (else elseBranch)?`.
type If struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

func (i *If) stmtNode()       {}
func (i *If) Tok() token.Token { return i.Keyword }

// Return is `return value?;`.
type Return struct {
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

func (r *Return) stmtNode()       {}
func (r *Return) Tok() token.Token { return r.Keyword }

// Throw is `throw value;`.
type Throw struct {
	Keyword token.Token
	Value   Expr
}

func (t *Throw) stmtNode()       {}
func (t *Throw) Tok() token.Token { return t.Keyword }

// Var is `@? immut? name (: type)? (= init)?;`.
type Var struct {
	Name      token.Token
	Type      Expr // nil if unannotated
	Init      Expr // nil if uninitialized
	Immutable bool
}

func (v *Var) stmtNode()       {}
func (v *Var) Tok() token.Token { return v.Name }

// While is `while (cond) body`.
type While struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
}

func (w *While) stmtNode()       {}
func (w *While) Tok() token.Token { return w.Keyword }

// For is `for (varName in iterable) body`.
type For struct {
	Keyword  token.Token
	VarName  token.Token
	Iterable Expr
	Body     Stmt
}

func (f *For) stmtNode()       {}
func (f *For) Tok() token.Token { return f.Keyword }

// Class is `class Name (<TypeParams>)? { methods... }`.
type Class struct {
	Keyword    token.Token
	Name       token.Token
	TypeParams []TypeParameter
	Methods    []*Function
}

func (c *Class) stmtNode()       {}
func (c *Class) Tok() token.Token { return c.Keyword }

// Import is `import "module";` or `import { a, b } from "module";`. Names is
// nil for a whole-module import.
type Import struct {
	Keyword token.Token
	Module  token.Token // string literal token
	Names   []token.Token
}

func (i *Import) stmtNode()       {}
func (i *Import) Tok() token.Token { return i.Keyword }

// Export is `export decl;`, wrapping a declaration statement so it is both
// executed and recorded as exported.
type Export struct {
	Keyword token.Token
	Decl    Stmt
}

func (e *Export) stmtNode()       {}
func (e *Export) Tok() token.Token { return e.Keyword }

// ExportIdentifier is `export name;`, re-exporting an already-defined name.
type ExportIdentifier struct {
	Keyword token.Token
	Name    token.Token
}

func (e *ExportIdentifier) stmtNode()       {}
func (e *ExportIdentifier) Tok() token.Token { return e.Keyword }

// TryCatch is `try { try_ } catch (catchVar?) { catch }`.
type TryCatch struct {
	Keyword  token.Token
	Try      *Block
	CatchVar *token.Token // nil if catch binds no variable
	Catch    *Block
}

func (t *TryCatch) stmtNode()       {}
func (t *TryCatch) Tok() token.Token { return t.Keyword }

// TypeAlias is `% name = type;`.
type TypeAlias struct {
	Keyword token.Token
	Name    token.Token
	Type    Expr
}

func (t *TypeAlias) stmtNode()       {}
func (t *TypeAlias) Tok() token.Token { return t.Keyword }

package interp

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/value"
)

// evalMatch implements `match (subject) { case pattern (if guard)? => body }`
// per spec.md §4.5 and the corrected Open Question decision recorded in
// SPEC_FULL.md: every case, block or bare-expression alike, runs in a
// fresh frame enclosing env. Ok(x)/Err(e) bindings live only in that frame
// and are discarded once the match finishes, whichever case matched.
func (i *Interpreter) evalMatch(e *ast.Match, env *environ.Environment) (value.Value, error) {
	subject, err := i.eval(e.Subject, env)
	if err != nil {
		return nil, err
	}

	for _, c := range e.Cases {
		caseEnv := environ.NewEnclosed(env)
		matched, err := i.bindPattern(c.Pattern, subject, caseEnv)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		if c.Guard != nil {
			g, err := i.eval(c.Guard, caseEnv)
			if err != nil {
				return nil, err
			}
			if !g.Truthy() {
				continue
			}
		}
		if c.IsBlock {
			return i.execCaseBlock(c.Stmts, caseEnv)
		}
		return i.eval(c.Value, caseEnv)
	}

	return nil, i.fault(e.Keyword, "no match case matched the subject")
}

// execCaseBlock runs a block match-case's statements in caseEnv and
// returns the value of its last expression-statement (spec.md §4.5: "the
// value of the last expression-statement is returned"), or Null if the
// block is empty, ends on a non-expression statement, or returns early.
func (i *Interpreter) execCaseBlock(stmts []ast.Stmt, caseEnv *environ.Environment) (value.Value, error) {
	var last value.Value = value.Null{}
	for _, s := range stmts {
		if es, ok := s.(*ast.Expression); ok {
			v, err := i.eval(es.Expr, caseEnv)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		last = value.Null{}
		if err := i.exec(s, caseEnv); err != nil {
			return nil, err
		}
		if i.hasReturned {
			return value.Null{}, nil
		}
	}
	return last, nil
}

// bindPattern reports whether pattern matches subject, defining any
// bindings the pattern introduces directly into caseEnv. The literal
// pattern's value expression is evaluated in caseEnv (a fresh per-case
// frame) rather than cast directly, since the grammar allows any unary
// expression there (e.g. `-5`), not just a bare literal.
func (i *Interpreter) bindPattern(pattern ast.Pattern, subject value.Value, caseEnv *environ.Environment) (bool, error) {
	switch p := pattern.(type) {
	case ast.WildcardPattern:
		return true, nil
	case ast.LiteralPattern:
		want, err := i.eval(p.Value, caseEnv)
		if err != nil {
			return false, err
		}
		return value.Equal(subject, want), nil
	case ast.ConstructorPattern:
		res, ok := subject.(*value.Result)
		if !ok {
			return false, nil
		}
		wantOk := p.Name == "Ok"
		if res.IsOk() != wantOk {
			return false, nil
		}
		caseEnv.Define(p.Binder.Lexeme, res.Inner, false)
		return true, nil
	default:
		return false, nil
	}
}

// Package environ implements Thorn's lexically-nested Environment: a
// name-to-value map with an immutability set and a parent chain, matching
// the contract table in spec.md §4.3. The teacher (tunaq) has no lexical
// scoping of its own, tunascript is a flat flag store, so this package
// follows the spec's explicit contract directly rather than a teacher
// source file.
package environ

import (
	"fmt"
	"log"

	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

// Environment is one lexical frame. The zero value is not usable; use New
// or NewEnclosed.
type Environment struct {
	enclosing value.Scope
	values    map[string]value.Value
	immutable map[string]bool

	cacheName  string
	cacheValue value.Value
	cacheValid bool

	trace bool
}

// New creates a root frame with no enclosing scope.
func New() *Environment {
	return &Environment{values: make(map[string]value.Value), immutable: make(map[string]bool)}
}

// NewEnclosed creates a frame nested inside enclosing, e.g. on function
// entry, block entry, or for-loop body entry. It inherits enclosing's
// trace setting so a child frame opened under a traced root keeps tracing
// every define, not just the ones made directly against the root.
func NewEnclosed(enclosing value.Scope) *Environment {
	e := New()
	e.enclosing = enclosing
	if parent, ok := enclosing.(*Environment); ok {
		e.trace = parent.trace
	}
	return e
}

// Enclosing returns the parent frame, or nil at the root.
func (e *Environment) Enclosing() value.Scope { return e.enclosing }

// SetTrace turns type-tracing on or off for this frame and every frame
// enclosed under it from this point on (spec.md §6: thorn.debug.types
// "enables type tracing on every define"). Call once on the global frame
// before running any program.
func (e *Environment) SetTrace(on bool) { e.trace = on }

// Define inserts name into the current frame. If the current binding (if
// any) is a Callable and v is also a Callable, the two are merged into a
// FunctionGroup per spec.md §4.3, rather than the new value replacing the
// old one.
func (e *Environment) Define(name string, v value.Value, immutable bool) {
	if existing, ok := e.values[name]; ok {
		if existingCallable, ok1 := existing.(value.Callable); ok1 {
			if nextCallable, ok2 := v.(value.Callable); ok2 {
				v = value.Add(name, existingCallable, nextCallable)
			}
		}
	}
	e.values[name] = v
	if immutable {
		e.immutable[name] = true
	}
	if e.cacheValid && e.cacheName == name {
		e.cacheValue = v
	}
	if e.trace {
		log.Printf("DEBUG type-trace: define %s: %s = %s", name, v.TypeName(), v.String())
	}
}

// Get returns the value bound to name, searching outward through the
// enclosing chain. A single-slot cache on the frame the read is issued
// against avoids a map lookup for repeated reads of the same name in a
// tight loop (spec.md §4.3).
func (e *Environment) Get(name token.Token) (value.Value, error) {
	if e.cacheValid && e.cacheName == name.Lexeme {
		return e.cacheValue, nil
	}
	if v, ok := e.values[name.Lexeme]; ok {
		e.cacheName = name.Lexeme
		e.cacheValue = v
		e.cacheValid = true
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, fmt.Errorf("undefined variable %q", name.Lexeme)
}

// Assign writes to the nearest frame containing name, failing if that
// frame marked it immutable, or if no frame holds it at all.
func (e *Environment) Assign(name token.Token, v value.Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		if e.immutable[name.Lexeme] {
			return fmt.Errorf("Cannot assign to immutable variable '%s'", name.Lexeme)
		}
		e.values[name.Lexeme] = v
		if e.cacheValid && e.cacheName == name.Lexeme {
			e.cacheValue = v
		}
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return fmt.Errorf("undefined variable %q", name.Lexeme)
}

// DefineLoopVar writes name directly into this frame's value map without
// going through Define's FunctionGroup-merge logic, used by `for` to bind
// the loop variable. Returns the prior (value, present) so the caller can
// restore it on loop exit, per spec.md §9's for-loop open question.
func (e *Environment) DefineLoopVar(name string, v value.Value) (prior value.Value, wasPresent bool) {
	prior, wasPresent = e.values[name]
	e.values[name] = v
	e.invalidateCache(name)
	return prior, wasPresent
}

// RestoreLoopVar reinstates the prior binding captured by DefineLoopVar,
// or removes the name entirely if it was absent before the loop.
func (e *Environment) RestoreLoopVar(name string, prior value.Value, wasPresent bool) {
	if wasPresent {
		e.values[name] = prior
	} else {
		delete(e.values, name)
	}
	e.invalidateCache(name)
}

// HasLocal reports whether name is bound directly in this frame (not an
// ancestor).
func (e *Environment) HasLocal(name string) bool {
	_, ok := e.values[name]
	return ok
}

// IsImmutable reports whether name is immutable in whichever frame binds
// it, searching outward.
func (e *Environment) IsImmutable(name string) bool {
	if _, ok := e.values[name]; ok {
		return e.immutable[name]
	}
	if enc, ok := e.enclosing.(*Environment); ok {
		return enc.IsImmutable(name)
	}
	return false
}

func (e *Environment) invalidateCache(name string) {
	if e.cacheValid && e.cacheName == name {
		e.cacheValid = false
	}
}

// Package module implements Thorn's module system (spec.md §4.4):
// resolving, loading, and caching imported source files. Structured after
// the teacher's world-file loader (internal/tqw: resolve path, read,
// cache once) and its loaded-state caching pattern
// (internal/game/state.go), generalized from "load one world file" to
// "load-once-per-path with in-progress cycle detection".
package module

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/config"
	"github.com/ThornLang/thorn/internal/diag"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/lexer"
	"github.com/ThornLang/thorn/internal/parser"
	"github.com/ThornLang/thorn/internal/token"
)

// Executor runs a module's top-level statements in a fresh environment.
// It is implemented by internal/interp.Interpreter; module depends on
// this narrow capability interface instead of the interp package so the
// two packages don't form an import cycle (the same shape as
// value.Interp/value.Scope).
type Executor interface {
	ExecuteModule(stmts []ast.Stmt, env *environ.Environment) (exported map[string]bool, err error)
}

// Module is one loaded source file: its environment and the set of names
// it exported via `export`. ID gives every loaded module a stable
// identity independent of its resolved path, paralleling the teacher's
// use of uuid.New() for session identity (server/tunas); Cache.Lookup
// finds a loaded module by this ID. Each load assigns a fresh ID, so a
// file reached under two different resolved path strings is loaded as
// two Modules with two IDs.
type Module struct {
	ID       uuid.UUID
	Path     string // resolved filesystem path
	Env      *environ.Environment
	Exported map[string]bool
}

// IsExported reports whether name was exported by this module.
func (m *Module) IsExported(name string) bool { return m.Exported[name] }

// Optimizer runs the optimization pipeline over a freshly parsed AST.
// Cache takes this as a plain function type rather than importing
// internal/optimize directly, so the module package stays usable
// without an optimizer wired in (tests, or a future embedding that
// always runs at O0) and doesn't have to carry an optimize.Level
// alongside the config.OptLevel it already threads through Load.
type Optimizer func(stmts []ast.Stmt) ([]ast.Stmt, error)

// Cache resolves, loads, and caches modules by resolved path. Guarded by
// a mutex, matching the teacher's `server/dao` store guarding its loaded-
// world cache with a single mutex rather than per-entry locks, since the
// interpreter that drives loading is itself single-threaded (spec.md §5).
type Cache struct {
	mu         sync.Mutex
	loaded     map[string]*Module
	byID       map[uuid.UUID]*Module
	inProgress map[string]bool
	searchPath []string
	exec       Executor
	cacheDir   string
	optimize   Optimizer
}

// NewCache builds a module cache that resolves against searchPath (in
// order) and executes module bodies via exec.
func NewCache(searchPath []string, exec Executor) *Cache {
	return &Cache{
		loaded:     make(map[string]*Module),
		byID:       make(map[uuid.UUID]*Module),
		inProgress: make(map[string]bool),
		searchPath: searchPath,
		exec:       exec,
	}
}

// Lookup finds a loaded module by its logical ID rather than the path
// string it was resolved from, the way the teacher's uuid.New() session
// identity (server/tunas) is looked up independent of the HTTP request
// that carries it. Only modules whose execution finished are found; the
// path-keyed loaded cache does not merge two resolved path strings that
// name the same file, so each of them has its own Module and ID.
func (c *Cache) Lookup(id uuid.UUID) (*Module, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.byID[id]
	return m, ok
}

// WithCacheDir enables an on-disk snapshot cache for resolved-and-parsed
// modules, rooted at dir (see snapshot.go). A zero-value Cache (no
// WithCacheDir call) simply never consults the snapshot cache.
func (c *Cache) WithCacheDir(dir string) *Cache {
	c.cacheDir = dir
	return c
}

// WithOptimizer makes every module load run fn over the module's parsed
// AST before execution, so imported modules get the same
// source -> Lexer -> Parser -> AST -> OptimizationPipeline -> AST'
// data flow (spec.md §2) as a top-level Run. A zero-value Cache (no
// WithOptimizer call) skips the optimizer entirely, which is how the
// module package's own tests exercise Load without dragging in
// internal/optimize.
func (c *Cache) WithOptimizer(fn Optimizer) *Cache {
	c.optimize = fn
	return c
}

// Load resolves path per spec.md §4.4 and returns its Module, loading and
// executing it if this is the first request for that resolved path.
// importer is the token of the `import` statement, used for diagnostics.
func (c *Cache) Load(path string, importer token.Token, optLevel config.OptLevel) (*Module, error) {
	resolved, err := c.resolve(path)
	if err != nil {
		return nil, diag.ImportError{Tok: importer, Message: err.Error()}
	}

	c.mu.Lock()
	if m, ok := c.loaded[resolved]; ok {
		c.mu.Unlock()
		return m, nil
	}
	if c.inProgress[resolved] {
		c.mu.Unlock()
		return nil, diag.ImportError{Tok: importer, Message: fmt.Sprintf("Circular dependency detected for module '%s'", moduleName(resolved))}
	}
	c.inProgress[resolved] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inProgress, resolved)
		c.mu.Unlock()
	}()

	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, diag.ImportError{Tok: importer, Message: fmt.Sprintf("cannot read module %q: %s", resolved, err)}
	}

	stmts, parseErrs, fromCache := c.parseWithCache(resolved, string(src), optLevel)
	if len(parseErrs) > 0 {
		return nil, diag.ImportError{Tok: importer, Message: parseErrs[0].Error()}
	}
	_ = fromCache // reserved for a future debug trace of cache hits

	mod := &Module{
		ID:       uuid.New(),
		Path:     resolved,
		Env:      environ.New(),
		Exported: make(map[string]bool),
	}

	// Only registered in the loaded cache once execution succeeds: while
	// ExecuteModule is running, inProgress[resolved] is the only guard, so
	// a nested import that reaches back to resolved (directly or through
	// any number of intermediate modules) is caught as a cycle rather than
	// handed a half-executed Module.
	exported, err := c.exec.ExecuteModule(stmts, mod.Env)
	if err != nil {
		return nil, err
	}
	mod.Exported = exported

	c.mu.Lock()
	c.loaded[resolved] = mod
	c.byID[mod.ID] = mod
	c.mu.Unlock()

	return mod, nil
}

// moduleName strips directory and extension for use in diagnostics, e.g.
// "./stdlib/math.thorn" -> "math".
func moduleName(resolved string) string {
	base := filepath.Base(resolved)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolve implements spec.md §4.4 step 4: append .thorn if missing, then
// try the current directory, ./stdlib, each colon-separated THORN_PATH
// entry, then the path as given (absolute or already-relative).
func (c *Cache) resolve(path string) (string, error) {
	candidate := path
	if filepath.Ext(candidate) == "" {
		candidate += ".thorn"
	}

	if filepath.IsAbs(candidate) {
		if fileExists(candidate) {
			return candidate, nil
		}
		return "", fmt.Errorf("Cannot find module '%s'", path)
	}

	for _, root := range c.searchPath {
		full := filepath.Join(root, candidate)
		if fileExists(full) {
			return filepath.Clean(full), nil
		}
	}

	if fileExists(candidate) {
		return filepath.Clean(candidate), nil
	}

	return "", fmt.Errorf("Cannot find module '%s'", path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// parseWithCache lexes, parses, and (when an Optimizer is set) optimizes
// src on every call, and only afterwards consults the on-disk snapshot
// when a cache directory is configured (see snapshot.go). The snapshot
// records only the resolved export name set and a content hash, not the
// AST itself: Thorn's AST is a tree of interfaces, and the rezi usage this
// is grounded on (server/dao/sqlite) round-trips plain structs, not
// interface graphs. A matching snapshot skips no work; it only sets the
// third return value to true. A missing or stale one is rewritten.
func (c *Cache) parseWithCache(resolved, src string, optLevel config.OptLevel) ([]ast.Stmt, []diag.ParseError, bool) {
	lx := lexer.New(src)
	tokens, lexErrs := lx.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, lexErrs, false
	}

	ps := parser.New(tokens)
	stmts, parseErrs := ps.Parse()
	if ps.HadError() {
		return nil, parseErrs, false
	}

	if c.optimize != nil {
		optimized, err := c.optimize(stmts)
		if err == nil {
			stmts = optimized
		}
		// an optimizer error here is swallowed rather than surfaced as a
		// parse error: the pre-optimization AST is still valid and
		// correct to execute, just unoptimized.
	}

	if c.cacheDir != "" {
		hash := contentHash(src)
		if snap, ok := c.readSnapshot(resolved, hash, optLevel); ok {
			_ = snap // presence confirms the snapshot is current; see snapshot.go
			return stmts, nil, true
		}
		c.writeSnapshot(resolved, hash, optLevel, exportedNames(stmts))
	}

	return stmts, nil, false
}

func contentHash(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

func exportedNames(stmts []ast.Stmt) []string {
	var names []string
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.Export:
			if name := declaredName(d.Decl); name != "" {
				names = append(names, name)
			}
		case *ast.ExportIdentifier:
			names = append(names, d.Name.Lexeme)
		}
	}
	return names
}

func declaredName(s ast.Stmt) string {
	switch d := s.(type) {
	case *ast.Function:
		return d.Name.Lexeme
	case *ast.Var:
		return d.Name.Lexeme
	case *ast.Class:
		return d.Name.Lexeme
	case *ast.TypeAlias:
		return d.Name.Lexeme
	default:
		return ""
	}
}

// BindImport performs `import "m"` / `import { a, b } from "m"` binding
// into dest per spec.md §4.4's closing paragraph: a whole-module import
// binds every exported name; a selective import binds only the named
// ones and fails if any requested name was not exported.
func BindImport(mod *Module, names []token.Token, dest *environ.Environment) error {
	if len(names) == 0 {
		for name := range mod.Exported {
			v, err := mod.Env.Get(token.New(token.Identifier, name, nil, 0))
			if err != nil {
				continue
			}
			dest.Define(name, v, false)
		}
		return nil
	}
	for _, n := range names {
		if !mod.IsExported(n.Lexeme) {
			return diag.ImportError{Tok: n, Message: fmt.Sprintf("module has no exported name %q", n.Lexeme)}
		}
		v, err := mod.Env.Get(token.New(token.Identifier, n.Lexeme, nil, n.Line))
		if err != nil {
			return diag.ImportError{Tok: n, Message: err.Error()}
		}
		dest.Define(n.Lexeme, v, false)
	}
	return nil
}

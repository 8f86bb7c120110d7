package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/config"
	"github.com/ThornLang/thorn/internal/diag"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

// stubExecutor never inspects the statements it is handed; it just counts
// how many times a module body was actually executed, so tests can tell a
// cache hit from a fresh load.
type stubExecutor struct {
	calls int
}

func (s *stubExecutor) ExecuteModule(stmts []ast.Stmt, env *environ.Environment) (map[string]bool, error) {
	s.calls++
	return map[string]bool{}, nil
}

func importerTok() token.Token {
	return token.New(token.Identifier, "import", nil, 1)
}

func writeModule(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func Test_Cache_resolveSearchesPathInOrder(t *testing.T) {
	d1 := t.TempDir()
	d2 := t.TempDir()
	writeModule(t, d1, "math.thorn", "")
	writeModule(t, d2, "math.thorn", "")

	exec := &stubExecutor{}
	cache := NewCache([]string{d1, d2}, exec)

	mod, err := cache.Load("math", importerTok(), config.O0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(filepath.Join(d1, "math.thorn")), mod.Path)
}

func Test_Cache_resolveFallsThroughToLaterSearchRoot(t *testing.T) {
	d1 := t.TempDir()
	d2 := t.TempDir()
	writeModule(t, d2, "only_in_d2.thorn", "")

	exec := &stubExecutor{}
	cache := NewCache([]string{d1, d2}, exec)

	mod, err := cache.Load("only_in_d2", importerTok(), config.O0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(filepath.Join(d2, "only_in_d2.thorn")), mod.Path)
}

func Test_Cache_resolveMissingModule(t *testing.T) {
	dir := t.TempDir()
	exec := &stubExecutor{}
	cache := NewCache([]string{dir}, exec)

	_, err := cache.Load("nope", importerTok(), config.O0)
	require.Error(t, err)
	impErr, ok := err.(diag.ImportError)
	require.True(t, ok)
	assert.Equal(t, "Cannot find module 'nope'", impErr.Message)
}

func Test_Cache_loadIsMemoized(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "once.thorn", "")

	exec := &stubExecutor{}
	cache := NewCache([]string{dir}, exec)

	first, err := cache.Load("once", importerTok(), config.O0)
	require.NoError(t, err)
	second, err := cache.Load("once", importerTok(), config.O0)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, exec.calls, "a module body must run exactly once, regardless of how many importers request it")
}

func Test_Cache_lookupByID(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "m.thorn", "")

	exec := &stubExecutor{}
	cache := NewCache([]string{dir}, exec)

	mod, err := cache.Load("m", importerTok(), config.O0)
	require.NoError(t, err)

	found, ok := cache.Lookup(mod.ID)
	require.True(t, ok)
	assert.Same(t, mod, found)
}

// recursiveExecutor simulates what internal/interp.Interpreter really does:
// running an imported module's own `import` statements back through the
// same Cache, so circular imports can be exercised without the interpreter.
type recursiveExecutor struct {
	cache *Cache
}

func (r *recursiveExecutor) ExecuteModule(stmts []ast.Stmt, env *environ.Environment) (map[string]bool, error) {
	for _, s := range stmts {
		imp, ok := s.(*ast.Import)
		if !ok {
			continue
		}
		name, _ := imp.Module.Literal.(string)
		if _, err := r.cache.Load(name, imp.Keyword, config.O0); err != nil {
			return nil, err
		}
	}
	return map[string]bool{}, nil
}

func Test_Cache_circularDependencyDetected(t *testing.T) {
	// spec.md §8 concrete scenario 6: a.thorn imports b.thorn which
	// imports a.thorn back.
	dir := t.TempDir()
	writeModule(t, dir, "a.thorn", `import "b";`)
	writeModule(t, dir, "b.thorn", `import "a";`)

	exec := &recursiveExecutor{}
	cache := NewCache([]string{dir}, exec)
	exec.cache = cache

	_, err := cache.Load("a", importerTok(), config.O0)
	require.Error(t, err)
	impErr, ok := err.(diag.ImportError)
	require.True(t, ok)
	assert.Equal(t, "Circular dependency detected for module 'a'", impErr.Message)
}

func Test_BindImport_wholeModule(t *testing.T) {
	mod := &Module{Env: environ.New(), Exported: map[string]bool{"a": true}}
	mod.Env.Define("a", value.Number(1), false)

	dest := environ.New()
	require.NoError(t, BindImport(mod, nil, dest))

	v, err := dest.Get(token.New(token.Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func Test_BindImport_selectiveMissingExportFails(t *testing.T) {
	mod := &Module{Env: environ.New(), Exported: map[string]bool{"a": true}}
	mod.Env.Define("a", value.Number(1), false)

	dest := environ.New()
	err := BindImport(mod, []token.Token{token.New(token.Identifier, "b", nil, 1)}, dest)
	assert.Error(t, err)
}

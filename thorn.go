// Package thorn is the embedding API (spec.md §6): lex, parse, optimize,
// and execute Thorn source against a single package-level Interpreter.
// It wires together internal/lexer, internal/parser, internal/optimize,
// internal/module, and internal/interp (none of which know about each
// other's existence at the top of the pipeline) into the
// source -> Lexer -> Parser -> AST -> OptimizationPipeline -> AST' ->
// Interpreter data flow spec.md §2 describes. A CLI, REPL, or test
// harness is the out-of-scope "external collaborator" (spec.md §1) that
// calls into this package; thorn itself never touches os.Args, reads
// flags, or formats output beyond what print(value) needs.
package thorn

import (
	"fmt"
	"os"
	"time"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/config"
	"github.com/ThornLang/thorn/internal/interp"
	"github.com/ThornLang/thorn/internal/lexer"
	"github.com/ThornLang/thorn/internal/module"
	"github.com/ThornLang/thorn/internal/optimize"
	"github.com/ThornLang/thorn/internal/parser"
	"github.com/ThornLang/thorn/internal/value"
)

// engine bundles the one Interpreter a process runs Thorn programs
// against, plus the config it was built from. Lazily created on first
// Run/RunFile/RegisterNative/RegisterNativeClass call so registering a
// native before the first Run still lands in the same Globals the
// first Run uses, matching spec.md §6's single embedded-engine model.
type engine struct {
	interp   *interp.Interpreter
	cfg      config.Config
	cache    *module.Cache
	pipeline *optimize.Pipeline
	level    optimize.Level
}

var eng *engine

// Option configures the engine the first time it is built. Subsequent
// calls with different Options have no effect on an already-built
// engine; build a new process (or, in a test, a fresh package state) to
// reconfigure.
type Option func(*config.Config)

// WithConfigFile loads settings from a thorn.toml-shaped TOML file
// before environment variables are layered on (spec.md §6), in place of
// the ./thorn.toml that buildEngine loads otherwise. If path fails to
// load, the configuration is left unchanged.
func WithConfigFile(path string) Option {
	return func(c *config.Config) {
		loaded, err := config.Load(path)
		if err == nil {
			*c = loaded
		}
	}
}

// WithOptimizationLevel overrides the configured optimization level,
// taking precedence over both thorn.toml and THORN_PATH-adjacent
// environment settings since it is the most specific source (an
// explicit call-site argument).
func WithOptimizationLevel(level config.OptLevel) Option {
	return func(c *config.Config) { c.OptimizationLevel = level }
}

// WithSearchPath overrides the module resolution search path.
func WithSearchPath(paths ...string) Option {
	return func(c *config.Config) { c.SearchPath = paths }
}

func buildEngine(opts []Option) *engine {
	cfg, err := config.Load("thorn.toml")
	if err != nil {
		cfg = config.Default()
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	it := interp.New(cfg)
	pipeline := optimize.DefaultPipeline()
	level := toOptimizeLevel(cfg.OptimizationLevel)
	optimizeFn := func(stmts []ast.Stmt) ([]ast.Stmt, error) {
		return pipeline.Optimize(stmts, optimize.NewContext(level))
	}

	cache := module.NewCache(cfg.SearchPath, it).WithOptimizer(optimizeFn)
	if cfg.CacheDir != "" {
		cache = cache.WithCacheDir(cfg.CacheDir)
	}
	it.SetModules(cache)

	registerBuiltins(it)

	return &engine{interp: it, cfg: cfg, cache: cache, pipeline: pipeline, level: level}
}

func toOptimizeLevel(l config.OptLevel) optimize.Level {
	switch l {
	case config.O1:
		return optimize.O1
	case config.O2:
		return optimize.O2
	case config.O3:
		return optimize.O3
	default:
		return optimize.O0
	}
}

// registerBuiltins installs print and clock, the two pre-registered
// natives spec.md §6 says the host supplies.
func registerBuiltins(it *interp.Interpreter) {
	it.RegisterNative("print", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
		fmt.Fprintln(os.Stdout, args[0].String())
		return value.Null{}, nil
	})
	it.RegisterNative("clock", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

// currentEngine returns the process-wide engine, building it from opts
// on first use. Passing Options after the engine already exists has no
// effect, documented on Option itself.
func currentEngine(opts []Option) *engine {
	if eng == nil {
		eng = buildEngine(opts)
	}
	return eng
}

// Run lexes, parses, optimizes, and executes source against the
// package-level engine (spec.md §6 run(source_text)).
func Run(source string, opts ...Option) error {
	e := currentEngine(opts)
	return e.run(source)
}

// RunFile reads path and behaves as Run on its contents (spec.md §6
// run_file(path)).
func RunFile(path string, opts ...Option) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e := currentEngine(opts)
	return e.run(string(src))
}

func (e *engine) run(source string) error {
	lx := lexer.New(source)
	tokens, lexErrs := lx.ScanTokens()
	if len(lexErrs) > 0 {
		return lexErrs[0]
	}

	ps := parser.New(tokens)
	stmts, parseErrs := ps.Parse()
	if ps.HadError() {
		return parseErrs[0]
	}

	if e.level > optimize.O0 {
		optimized, err := e.pipeline.Optimize(stmts, optimize.NewContext(e.level))
		if err != nil {
			return err
		}
		stmts = optimized
	}

	return e.interp.Run(stmts)
}

// RegisterNative installs a host-provided function under name, arity
// args, on the package-level engine's globals (spec.md §6
// register_native(name, arity, fn)). Building the engine here (rather
// than requiring a prior Run) lets a host register every native it
// needs before ever calling Run.
func RegisterNative(name string, arity int, fn value.NativeFunc) {
	currentEngine(nil).interp.RegisterNative(name, arity, fn)
}

// RegisterNativeClass installs a host-provided constructor under name
// (spec.md §6 register_native_class(name, constructor)).
func RegisterNativeClass(name string, ctor value.NativeConstructor) {
	currentEngine(nil).interp.RegisterNativeClass(name, ctor)
}

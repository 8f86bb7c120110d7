package interp

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/config"
	"github.com/ThornLang/thorn/internal/lexer"
	"github.com/ThornLang/thorn/internal/parser"
	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

func newInterp(t *testing.T, cfg config.Config) *Interpreter {
	t.Helper()
	return New(cfg)
}

func run(t *testing.T, it *Interpreter, src string) error {
	t.Helper()
	toks, lexErrs := lexer.New(src).ScanTokens()
	require.Empty(t, lexErrs)
	p := parser.New(toks)
	stmts, parseErrs := p.Parse()
	require.False(t, p.HadError(), "parse errors: %v", parseErrs)
	return it.Run(stmts)
}

func global(t *testing.T, it *Interpreter, name string) value.Value {
	t.Helper()
	v, err := it.Globals.Get(token.New(token.Identifier, name, nil, 1))
	require.NoError(t, err)
	return v
}

func Test_Interpreter_arithmeticPrecedence(t *testing.T) {
	it := newInterp(t, config.Default())
	require.NoError(t, run(t, it, `var specArith = 1 + 2 * 3;`))
	assert.Equal(t, value.Number(7), global(t, it, "specArith"))
}

func Test_Interpreter_immutableAssignIsAnUncaughtRuntimeError(t *testing.T) {
	it := newInterp(t, config.Default())
	err := run(t, it, `@immut specConst = 1; specConst = 2;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot assign to immutable variable 'specConst'")
}

func Test_Interpreter_divisionByZeroIsAnUncaughtRuntimeError(t *testing.T) {
	it := newInterp(t, config.Default())
	err := run(t, it, `var specDiv = 1 / 0;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Division by zero")
}

func Test_Interpreter_divisionByZeroInsideOkYieldsInfinity(t *testing.T) {
	it := newInterp(t, config.Default())
	require.NoError(t, run(t, it, `var specOk = Ok(1 / 0);`))
	result, ok := global(t, it, "specOk").(*value.Result)
	require.True(t, ok)
	assert.True(t, result.IsOk())
	assert.Equal(t, "Infinity", result.Inner.String())
}

// Test_Interpreter_undefinedMemberIsCatchable guards the review fix in
// members.go: an unknown property on a built-in receiver must route
// through i.fault so try/catch can see it as a Throw, not escape as a
// bare Go error that execTryCatch's type assertion on diag.Throw misses.
func Test_Interpreter_undefinedMemberIsCatchable(t *testing.T) {
	it := newInterp(t, config.Default())
	src := `
		var specCaught = null;
		try {
			var specBogus = [1].nope;
		} catch (e) {
			specCaught = e;
		}
	`
	require.NoError(t, run(t, it, src))
	caught, ok := global(t, it, "specCaught").(value.Str)
	require.True(t, ok, "catch must bind a value, not leave the pre-try null in place")
	assert.Contains(t, string(caught), "undefined property")
	assert.Contains(t, string(caught), "nope")
}

func Test_Interpreter_undefinedMemberUncaughtIsARuntimeError(t *testing.T) {
	it := newInterp(t, config.Default())
	err := run(t, it, `var specBogus2 = [1].nope;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined property")
}

func Test_Interpreter_unwrapOnErrResultIsCatchable(t *testing.T) {
	it := newInterp(t, config.Default())
	src := `
		var specCaught2 = null;
		try {
			var specUnwrapped = Err("boom").unwrap();
		} catch (e) {
			specCaught2 = e;
		}
	`
	require.NoError(t, run(t, it, src))
	caught, ok := global(t, it, "specCaught2").(value.Str)
	require.True(t, ok)
	assert.Contains(t, string(caught), "unwrap")
}

func Test_Interpreter_debugTypesTracesEveryDefine(t *testing.T) {
	var buf bytes.Buffer
	origOutput := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(origOutput)

	cfg := config.Default()
	cfg.DebugTypes = true
	it := newInterp(t, cfg)
	require.NoError(t, run(t, it, `var specTraced = 7;`))

	assert.Contains(t, buf.String(), "DEBUG type-trace: define specTraced: number = 7")
}

func Test_Interpreter_debugTypesOffProducesNoTrace(t *testing.T) {
	var buf bytes.Buffer
	origOutput := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(origOutput)

	it := newInterp(t, config.Default())
	require.NoError(t, run(t, it, `var specUntraced = 7;`))

	assert.Empty(t, buf.String())
}

func Test_Interpreter_listAndDictBuiltinMembers(t *testing.T) {
	it := newInterp(t, config.Default())
	src := `
		var specList = [1, 2, 3];
		var specLen = specList.length;
		var specDict = {"a": 1};
		var specSize = specDict.size;
	`
	require.NoError(t, run(t, it, src))
	assert.Equal(t, value.Number(3), global(t, it, "specLen"))
	assert.Equal(t, value.Number(1), global(t, it, "specSize"))
}

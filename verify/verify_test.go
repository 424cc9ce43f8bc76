package verify_test

import (
	"testing"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/splanck/viper-sub036/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleNames(diags []verify.Diagnostic) []string {
	names := make([]string, len(diags))
	for i, d := range diags {
		names[i] = d.Rule
	}
	return names
}

func TestVerifyWellFormedModulePasses(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 40, 2
  ret %t0
}
`
	mod, pdiags := ilread.Parse(src)
	require.Empty(t, pdiags)
	diags := verify.Verify(mod)
	assert.Empty(t, diags)
}

func TestVerifyUnknownBranchTarget(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br nowhere()
}
`
	mod, pdiags := ilread.Parse(src)
	require.Empty(t, pdiags)
	diags := verify.Verify(mod)
	require.NotEmpty(t, diags)
	assert.Contains(t, ruleNames(diags), "unknown-branch-target")
}

func TestVerifyCallArityMismatch(t *testing.T) {
	src := `il 0.1
extern @rt_len(ptr) -> i64
func @main() -> i64 {
entry:
  %t0 = call @rt_len()
  ret %t0
}
`
	mod, pdiags := ilread.Parse(src)
	require.Empty(t, pdiags)
	diags := verify.Verify(mod)
	require.NotEmpty(t, diags)
	assert.Contains(t, ruleNames(diags), "call-arity")
}

func TestVerifyDuplicateBlockLabel(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  ret 0
entry:
  ret 1
}
`
	mod, pdiags := ilread.Parse(src)
	require.Empty(t, pdiags)
	diags := verify.Verify(mod)
	require.NotEmpty(t, diags)
	assert.Contains(t, ruleNames(diags), "unique-label")
}

func TestVerifyBranchArgArityMismatch(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br join()
join(%t0:i64):
  ret %t0
}
`
	mod, pdiags := ilread.Parse(src)
	require.Empty(t, pdiags)
	diags := verify.Verify(mod)
	require.NotEmpty(t, diags)
	assert.Contains(t, ruleNames(diags), "branch-arg-arity")
}

func TestVerifyDiagnosticFormat(t *testing.T) {
	d := verify.Diagnostic{Rule: "ssa-dominance", Fn: "main", Block: "entry", Instr: 2, Message: "bad use"}
	assert.Equal(t, `[RULE:ssa-dominance] bad use at main:entry:2`, d.String())
}

func TestVerifyAllocaZeroBytesIsValid(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = alloca 0 -> i64
  ret 0
}
`
	mod, pdiags := ilread.Parse(src)
	require.Empty(t, pdiags)
	diags := verify.Verify(mod)
	assert.Empty(t, diags)
}

// The text grammar's alloca operand is an unsigned literal (ilread's
// parseUInt), so a negative AllocaBytes can only reach the verifier via a
// Module built directly rather than parsed from text.
func TestVerifyAllocaNegativeBytesIsRejected(t *testing.T) {
	mod := il.NewModule("0.1")
	mod.Functions = []il.Function{{
		Name:       "main",
		ReturnType: il.T(il.I64),
		Blocks: []il.BasicBlock{{
			Label: "entry",
			Instructions: []il.Instruction{
				{Op: il.OpAlloca, HasResult: true, ResultID: 0, Type: il.T(il.Ptr), AllocaBytes: -1},
				{Op: il.OpRet, Operands: []il.Value{il.VInt(0)}},
			},
		}},
		NextTempID: 1,
	}}

	diags := verify.Verify(mod)
	require.NotEmpty(t, diags)
	assert.Contains(t, ruleNames(diags), "alloca-size")
}

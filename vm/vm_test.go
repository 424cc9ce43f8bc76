package vm_test

import (
	"bytes"
	"testing"

	"github.com/splanck/viper-sub036/bridge"
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *il.Module {
	t.Helper()
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)
	return mod
}

func newBridge() *bridge.Bridge {
	return bridge.New(runtime.New())
}

func TestCallMainArithmeticReturns42(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 40, 2
  ret %t0
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	result, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int64(42), result.I)
}

func TestDivideByZeroTrap(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = sdiv.chk0 1, 0
  ret %t0
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, il.TrapDivideByZero, trap.Kind)
	assert.Contains(t, trap.Message, "division by zero")
}

func TestOverflowTrap(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = iadd.ovf 9223372036854775807, 1
  ret %t0
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, il.TrapOverflow, trap.Kind)
	assert.Contains(t, trap.Message, "overflow")
}

func TestInvalidCastTrap(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = sitofp 1 -> f64
  %t1 = fdiv %t0, 0.0
  %t2 = fptosi %t1 -> i64
  ret %t2
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, il.TrapInvalidCast, trap.Kind)
}

func TestBranchArgCountMismatchTrap(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br join(1, 2)
join(%t0:i64):
  ret %t0
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, "branch argument count mismatch: expected 1, got 2, target 'join'", trap.Message)
}

func TestTailCallDoesNotGrowFrameStack(t *testing.T) {
	src := `il 0.1
func @count(%n:i64, %acc:i64) -> i64 {
entry:
  %t0 = icmp_eq %n, 0
  cbr %t0, done(), step()
done:
  ret %acc
step:
  %t1 = sub %n, 1
  %t2 = add %acc, 1
  %t3 = call @count(%t1, %t2)
  ret %t3
}
func @main() -> i64 {
entry:
  %t0 = call @count(100000, 0)
  ret %t0
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	result, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int64(100000), result.I)
}

func TestExternCallRoundTripThroughBridge(t *testing.T) {
	src := `il 0.1
extern @rt_abs_i64(i64) -> i64
func @main() -> i64 {
entry:
  %t0 = call @rt_abs_i64(-7)
  ret %t0
}
`
	mod := parseOK(t, src)
	br := newBridge()
	var out bytes.Buffer
	br.Stdout = &out
	v := vm.New(mod, br)
	result, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int64(7), result.I)
}

func TestPrintStrExternWritesThroughBridge(t *testing.T) {
	src := `il 0.1
global str @g = "hi"
extern @rt_print_str(str) -> void
func @main() -> i64 {
entry:
  %t0 = const_str @g
  call @rt_print_str(%t0)
  ret 0
}
`
	mod := parseOK(t, src)
	br := newBridge()
	var out bytes.Buffer
	br.Stdout = &out
	v := vm.New(mod, br)
	_, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, "hi", out.String())
}

func TestMaxStepsRaisesInterruptTrap(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br entry()
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	v.Config.MaxSteps = 5
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, il.TrapInterrupt, trap.Kind)
}

func TestRequestInterruptHaltsCooperatively(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br entry()
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	v.Config.InterruptEveryN = 1
	v.RequestInterrupt()
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, il.TrapInterrupt, trap.Kind)
}

type pauseOnceHooks struct {
	paused bool
}

func (h *pauseOnceHooks) BeforeInstr(v *vm.VM, fr *vm.Frame) string {
	if !h.paused {
		h.paused = true
		return "breakpoint"
	}
	return ""
}

func (h *pauseOnceHooks) AfterInstr(v *vm.VM, fr *vm.Frame) {}

func TestHooksCanPauseExecution(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 1, 1
  %t1 = add %t0, 1
  ret %t1
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	hooks := &pauseOnceHooks{}
	v.Hooks = hooks

	r, err := vm.NewRunner(v, "main")
	require.NoError(t, err)

	status := r.Step()
	assert.Equal(t, vm.Paused, status)

	status = r.ContinueRun()
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int64(3), r.Result.I)
}

func TestAllocaZeroBytesIsValidAndNonNil(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = alloca 0 -> i64
  store %t0, 7
  %t1 = load %t0 -> i64
  ret %t1
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	result, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int64(7), result.I)
}

// Exercises spec.md §5's "the VM balances increments and decrements per
// slot write and per frame pop" for runtime string handles: %t2 is bound
// into two live slots at once (%t2 itself and join's %t3 parameter)
// before the frame pops, so the returned handle's refcount should settle
// back to exactly 1 — owned solely by the value CallMain hands back.
func TestStringRefcountBalancedAcrossBranchAndReturn(t *testing.T) {
	src := `il 0.1
global str @ga = "foo"
global str @gb = "bar"
extern @rt_concat(str, str) -> str
func @main() -> str {
entry:
  %t0 = const_str @ga
  %t1 = const_str @gb
  %t2 = call @rt_concat(%t0, %t1)
  br join(%t2)
join(%t3:str):
  ret %t3
}
`
	mod := parseOK(t, src)
	v := vm.New(mod, newBridge())
	result, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)

	s, ok := result.Ptr.(*runtime.RtString)
	require.True(t, ok)
	assert.Equal(t, 1, s.RefCount())
}

// The text grammar's alloca operand is an unsigned literal, so a negative
// AllocaBytes can only reach the VM via a Module built directly.
func TestAllocaNegativeBytesTraps(t *testing.T) {
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

	v := vm.New(mod, newBridge())
	_, status, trap := v.CallMain("main")
	require.NotNil(t, trap)
	assert.Equal(t, vm.Trapped, status)
	assert.Equal(t, il.TrapBounds, trap.Kind)
	assert.Contains(t, trap.Message, "negative size")
}

package debug_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/splanck/viper-sub036/bridge"
	"github.com/splanck/viper-sub036/debug"
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

func TestLabelBreakpointPausesBeforeBlockAndDoesNotRefire(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br L3()
L3:
  %t0 = add 1, 41
  ret %t0
}
`
	mod := parseOK(t, src)
	var out bytes.Buffer
	ctrl := &debug.Controller{Out: &out, Breakpoints: []debug.Breakpoint{debug.ParseBreakSpec("L3")}}

	v := vm.New(mod, newBridge())
	v.Hooks = ctrl
	r, err := vm.NewRunner(v, "main")
	require.NoError(t, err)

	status := r.Step() // entry's br, not yet at L3
	assert.Equal(t, vm.Running, status)

	status = r.Step() // about to execute L3's first instruction: should pause
	assert.Equal(t, vm.Paused, status)
	assert.Equal(t, "[BREAK] fn=@main blk=L3 reason=label\n", out.String())

	status = r.ContinueRun()
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int64(42), r.Result.I)
	// Still exactly one BREAK line: resuming past the site must not refire it.
	assert.Equal(t, 1, strings.Count(out.String(), "[BREAK]"))
}

func TestTraceILEmitsOneLinePerInstruction(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 1, 41
  ret %t0
}
`
	mod := parseOK(t, src)
	var out bytes.Buffer
	ctrl := &debug.Controller{Out: &out, Trace: debug.TraceIL}

	v := vm.New(mod, newBridge())
	v.Hooks = ctrl

	r, err := vm.NewRunner(v, "main")
	require.NoError(t, err)
	st := r.ContinueRun()
	assert.Equal(t, vm.Halted, st)

	assert.Equal(t, 2, strings.Count(out.String(), "[IL]"))
	assert.Contains(t, out.String(), "[IL] fn=@main blk=entry ip=#0 add\n")
	assert.Contains(t, out.String(), "[IL] fn=@main blk=entry ip=#1 ret\n")
}

func TestWatchEmitsOnChangeOnly(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  br head(0)
head(%acc:i64):
  %t1 = icmp_lt %t0, 3
  cbr %t1, body(), exit()
body:
  %t2 = add %t0, 1
  br head(%t2)
exit:
  ret %t0
}
`
	mod := parseOK(t, src)
	var out bytes.Buffer
	ctrl := &debug.Controller{Out: &out, Watches: []string{"acc"}}

	v := vm.New(mod, newBridge())
	v.Hooks = ctrl
	_, status, trap := v.CallMain("main")
	require.Nil(t, trap)
	assert.Equal(t, vm.Halted, status)

	lines := strings.Count(out.String(), "[WATCH]")
	assert.Equal(t, 4, lines, "acc should be reported at 0, 1, 2, 3")
	assert.Contains(t, out.String(), "acc=i64:0")
	assert.Contains(t, out.String(), "acc=i64:3")
}

func TestSummaryOnlyPrintsWhenRequested(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  ret 1
}
`
	mod := parseOK(t, src)
	var out bytes.Buffer
	ctrl := &debug.Controller{Out: &out}

	v := vm.New(mod, newBridge())
	v.Hooks = ctrl
	_, _, _ = v.CallMain("main")
	ctrl.Summary()
	assert.Empty(t, out.String())

	ctrl.Count = true
	ctrl.Summary()
	assert.Contains(t, out.String(), "[SUMMARY] instr=")
}

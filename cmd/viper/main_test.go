package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"
)

// contextFor parses argv against the real app flag set, the same way
// app.Run would, so run() is exercised exactly as the CLI invokes it.
func contextFor(t *testing.T, argv ...string) *cli.Context {
	t.Helper()
	app := newApp()
	set := flag.NewFlagSet(app.Name, flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(argv))
	return cli.NewContext(app, set, nil)
}

// captureStdio redirects os.Stdout/os.Stderr for the duration of fn and
// returns what was written to each.
func captureStdio(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	origOut, origErr := os.Stdout, os.Stderr

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = outW, errW
	fn()
	os.Stdout, os.Stderr = origOut, origErr

	outW.Close()
	errW.Close()

	var outBuf, errBuf bytes.Buffer
	_, _ = io.Copy(&outBuf, outR)
	_, _ = io.Copy(&errBuf, errR)
	return outBuf.String(), errBuf.String()
}

func writeIL(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.il")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunCleanHaltReturnsMainsResult(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 3, 4
  ret %t0
}
`)
	ctx := contextFor(t, "--run", path)
	var code int
	_, stderr := captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, 7, code)
	assert.Empty(t, stderr)
}

func TestRunPositionalArgIsAcceptedAsInputPath(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  ret 0
}
`)
	ctx := contextFor(t, path)
	code := run(ctx)
	assert.Equal(t, exitClean, code)
}

func TestRunNoInputShowsHelpAndFails(t *testing.T) {
	ctx := contextFor(t)
	var code int
	captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, exitUsageArgs, code)
}

func TestRunBreakpointStopsAndReportsExitBreak(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  br L3()
L3:
  %t0 = add 1, 41
  ret %t0
}
`)
	ctx := contextFor(t, "--run", path, "--break", "L3")
	var code int
	_, stderr := captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, exitBreak, code)
	assert.Contains(t, stderr, "[BREAK] fn=@main blk=L3 reason=label")
}

func TestRunTrapReportsExitTrapAndTrapLines(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  %t0 = sdiv.chk0 10, 0
  ret %t0
}
`)
	ctx := contextFor(t, "--run", path)
	var code int
	_, stderr := captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, exitTrap, code)
	assert.Contains(t, stderr, "DivideByZero")
}

func TestRunEmitILRoundTripsToOutputFile(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  ret 1
}
`)
	outPath := filepath.Join(t.TempDir(), "out.il")
	ctx := contextFor(t, "--run", path, "--emit-il", "-o", outPath)
	code := run(ctx)
	assert.Equal(t, exitClean, code)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), "func @main() -> i64")
}

func TestRunMaxStepsRejectsNegative(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  ret 0
}
`)
	ctx := contextFor(t, "--run", path, "--max-steps", "-5")
	var code int
	captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, exitUsageArgs, code)
}

func TestRunBoundsChecksIsRejected(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  ret 0
}
`)
	ctx := contextFor(t, "--run", path, "--bounds-checks")
	var code int
	_, stderr := captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, exitUsageArgs, code)
	assert.Contains(t, stderr, "--bounds-checks is not supported")
}

func TestRunUnknownTraceModeIsRejected(t *testing.T) {
	path := writeIL(t, `il 0.1
func @main() -> i64 {
entry:
  ret 0
}
`)
	ctx := contextFor(t, "--run", path, "--trace", "bogus")
	var code int
	_, stderr := captureStdio(t, func() { code = run(ctx) })
	assert.Equal(t, exitUsageArgs, code)
	assert.Contains(t, stderr, "unknown --trace mode")
}

// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package vmtest is the trap-capture test harness spec.md's concurrency
// section asks for: "test harnesses that exercise traps run VM instances
// in a forked child so a fatal trap exit does not terminate the parent."
// Go has no fork(); the idiomatic substitute is re-exec'ing the test
// binary itself with a sentinel environment variable, the same trick
// os/exec's own tests use to spawn a "helper process."
package vmtest

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/splanck/viper-sub036/bridge"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/verify"
	"github.com/splanck/viper-sub036/vm"
)

const (
	helperEnv = "VIPER_VMTEST_HELPER"
	pathEnv   = "VIPER_VMTEST_IL_PATH"

	// exitHarnessError is returned by the child when it cannot even load
	// the fixture (parse/verify failure); distinct from the VM's own
	// trap (1) and clean-halt exit codes so a broken fixture is obvious.
	exitHarnessError = 2
)

// Main runs m, unless this process was re-exec'd as a trap-capturing
// child (helperEnv set), in which case it loads and runs the IL module
// named by pathEnv and exits with the VM's own result instead of ever
// returning to m.Run(). A package that calls CaptureTrap needs:
//
//	func TestMain(m *testing.M) { os.Exit(vmtest.Main(m)) }
func Main(m *testing.M) int {
	if os.Getenv(helperEnv) == "1" {
		runHelper()
		panic("unreachable: runHelper always calls os.Exit")
	}
	return m.Run()
}

func runHelper() {
	src, err := os.ReadFile(os.Getenv(pathEnv))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitHarnessError)
	}

	mod, diags := ilread.Parse(string(src))
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d)
		}
		os.Exit(exitHarnessError)
	}
	if problems := verify.Verify(mod); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		os.Exit(exitHarnessError)
	}

	v := vm.New(mod, bridge.New(runtime.New()))
	result, status, trap := v.CallMain("main")
	if status == vm.Trapped {
		fmt.Fprintln(os.Stderr, trap.LongLine())
		os.Exit(1)
	}
	os.Exit(int(result.I))
}

// CaptureTrap runs ilSource's @main in a re-exec'd child process and
// reports its exit code and stderr, without risking the parent test
// binary's own process if @main traps fatally.
func CaptureTrap(t *testing.T, ilSource string) (exitCode int, stderr string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "case.il")
	if err := os.WriteFile(path, []byte(ilSource), 0o644); err != nil {
		t.Fatalf("write IL fixture: %v", err)
	}

	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), helperEnv+"=1", pathEnv+"="+path)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stderr = errBuf.String()
	if err == nil {
		return 0, stderr
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), stderr
	}
	t.Fatalf("run helper process: %v", err)
	return 0, ""
}

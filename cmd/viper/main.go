// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Command viper is the Viper IL driver: it runs, traces, and debugs a
// textual IL module. Compiling BASIC source is an external collaborator's
// job (the front end is out of scope here); viper only ever parses ".il"
// text, regardless of the extension it was handed.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/splanck/viper-sub036/bridge"
	"github.com/splanck/viper-sub036/debug"
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/splanck/viper-sub036/ilwrite"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/transform"
	"github.com/splanck/viper-sub036/verify"
	"github.com/splanck/viper-sub036/vm"

	"gopkg.in/urfave/cli.v1"
)

const (
	exitClean     = 0
	exitTrap      = 1
	exitBreak     = 10
	exitUsageArgs = 2
)

// newApp builds the viper CLI's flag/usage surface. Split out from main so
// tests can drive run() through a real parsed cli.Context instead of
// duplicating the flag list.
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "viper"
	app.Usage = "run and debug a Viper IL module"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "run", Usage: "input .il file to execute"},
		cli.StringFlag{Name: "o", Usage: "output .il file for --emit-il"},
		cli.BoolFlag{Name: "emit-il", Usage: "skip execution, write the parsed IL back out"},
		cli.StringFlag{Name: "trace", Usage: "enable tracing: il or src"},
		cli.StringSliceFlag{Name: "break", Usage: "add a breakpoint (label or path:line)"},
		cli.StringSliceFlag{Name: "break-src", Usage: "add a source-line breakpoint (path:line)"},
		cli.StringFlag{Name: "debug-cmds", Usage: "scripted step/continue command file"},
		cli.StringSliceFlag{Name: "watch", Usage: "watch a variable for changes"},
		cli.BoolFlag{Name: "count", Usage: "include instruction count in the summary"},
		cli.BoolFlag{Name: "time", Usage: "include elapsed time in the summary"},
		cli.StringFlag{Name: "max-steps", Usage: "abort after N instructions"},
		cli.BoolFlag{Name: "bounds-checks", Usage: "unsupported"},
	}
	return app
}

func main() {
	app := newApp()
	app.Action = func(ctx *cli.Context) error {
		os.Exit(run(ctx))
		return nil
	}

	// cli.v1's default error handling always exits 1; viper needs the
	// full 0/1/10/other exit-code contract, so every path below calls
	// os.Exit itself instead of returning an error to the framework.
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageArgs)
	}
}

func run(ctx *cli.Context) int {
	if ctx.Bool("bounds-checks") {
		fmt.Fprintln(os.Stderr, "--bounds-checks is not supported")
		return exitUsageArgs
	}

	path := ctx.String("run")
	if path == "" {
		path = ctx.Args().First()
	}
	if path == "" {
		cli.ShowAppHelp(ctx)
		return exitUsageArgs
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsageArgs
	}

	mod, diags := ilread.Parse(string(src))
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d)
		}
		return exitUsageArgs
	}

	if problems := verify.Verify(mod); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		return exitUsageArgs
	}

	transform.Run(mod)

	if ctx.Bool("emit-il") || ctx.String("o") != "" {
		return emitIL(ctx, mod)
	}

	maxSteps, ok := parseMaxSteps(ctx.String("max-steps"))
	if !ok {
		cli.ShowAppHelp(ctx)
		return exitUsageArgs
	}

	ctrl, err := buildController(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsageArgs
	}

	v := vm.New(mod, bridge.New(runtime.New()))
	v.Hooks = ctrl
	v.Config.MaxSteps = maxSteps

	r, err := vm.NewRunner(v, "main")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsageArgs
	}

	status := driveRun(r, ctrl)
	ctrl.Summary()

	switch status {
	case vm.Paused:
		return exitBreak
	case vm.Trapped:
		fmt.Fprintln(os.Stderr, r.Trap.ShortLine())
		fmt.Fprintln(os.Stderr, r.Trap.LongLine())
		return exitTrap
	}

	return exitCodeForResult(r.Result.I)
}

// driveRun runs the module to completion, feeding --debug-cmds commands
// (if any) into the Runner between suspensions: "s" steps exactly one
// instruction, "c" continues until the next suspend point; once the
// script is exhausted (or no script was given) execution continues freely.
func driveRun(r *vm.Runner, ctrl *debug.Controller) vm.RunStatus {
	status := r.ContinueRun()
	for status == vm.Paused {
		cmd, ok := ctrl.NextCommand()
		if !ok {
			return status
		}
		switch cmd {
		case "s":
			status = r.Step()
		default: // "c" and anything else resume freely
			status = r.ContinueRun()
		}
	}
	return status
}

func emitIL(ctx *cli.Context, mod *il.Module) int {
	text := ilwrite.Print(mod)
	out := ctx.String("o")
	if out == "" {
		fmt.Print(text)
		return exitClean
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsageArgs
	}
	return exitClean
}

func buildController(ctx *cli.Context, sourcePath string) (*debug.Controller, error) {
	ctrl := debug.New()
	ctrl.SourcePath = sourcePath
	ctrl.Count = ctx.Bool("count")
	ctrl.Time = ctx.Bool("time")
	ctrl.Watches = ctx.StringSlice("watch")

	switch ctx.String("trace") {
	case "", "il":
		if ctx.IsSet("trace") {
			ctrl.Trace = debug.TraceIL
		}
	case "src":
		ctrl.Trace = debug.TraceSrc
	default:
		return nil, fmt.Errorf("unknown --trace mode %q", ctx.String("trace"))
	}

	for _, spec := range ctx.StringSlice("break") {
		ctrl.Breakpoints = append(ctrl.Breakpoints, debug.ParseBreakSpec(spec))
	}
	for _, spec := range ctx.StringSlice("break-src") {
		bp := debug.ParseBreakSpec(spec)
		bp.Kind = debug.BreakSrc
		ctrl.Breakpoints = append(ctrl.Breakpoints, bp)
	}

	if cmdsPath := ctx.String("debug-cmds"); cmdsPath != "" {
		cr, err := debug.OpenCommandFile(cmdsPath)
		if err != nil {
			return nil, err
		}
		ctrl.Commands = cr
	}

	return ctrl, nil
}

// parseMaxSteps validates --max-steps: a plain non-negative decimal
// integer, or "" (no cap). ok is false on anything else, including a
// negative value or one that overflows int64.
func parseMaxSteps(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// exitCodeForResult maps main()'s i64 return value to a process exit code,
// rejecting anything outside a host (32-bit) int's range.
func exitCodeForResult(v int64) int {
	if v < math.MinInt32 || v > math.MaxInt32 {
		fmt.Fprintln(os.Stderr, "return value of main() is outside host int range")
		return exitUsageArgs
	}
	return int(v)
}

// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// Runner wraps a VM with the step()/continueRun() surface spec.md's
// "Runner" description names, for drivers (the debug layer, cmd/viper)
// that need to pause between instructions rather than run a function to
// completion in one call.
type Runner struct {
	VM     *VM
	Result slot.Slot
	Trap   *il.Trap
}

// NewRunner builds a Runner positioned at entry's first instruction.
func NewRunner(v *VM, entry string) (*Runner, error) {
	fn := v.Module.FuncByName(entry)
	if fn == nil {
		return nil, fmt.Errorf("unknown function %q", entry)
	}
	v.frames = []*Frame{newFrame(fn)}
	return &Runner{VM: v}, nil
}

// Step executes exactly one instruction and reports the resulting status.
func (r *Runner) Step() RunStatus {
	status, trap := r.VM.Step()
	r.Trap = trap
	if status == Halted {
		r.Result = r.VM.lastReturn()
	}
	return status
}

// ContinueRun repeatedly steps until the run halts, pauses, or traps.
func (r *Runner) ContinueRun() RunStatus {
	for {
		status := r.Step()
		if status != Running {
			return status
		}
	}
}

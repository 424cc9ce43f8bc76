// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

// RunStatus is the outcome of one continueRun()/Run() call. Running is an
// internal "Step again" signal the Runner loop consumes; it never escapes
// to a caller of Runner.ContinueRun, which only ever returns one of the
// three terminal states spec.md §4.7 names.
type RunStatus int

const (
	Running RunStatus = iota
	Halted
	Paused
	Trapped
)

func (s RunStatus) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Paused:
		return "Paused"
	case Trapped:
		return "Trapped"
	}
	return "RunStatus(?)"
}

// DispatchMode selects the opcode dispatch strategy. All three must
// produce identical observable behavior (spec.md §4.7); Threaded falls
// back to the same handler table FnTable uses, since Go has no portable
// computed-goto primitive.
type DispatchMode int

const (
	FnTable DispatchMode = iota
	Switch
	Threaded
)

func (m DispatchMode) String() string {
	switch m {
	case FnTable:
		return "fntable"
	case Switch:
		return "switch"
	case Threaded:
		return "threaded"
	}
	return "fntable"
}

// RunConfig configures one VM run: cooperative interruption cadence and
// callback, and a hard instruction cap.
type RunConfig struct {
	Dispatch        DispatchMode
	InterruptEveryN int64
	PollCallback    func(v *VM) bool
	MaxSteps        int64
}


// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package vm is the tree-walking interpreter for Viper IL: a stack of
// Frames, pluggable opcode dispatch, transactional block-argument
// transfer, tail calls, and the trap/interrupt machinery spec.md §4.7 and
// §5 describe. Grounded on lang/vm/vm.go's Frame/Step/Run/gas-metering
// shape and its `execute` big-switch dispatch, adapted from a fixed-width
// register bytecode machine to an SSA block-parameter tree-walker: gas
// becomes a plain step counter, registers become per-function temp slot
// arrays, and jump targets become block labels.
package vm

import (
	"fmt"
	"sync/atomic"

	"github.com/splanck/viper-sub036/bridge"
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

// Hooks lets an external observer (the debug package) watch execution
// without the vm package importing it back. BeforeInstr may request a
// suspend (a non-empty reason pauses the run, reporting RunStatus::Paused
// with the reason available via v.Hooks for the driver to log);
// AfterInstr is purely observational.
type Hooks interface {
	BeforeInstr(v *VM, fr *Frame) (suspendReason string)
	AfterInstr(v *VM, fr *Frame)
}

// noopHooks is installed when the caller supplies none.
type noopHooks struct{}

func (noopHooks) BeforeInstr(*VM, *Frame) string { return "" }
func (noopHooks) AfterInstr(*VM, *Frame)         {}

// VM interprets one Module's functions against a Bridge for extern calls.
type VM struct {
	Module *il.Module
	Bridge *bridge.Bridge
	Config RunConfig
	Hooks  Hooks

	frames      []*Frame
	table       opTable
	interrupted int32 // atomic flag set by RequestInterrupt
	stepCount   int64

	lastResult slot.Slot
}

// New builds a VM ready to run a function by name via CallMain or Runner.
func New(mod *il.Module, br *bridge.Bridge) *VM {
	v := &VM{Module: mod, Bridge: br, Hooks: noopHooks{}}
	v.table = buildOpTable()
	return v
}

// RequestInterrupt sets the cooperative interrupt flag; safe to call from
// another goroutine (e.g. a signal handler), per spec.md §5.
func (v *VM) RequestInterrupt() { atomic.StoreInt32(&v.interrupted, 1) }

func (v *VM) interruptRequested() bool { return atomic.LoadInt32(&v.interrupted) != 0 }

// StepCount is the number of instructions executed so far.
func (v *VM) StepCount() int64 { return v.stepCount }

func (v *VM) lastReturn() slot.Slot { return v.lastResult }

// CallMain runs the named entry function to completion, pause, or trap.
func (v *VM) CallMain(name string) (slot.Slot, RunStatus, *il.Trap) {
	fn := v.Module.FuncByName(name)
	if fn == nil {
		return slot.Slot{}, Trapped, &il.Trap{Kind: il.TrapInvalidOperation, Message: fmt.Sprintf("unknown function %q", name)}
	}
	v.frames = []*Frame{newFrame(fn)}
	for {
		status, trap := v.Step()
		if status != Running {
			return v.lastResult, status, trap
		}
	}
}

// Step executes exactly one instruction in the top Frame. It returns
// Running if execution should continue, Halted once the outermost Frame
// has returned, Paused on a breakpoint/poll suspension, or Trapped on a
// runtime fault.
func (v *VM) Step() (RunStatus, *il.Trap) {
	if len(v.frames) == 0 {
		return Halted, nil
	}
	if v.Config.MaxSteps > 0 && v.stepCount >= v.Config.MaxSteps {
		return Trapped, &il.Trap{Kind: il.TrapInterrupt, Message: fmt.Sprintf("step cap of %d instructions exceeded", v.Config.MaxSteps)}
	}

	fr := v.frames[len(v.frames)-1]

	if reason := v.Hooks.BeforeInstr(v, fr); reason != "" {
		return Paused, nil
	}
	if v.Config.InterruptEveryN > 0 && v.stepCount%v.Config.InterruptEveryN == 0 && v.interruptRequested() {
		return Trapped, &il.Trap{Kind: il.TrapInterrupt, Fn: fr.Fn.Name, Block: fr.Block.Label, Instr: fr.IP, Message: "interrupt requested"}
	}
	if v.Config.PollCallback != nil && !v.Config.PollCallback(v) {
		return Paused, nil
	}

	instr := fr.Block.Instructions[fr.IP]
	v.stepCount++

	status, trap := v.execute(fr, &instr)
	v.Hooks.AfterInstr(v, fr)
	return status, trap
}

// execute dispatches instr, advances the Frame (or the call stack), and
// reports the resulting RunStatus.
func (v *VM) execute(fr *Frame, instr *il.Instruction) (RunStatus, *il.Trap) {
	switch instr.Op {
	case il.OpBr:
		return v.execBr(fr, instr)
	case il.OpCBr:
		return v.execCBr(fr, instr)
	case il.OpRet:
		return v.execRet(fr, instr)
	case il.OpTrap:
		t := il.Trap{Kind: il.TrapInvalidOperation, Fn: fr.Fn.Name, Block: fr.Block.Label, Instr: fr.IP, Loc: instr.Loc, Message: "explicit trap instruction"}
		return Trapped, &t
	case il.OpCall:
		return v.execCall(fr, instr)
	}

	result, sig := v.dispatchOp(fr, instr)
	if sig != nil {
		t := sig.sited(fr, fr.IP)
		return Trapped, &t
	}
	if instr.HasResult {
		fr.store(instr.ResultID, result)
	}
	fr.IP++
	return Running, nil
}

// dispatchOp runs instr through whichever non-terminator/non-call
// strategy Config.Dispatch selects. FnTable and Threaded share the handler
// table buildOpTable builds in ops.go; Switch uses the literal switch in
// dispatch_switch.go. Both call the identical per-opcode helpers in
// ops.go, so the strategies are guaranteed to agree.
func (v *VM) dispatchOp(fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	if v.Config.Dispatch == Switch {
		return v.execSwitch(fr, instr)
	}
	h, ok := v.table[instr.Op]
	if !ok {
		return slot.Slot{}, raise(il.TrapInvalidOperation, "unimplemented opcode %s", instr.Op)
	}
	return h(v, fr, instr)
}

// evalValue resolves an operand Value against fr's slots, constants, or
// the module's globals.
func (v *VM) evalValue(fr *Frame, val il.Value) slot.Slot {
	switch val.Kind {
	case il.ValTemp:
		return fr.Slots[val.Temp]
	case il.ValConstInt:
		return slot.I64(val.Int)
	case il.ValConstFloat:
		return slot.F64(val.Float)
	case il.ValNull:
		return slot.Pointer(nil)
	case il.ValGlobalRef:
		return v.evalGlobal(val.Global)
	}
	return slot.Slot{}
}

// evalGlobal wraps a named global's bytes into a runtime string handle;
// this core's globals are always BASIC string-literal payloads.
func (v *VM) evalGlobal(name string) slot.Slot {
	g := v.Module.GlobalByName(name)
	if g == nil {
		return slot.Pointer(nil)
	}
	return slot.Pointer(runtime.RtConstCstr(string(g.InitData)))
}

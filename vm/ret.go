// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// execRet pops the current Frame. If a caller Frame remains, the return
// value is written into the caller's result slot and execution resumes
// there (Running); if this was the outermost Frame, the whole run is
// Halted and the value is retrievable via CallMain/Runner.Result.
func (v *VM) execRet(fr *Frame, instr *il.Instruction) (RunStatus, *il.Trap) {
	var result slot.Slot
	if len(instr.Operands) == 1 {
		result = v.evalValue(fr, instr.Operands[0])
	}

	v.frames = v.frames[:len(v.frames)-1]
	if len(v.frames) == 0 {
		// lastResult is the run's final owner of result, a slot write in
		// everything but name; fr.release below then retires fr's own
		// binding of it, per spec.md §5's per-write/per-pop balance.
		refSlot(result)
		v.lastResult = result
		fr.release()
		return Halted, nil
	}
	caller := v.frames[len(v.frames)-1]
	if fr.CallerHasResult {
		caller.bind(fr.CallerSlot, result)
	}
	fr.release()
	caller.IP++
	return Running, nil
}

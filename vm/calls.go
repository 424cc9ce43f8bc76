// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// execCall dispatches a `call` instruction: an internal Module function
// call pushes a new Frame (or, when the following instruction is exactly
// a compatible `ret`, reuses the current Frame — spec.md §4.7's tail-call
// optimization); an unresolved name is handed to the Bridge as an extern.
func (v *VM) execCall(fr *Frame, instr *il.Instruction) (RunStatus, *il.Trap) {
	args := make([]slot.Slot, len(instr.Operands))
	for i, o := range instr.Operands {
		args[i] = v.evalValue(fr, o)
	}

	if callee := v.Module.FuncByName(instr.CalleeName); callee != nil {
		if v.isTailCall(fr, instr) {
			fr.release()
			fr.Fn = callee
			fr.Slots = make([]slot.Slot, callee.NextTempID)
			fr.bindParams(callee.Params, args)
			fr.Block = callee.Entry()
			fr.IP = 0
			return Running, nil
		}

		nf := newFrame(callee)
		nf.bindParams(callee.Params, args)
		nf.CallerHasResult = instr.HasResult
		nf.CallerSlot = instr.ResultID
		v.frames = append(v.frames, nf)
		return Running, nil
	}

	result, trapErr := v.Bridge.Call(instr.CalleeName, args)
	if trapErr != nil {
		t := il.Trap{
			Kind: trapErr.Kind, Fn: fr.Fn.Name, Block: fr.Block.Label, Instr: fr.IP,
			Loc: instr.Loc, Message: trapErr.Message,
		}
		return Trapped, &t
	}
	if instr.HasResult {
		fr.store(instr.ResultID, result)
	}
	fr.IP++
	return Running, nil
}

// isTailCall reports whether instr (a call at fr.IP) is immediately
// followed, in the same block, by a `ret` of exactly instr's result (or,
// for a void call, a bare `ret`) — the shape spec.md §4.7 requires before
// reusing the current Frame instead of growing the call stack.
func (v *VM) isTailCall(fr *Frame, instr *il.Instruction) bool {
	next := fr.IP + 1
	if next >= len(fr.Block.Instructions) {
		return false
	}
	ret := fr.Block.Instructions[next]
	if ret.Op != il.OpRet {
		return false
	}
	if !instr.HasResult {
		return len(ret.Operands) == 0
	}
	if len(ret.Operands) != 1 {
		return false
	}
	rv := ret.Operands[0]
	return rv.Kind == il.ValTemp && rv.Temp == instr.ResultID
}

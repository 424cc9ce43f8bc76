// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// execBr implements an unconditional branch: block-argument Values are
// evaluated against the *current* frame, then committed to the
// destination block's parameters in one transactional step, so a target
// whose first parameter shadows a source value sees the pre-commit value
// (spec.md §4.7's example: `br L(%x, %y)` where L's first param is named
// the same as %x).
func (v *VM) execBr(fr *Frame, instr *il.Instruction) (RunStatus, *il.Trap) {
	return v.branch(fr, instr.Labels[0], instr.BrArgs[0], fr.IP)
}

// execCBr implements a conditional branch: operand 0 is the i1 condition;
// Labels[0]/BrArgs[0] is the true edge, Labels[1]/BrArgs[1] the false edge.
func (v *VM) execCBr(fr *Frame, instr *il.Instruction) (RunStatus, *il.Trap) {
	cond := v.evalValue(fr, instr.Operands[0])
	if cond.AsBool() {
		return v.branch(fr, instr.Labels[0], instr.BrArgs[0], fr.IP)
	}
	return v.branch(fr, instr.Labels[1], instr.BrArgs[1], fr.IP)
}

// branch evaluates args against fr's current slots, resolves the target
// block, and transfers control.
func (v *VM) branch(fr *Frame, label string, args []il.Value, ip int) (RunStatus, *il.Trap) {
	target := fr.Fn.BlockByLabel(label)
	if target == nil {
		t := il.Trap{Kind: il.TrapInvalidOperation, Fn: fr.Fn.Name, Block: fr.Block.Label, Instr: ip, Message: fmt.Sprintf("branch to unknown block '%s'", label)}
		return Trapped, &t
	}
	if len(args) != len(target.Params) {
		t := il.Trap{
			Kind: il.TrapInvalidOperation, Fn: fr.Fn.Name, Block: fr.Block.Label, Instr: ip,
			Message: fmt.Sprintf("branch argument count mismatch: expected %d, got %d, target '%s'", len(target.Params), len(args), label),
		}
		return Trapped, &t
	}
	scratch := make([]slot.Slot, len(args))
	for i, a := range args {
		scratch[i] = v.evalValue(fr, a)
	}
	for i, p := range target.Params {
		fr.bind(p.SlotID, scratch[i])
	}
	fr.Block = target
	fr.IP = 0
	return Running, nil
}

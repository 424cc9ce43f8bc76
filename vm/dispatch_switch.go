// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// execSwitch implements the "Switch" dispatch strategy: a literal switch
// over the opcode, the shape lang/vm/vm.go's own `execute` uses. It calls
// the exact same per-opcode helpers the FnTable strategy's map holds, so
// the two strategies are guaranteed to agree (spec.md §4.7's "must
// produce identical observable behaviour").
func (v *VM) execSwitch(fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	switch instr.Op {
	case il.OpAdd:
		return opAdd(v, fr, instr)
	case il.OpSub:
		return opSub(v, fr, instr)
	case il.OpMul:
		return opMul(v, fr, instr)
	case il.OpIaddOvf:
		return opIaddOvf(v, fr, instr)
	case il.OpIsubOvf:
		return opIsubOvf(v, fr, instr)
	case il.OpImulOvf:
		return opImulOvf(v, fr, instr)
	case il.OpSdivChk0:
		return opSdivChk0(v, fr, instr)
	case il.OpUdivChk0:
		return opUdivChk0(v, fr, instr)
	case il.OpSremChk0:
		return opSremChk0(v, fr, instr)
	case il.OpUremChk0:
		return opUremChk0(v, fr, instr)
	case il.OpAnd:
		return opAnd(v, fr, instr)
	case il.OpOr:
		return opOr(v, fr, instr)
	case il.OpXor:
		return opXor(v, fr, instr)
	case il.OpShl:
		return opShl(v, fr, instr)
	case il.OpLshr:
		return opLshr(v, fr, instr)
	case il.OpAshr:
		return opAshr(v, fr, instr)
	case il.OpFadd:
		return opFadd(v, fr, instr)
	case il.OpFsub:
		return opFsub(v, fr, instr)
	case il.OpFmul:
		return opFmul(v, fr, instr)
	case il.OpFdiv:
		return opFdiv(v, fr, instr)
	case il.OpIcmpEq:
		return opIcmpEq(v, fr, instr)
	case il.OpIcmpNe:
		return opIcmpNe(v, fr, instr)
	case il.OpIcmpLt, il.OpScmpLt:
		return opIcmpLt(v, fr, instr)
	case il.OpIcmpLe, il.OpScmpLe:
		return opIcmpLe(v, fr, instr)
	case il.OpIcmpGt, il.OpScmpGt:
		return opIcmpGt(v, fr, instr)
	case il.OpIcmpGe, il.OpScmpGe:
		return opIcmpGe(v, fr, instr)
	case il.OpUcmpLt:
		return opUcmpLt(v, fr, instr)
	case il.OpUcmpLe:
		return opUcmpLe(v, fr, instr)
	case il.OpUcmpGt:
		return opUcmpGt(v, fr, instr)
	case il.OpUcmpGe:
		return opUcmpGe(v, fr, instr)
	case il.OpFcmpEq:
		return opFcmpEq(v, fr, instr)
	case il.OpFcmpNe:
		return opFcmpNe(v, fr, instr)
	case il.OpFcmpLt:
		return opFcmpLt(v, fr, instr)
	case il.OpFcmpLe:
		return opFcmpLe(v, fr, instr)
	case il.OpFcmpGt:
		return opFcmpGt(v, fr, instr)
	case il.OpFcmpGe:
		return opFcmpGe(v, fr, instr)
	case il.OpSitofp:
		return opSitofp(v, fr, instr)
	case il.OpFptosi:
		return opFptosi(v, fr, instr)
	case il.OpCastFpToSiRteChk:
		return opCastFpToSiRteChk(v, fr, instr)
	case il.OpCastUiNarrowChk:
		return opCastUiNarrowChk(v, fr, instr)
	case il.OpZext1:
		return opZext1(v, fr, instr)
	case il.OpTrunc1:
		return opTrunc1(v, fr, instr)
	case il.OpAlloca:
		return opAlloca(v, fr, instr)
	case il.OpLoad:
		return opLoad(v, fr, instr)
	case il.OpStore:
		return opStore(v, fr, instr)
	case il.OpGep:
		return opGep(v, fr, instr)
	case il.OpAddrOf:
		return opAddrOf(v, fr, instr)
	case il.OpConstStr:
		return opConstStr(v, fr, instr)
	case il.OpConstNull:
		return opConstNull(v, fr, instr)
	}
	return slot.Slot{}, raise(il.TrapInvalidOperation, "unimplemented opcode %s", instr.Op)
}

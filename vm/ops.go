// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"math"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// opFn implements one non-terminator, non-call opcode: it reads its
// operands out of fr (via v.evalValue) and instr, and returns either a
// result slot or a trap signal.
type opFn func(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal)

// opTable maps each opcode buildOpTable knows about to its handler; used
// by the FnTable and Threaded dispatch strategies.
type opTable map[il.Op]opFn

func buildOpTable() opTable {
	return opTable{
		il.OpAdd: opAdd, il.OpSub: opSub, il.OpMul: opMul,
		il.OpIaddOvf: opIaddOvf, il.OpIsubOvf: opIsubOvf, il.OpImulOvf: opImulOvf,
		il.OpSdivChk0: opSdivChk0, il.OpUdivChk0: opUdivChk0,
		il.OpSremChk0: opSremChk0, il.OpUremChk0: opUremChk0,
		il.OpAnd: opAnd, il.OpOr: opOr, il.OpXor: opXor,
		il.OpShl: opShl, il.OpLshr: opLshr, il.OpAshr: opAshr,
		il.OpFadd: opFadd, il.OpFsub: opFsub, il.OpFmul: opFmul, il.OpFdiv: opFdiv,
		il.OpIcmpEq: opIcmpEq, il.OpIcmpNe: opIcmpNe, il.OpIcmpLt: opIcmpLt,
		il.OpIcmpLe: opIcmpLe, il.OpIcmpGt: opIcmpGt, il.OpIcmpGe: opIcmpGe,
		il.OpScmpLt: opIcmpLt, il.OpScmpLe: opIcmpLe, il.OpScmpGt: opIcmpGt, il.OpScmpGe: opIcmpGe,
		il.OpUcmpLt: opUcmpLt, il.OpUcmpLe: opUcmpLe, il.OpUcmpGt: opUcmpGt, il.OpUcmpGe: opUcmpGe,
		il.OpFcmpEq: opFcmpEq, il.OpFcmpNe: opFcmpNe, il.OpFcmpLt: opFcmpLt,
		il.OpFcmpLe: opFcmpLe, il.OpFcmpGt: opFcmpGt, il.OpFcmpGe: opFcmpGe,
		il.OpSitofp: opSitofp, il.OpFptosi: opFptosi,
		il.OpCastFpToSiRteChk: opCastFpToSiRteChk, il.OpCastUiNarrowChk: opCastUiNarrowChk,
		il.OpZext1: opZext1, il.OpTrunc1: opTrunc1,
		il.OpAlloca: opAlloca, il.OpLoad: opLoad, il.OpStore: opStore, il.OpGep: opGep,
		il.OpAddrOf: opAddrOf, il.OpConstStr: opConstStr, il.OpConstNull: opConstNull,
	}
}

func operands2(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, slot.Slot) {
	return v.evalValue(fr, instr.Operands[0]), v.evalValue(fr, instr.Operands[1])
}

// ---- Arithmetic (wrapping, no overflow check) ------------------------------

func opAdd(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I + b.I), nil
}

func opSub(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I - b.I), nil
}

func opMul(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I * b.I), nil
}

// ---- Arithmetic (checked) --------------------------------------------------

func opIaddOvf(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	r := a.I + b.I
	if ((a.I ^ r) & (b.I ^ r)) < 0 {
		return slot.Slot{}, raise(il.TrapOverflow, "integer addition overflow")
	}
	return slot.I64(r), nil
}

func opIsubOvf(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	r := a.I - b.I
	if ((a.I ^ b.I) & (a.I ^ r)) < 0 {
		return slot.Slot{}, raise(il.TrapOverflow, "integer subtraction overflow")
	}
	return slot.I64(r), nil
}

func opImulOvf(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	r := a.I * b.I
	if a.I != 0 && (r/a.I != b.I || (a.I == -1 && b.I == math.MinInt64)) {
		return slot.Slot{}, raise(il.TrapOverflow, "integer multiplication overflow")
	}
	return slot.I64(r), nil
}

func opSdivChk0(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	if b.I == 0 {
		return slot.Slot{}, raise(il.TrapDivideByZero, "integer division by zero")
	}
	if a.I == math.MinInt64 && b.I == -1 {
		return slot.Slot{}, raise(il.TrapOverflow, "integer division overflow")
	}
	return slot.I64(a.I / b.I), nil
}

func opUdivChk0(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	if b.I == 0 {
		return slot.Slot{}, raise(il.TrapDivideByZero, "integer division by zero")
	}
	return slot.I64(int64(uint64(a.I) / uint64(b.I))), nil
}

func opSremChk0(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	if b.I == 0 {
		return slot.Slot{}, raise(il.TrapDivideByZero, "integer remainder by zero")
	}
	if a.I == math.MinInt64 && b.I == -1 {
		return slot.Slot{}, raise(il.TrapOverflow, "integer remainder overflow")
	}
	return slot.I64(a.I % b.I), nil
}

func opUremChk0(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	if b.I == 0 {
		return slot.Slot{}, raise(il.TrapDivideByZero, "integer remainder by zero")
	}
	return slot.I64(int64(uint64(a.I) % uint64(b.I))), nil
}

// ---- Bitwise ----------------------------------------------------------------

func opAnd(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I & b.I), nil
}
func opOr(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I | b.I), nil
}
func opXor(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I ^ b.I), nil
}
func opShl(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I << (uint64(b.I) & 63)), nil
}
func opLshr(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(int64(uint64(a.I) >> (uint64(b.I) & 63))), nil
}
func opAshr(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.I64(a.I >> (uint64(b.I) & 63)), nil
}

// ---- Float --------------------------------------------------------------

func opFadd(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.F64(a.F + b.F), nil
}
func opFsub(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.F64(a.F - b.F), nil
}
func opFmul(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.F64(a.F * b.F), nil
}
func opFdiv(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.F64(a.F / b.F), nil
}

// ---- Compare (int) --------------------------------------------------------

func opIcmpEq(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.I == b.I), nil
}
func opIcmpNe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.I != b.I), nil
}
func opIcmpLt(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.I < b.I), nil
}
func opIcmpLe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.I <= b.I), nil
}
func opIcmpGt(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.I > b.I), nil
}
func opIcmpGe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.I >= b.I), nil
}

func opUcmpLt(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(uint64(a.I) < uint64(b.I)), nil
}
func opUcmpLe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(uint64(a.I) <= uint64(b.I)), nil
}
func opUcmpGt(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(uint64(a.I) > uint64(b.I)), nil
}
func opUcmpGe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(uint64(a.I) >= uint64(b.I)), nil
}

// ---- Compare (float, IEEE NaN semantics) -----------------------------------

func opFcmpEq(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.F == b.F), nil
}
func opFcmpNe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.F != b.F), nil
}
func opFcmpLt(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.F < b.F), nil
}
func opFcmpLe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.F <= b.F), nil
}
func opFcmpGt(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.F > b.F), nil
}
func opFcmpGe(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a, b := operands2(v, fr, instr)
	return slot.Bool(a.F >= b.F), nil
}

// ---- Casts ------------------------------------------------------------------

func opSitofp(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a := v.evalValue(fr, instr.Operands[0])
	return slot.F64(float64(a.I)), nil
}

func opFptosi(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a := v.evalValue(fr, instr.Operands[0])
	if math.IsNaN(a.F) || math.IsInf(a.F, 0) || a.F >= 9223372036854775808.0 || a.F < -9223372036854775808.0 {
		return slot.Slot{}, raise(il.TrapInvalidCast, "float-to-int cast out of range")
	}
	return slot.I64(int64(a.F)), nil
}

func opCastFpToSiRteChk(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a := v.evalValue(fr, instr.Operands[0])
	r := math.RoundToEven(a.F)
	if math.IsNaN(r) || math.IsInf(r, 0) || r >= 9223372036854775808.0 || r < -9223372036854775808.0 {
		return slot.Slot{}, raise(il.TrapInvalidCast, "round-to-even float-to-int cast out of range")
	}
	return slot.I64(int64(r)), nil
}

func opCastUiNarrowChk(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a := v.evalValue(fr, instr.Operands[0])
	var width uint
	switch instr.Type.Kind {
	case il.I1:
		width = 1
	case il.I16:
		width = 16
	case il.I32:
		width = 32
	default:
		width = 64
	}
	if width >= 64 {
		return slot.I64(a.I), nil
	}
	limit := uint64(1) << width
	if uint64(a.I) >= limit {
		return slot.Slot{}, raise(il.TrapInvalidCast, "narrowing cast out of range")
	}
	return slot.I64(a.I), nil
}

func opZext1(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a := v.evalValue(fr, instr.Operands[0])
	return slot.I64(a.I), nil
}

func opTrunc1(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	a := v.evalValue(fr, instr.Operands[0])
	return slot.Bool(a.I&1 != 0), nil
}

// ---- Memory -------------------------------------------------------------

func opAlloca(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	if instr.AllocaBytes < 0 {
		return slot.Slot{}, raise(il.TrapBounds, "alloca: negative size")
	}
	return slot.Pointer(newCell(instr.Type)), nil
}

func opLoad(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	ptr := v.evalValue(fr, instr.Operands[0])
	cell, ok := ptr.Ptr.(*Cell)
	if !ok || cell == nil {
		return slot.Slot{}, raise(il.TrapInvalidOperation, "load: nil or non-cell pointer")
	}
	return cell.Value, nil
}

func opStore(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	ptr := v.evalValue(fr, instr.Operands[0])
	val := v.evalValue(fr, instr.Operands[1])
	cell, ok := ptr.Ptr.(*Cell)
	if !ok || cell == nil {
		return slot.Slot{}, raise(il.TrapInvalidOperation, "store: nil or non-cell pointer")
	}
	cell.Value = val
	return slot.Slot{}, nil
}

// opGep is an identity cast: this core's `gep` carries no byte-offset
// operand (spec.md §4.3.3's signature for it is a single ptr operand), so
// the result pointer is the same Cell the input pointer names.
func opGep(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	return v.evalValue(fr, instr.Operands[0]), nil
}

func opAddrOf(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	return v.evalGlobal(instr.GlobalName), nil
}

func opConstStr(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	return v.evalGlobal(instr.GlobalName), nil
}

func opConstNull(v *VM, fr *Frame, instr *il.Instruction) (slot.Slot, *trapSignal) {
	return slot.Pointer(nil), nil
}

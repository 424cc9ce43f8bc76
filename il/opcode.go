package il

import "fmt"

// Op is an IL instruction opcode. Mnemonics match spec.md verbatim.
type Op int

const (
	// Arithmetic/overflow
	OpAdd Op = iota
	OpSub
	OpMul
	OpIaddOvf
	OpIsubOvf
	OpImulOvf
	OpSdivChk0
	OpUdivChk0
	OpSremChk0
	OpUremChk0

	// Bitwise/shift
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLshr
	OpAshr

	// Float
	OpFadd
	OpFsub
	OpFmul
	OpFdiv

	// Compare (signed int)
	OpIcmpEq
	OpIcmpNe
	OpIcmpLt
	OpIcmpLe
	OpIcmpGt
	OpIcmpGe
	// Compare (explicit signed variant, same semantics as Icmp*)
	OpScmpLt
	OpScmpLe
	OpScmpGt
	OpScmpGe
	// Compare (unsigned variant)
	OpUcmpLt
	OpUcmpLe
	OpUcmpGt
	OpUcmpGe
	// Compare (float)
	OpFcmpEq
	OpFcmpNe
	OpFcmpLt
	OpFcmpLe
	OpFcmpGt
	OpFcmpGe

	// Cast
	OpSitofp
	OpFptosi
	OpCastFpToSiRteChk
	OpCastUiNarrowChk
	OpZext1
	OpTrunc1

	// Memory
	OpAlloca
	OpLoad
	OpStore
	OpGep
	OpAddrOf
	OpConstStr
	OpConstNull

	// Control
	OpBr
	OpCBr
	OpRet
	OpTrap

	// Call
	OpCall
)

var opNames = map[Op]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul",
	OpIaddOvf: "iadd.ovf", OpIsubOvf: "isub.ovf", OpImulOvf: "imul.ovf",
	OpSdivChk0: "sdiv.chk0", OpUdivChk0: "udiv.chk0",
	OpSremChk0: "srem.chk0", OpUremChk0: "urem.chk0",
	OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpShl: "shl", OpLshr: "lshr", OpAshr: "ashr",
	OpFadd: "fadd", OpFsub: "fsub", OpFmul: "fmul", OpFdiv: "fdiv",
	OpIcmpEq: "icmp_eq", OpIcmpNe: "icmp_ne", OpIcmpLt: "icmp_lt",
	OpIcmpLe: "icmp_le", OpIcmpGt: "icmp_gt", OpIcmpGe: "icmp_ge",
	OpScmpLt: "scmp_lt", OpScmpLe: "scmp_le", OpScmpGt: "scmp_gt", OpScmpGe: "scmp_ge",
	OpUcmpLt: "ucmp_lt", OpUcmpLe: "ucmp_le", OpUcmpGt: "ucmp_gt", OpUcmpGe: "ucmp_ge",
	OpFcmpEq: "fcmp_eq", OpFcmpNe: "fcmp_ne", OpFcmpLt: "fcmp_lt",
	OpFcmpLe: "fcmp_le", OpFcmpGt: "fcmp_gt", OpFcmpGe: "fcmp_ge",
	OpSitofp: "sitofp", OpFptosi: "fptosi",
	OpCastFpToSiRteChk: "cast.fp_to_si.rte.chk", OpCastUiNarrowChk: "cast.ui_narrow.chk",
	OpZext1: "zext1", OpTrunc1: "trunc1",
	OpAlloca: "alloca", OpLoad: "load", OpStore: "store", OpGep: "gep",
	OpAddrOf: "addr_of", OpConstStr: "const_str", OpConstNull: "const_null",
	OpBr: "br", OpCBr: "cbr", OpRet: "ret", OpTrap: "trap",
	OpCall: "call",
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// ParseOp maps a mnemonic to its Op. ok is false for unknown mnemonics.
func ParseOp(s string) (Op, bool) {
	op, ok := opByName[s]
	return op, ok
}

// IsTerminator reports whether op may only appear as a block's last
// instruction and transfers control.
func (op Op) IsTerminator() bool {
	switch op {
	case OpBr, OpCBr, OpRet, OpTrap:
		return true
	}
	return false
}

// ProducesResult reports whether op yields a value (and therefore requires
// a result temp id on the instruction).
func (op Op) ProducesResult() bool {
	switch op {
	case OpStore, OpBr, OpCBr, OpRet, OpTrap:
		return false
	case OpCall:
		return true // result id present iff return type is not void; caller decides
	}
	return true
}

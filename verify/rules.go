package verify

import "github.com/splanck/viper-sub036/il"

// opSignature describes the operand-class expectations for an opcode family.
type opSignature struct {
	operands []class
	result   class
}

// signatures covers every opcode that has a fixed, generic operand shape.
// Opcodes handled by dedicated logic (br, cbr, ret, trap, call, alloca,
// addr_of, const_str, const_null, load, store, gep) are checked separately
// in terminators.go/memory.go since their shape depends on block/global/
// callee context, not just a per-operand class list.
var signatures = map[il.Op]opSignature{
	il.OpAdd:       {[]class{clInt, clInt}, clInt},
	il.OpSub:       {[]class{clInt, clInt}, clInt},
	il.OpMul:       {[]class{clInt, clInt}, clInt},
	il.OpIaddOvf:   {[]class{clInt, clInt}, clInt},
	il.OpIsubOvf:   {[]class{clInt, clInt}, clInt},
	il.OpImulOvf:   {[]class{clInt, clInt}, clInt},
	il.OpSdivChk0:  {[]class{clInt, clInt}, clInt},
	il.OpUdivChk0:  {[]class{clInt, clInt}, clInt},
	il.OpSremChk0:  {[]class{clInt, clInt}, clInt},
	il.OpUremChk0:  {[]class{clInt, clInt}, clInt},
	il.OpAnd:       {[]class{clInt, clInt}, clInt},
	il.OpOr:        {[]class{clInt, clInt}, clInt},
	il.OpXor:       {[]class{clInt, clInt}, clInt},
	il.OpShl:       {[]class{clInt, clInt}, clInt},
	il.OpLshr:      {[]class{clInt, clInt}, clInt},
	il.OpAshr:      {[]class{clInt, clInt}, clInt},
	il.OpFadd:      {[]class{clFloat, clFloat}, clFloat},
	il.OpFsub:      {[]class{clFloat, clFloat}, clFloat},
	il.OpFmul:      {[]class{clFloat, clFloat}, clFloat},
	il.OpFdiv:      {[]class{clFloat, clFloat}, clFloat},
	il.OpIcmpEq:    {[]class{clInt, clInt}, clBool},
	il.OpIcmpNe:    {[]class{clInt, clInt}, clBool},
	il.OpIcmpLt:    {[]class{clInt, clInt}, clBool},
	il.OpIcmpLe:    {[]class{clInt, clInt}, clBool},
	il.OpIcmpGt:    {[]class{clInt, clInt}, clBool},
	il.OpIcmpGe:    {[]class{clInt, clInt}, clBool},
	il.OpScmpLt:    {[]class{clInt, clInt}, clBool},
	il.OpScmpLe:    {[]class{clInt, clInt}, clBool},
	il.OpScmpGt:    {[]class{clInt, clInt}, clBool},
	il.OpScmpGe:    {[]class{clInt, clInt}, clBool},
	il.OpUcmpLt:    {[]class{clInt, clInt}, clBool},
	il.OpUcmpLe:    {[]class{clInt, clInt}, clBool},
	il.OpUcmpGt:    {[]class{clInt, clInt}, clBool},
	il.OpUcmpGe:    {[]class{clInt, clInt}, clBool},
	il.OpFcmpEq:    {[]class{clFloat, clFloat}, clBool},
	il.OpFcmpNe:    {[]class{clFloat, clFloat}, clBool},
	il.OpFcmpLt:    {[]class{clFloat, clFloat}, clBool},
	il.OpFcmpLe:    {[]class{clFloat, clFloat}, clBool},
	il.OpFcmpGt:    {[]class{clFloat, clFloat}, clBool},
	il.OpFcmpGe:    {[]class{clFloat, clFloat}, clBool},
	il.OpSitofp:    {[]class{clInt}, clFloat},
	il.OpFptosi:    {[]class{clFloat}, clInt},
	il.OpCastFpToSiRteChk: {[]class{clFloat}, clInt},
	il.OpCastUiNarrowChk:  {[]class{clInt}, clInt},
	il.OpZext1:     {[]class{clBool}, clInt},
	il.OpTrunc1:    {[]class{clInt}, clBool},
	il.OpGep:       {[]class{clPtr}, clPtr},
}

// compareOps is consulted to enforce "compare opcodes return i1" even when
// the printer omitted an explicit result Type.
func isCompareOp(op il.Op) bool {
	switch op {
	case il.OpIcmpEq, il.OpIcmpNe, il.OpIcmpLt, il.OpIcmpLe, il.OpIcmpGt, il.OpIcmpGe,
		il.OpScmpLt, il.OpScmpLe, il.OpScmpGt, il.OpScmpGe,
		il.OpUcmpLt, il.OpUcmpLe, il.OpUcmpGt, il.OpUcmpGe,
		il.OpFcmpEq, il.OpFcmpNe, il.OpFcmpLt, il.OpFcmpLe, il.OpFcmpGt, il.OpFcmpGe:
		return true
	}
	return false
}

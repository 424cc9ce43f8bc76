package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
)

// checkTypes enforces spec.md §4.3.3's generic operand-type rules for
// opcodes with a fixed operand shape. Opcodes whose shape depends on
// context (br/cbr/ret/trap/call/alloca/addr_of/const_str/const_null/load/
// store/gep) are checked elsewhere.
func checkTypes(fn *il.Function, tempTypes map[int]il.Type) []Diagnostic {
	var diags []Diagnostic
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii, inst := range bb.Instructions {
			sig, ok := signatures[inst.Op]
			if !ok {
				continue
			}
			if len(inst.Operands) != len(sig.operands) {
				diags = append(diags, Diagnostic{
					Rule: "operand-arity", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("%s expects %d operand(s), got %d", inst.Op, len(sig.operands), len(inst.Operands)),
				})
				continue
			}
			for oi, want := range sig.operands {
				got := valueClass(inst.Operands[oi], tempTypes)
				if !compatible(want, got) {
					diags = append(diags, Diagnostic{
						Rule: "operand-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: fmt.Sprintf("%s operand %d: expected %s, got %s", inst.Op, oi, want, got),
					})
				}
			}
			if inst.HasResult && inst.Type.Kind != il.Void {
				got := classOfType(inst.Type)
				if !compatible(sig.result, got) {
					diags = append(diags, Diagnostic{
						Rule: "result-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: fmt.Sprintf("%s result: expected %s, got %s", inst.Op, sig.result, got),
					})
				}
			}
			if isCompareOp(inst.Op) && inst.HasResult && inst.Type.Kind != il.Void && inst.Type.Kind != il.I1 {
				diags = append(diags, Diagnostic{
					Rule: "compare-result-i1", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("%s must produce i1, got %s", inst.Op, inst.Type),
				})
			}
		}
	}
	return diags
}

package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
)

// checkMemory enforces spec.md §4.3.3's "memory opcodes require ptr
// operands and a typed element" rule for load/store/alloca.
func checkMemory(fn *il.Function, tempTypes map[int]il.Type) []Diagnostic {
	var diags []Diagnostic
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii, inst := range bb.Instructions {
			switch inst.Op {
			case il.OpLoad:
				if len(inst.Operands) != 1 {
					diags = append(diags, Diagnostic{
						Rule: "operand-arity", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: "load expects exactly one address operand",
					})
					continue
				}
				if c := valueClass(inst.Operands[0], tempTypes); !compatible(clPtr, c) {
					diags = append(diags, Diagnostic{
						Rule: "operand-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: fmt.Sprintf("load address must be ptr, got %s", c),
					})
				}
				if inst.HasResult && inst.Type.Kind == il.Void {
					diags = append(diags, Diagnostic{
						Rule: "load-element-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: "load result has no element type",
					})
				}
			case il.OpStore:
				if len(inst.Operands) != 2 {
					diags = append(diags, Diagnostic{
						Rule: "operand-arity", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: "store expects address and value operands",
					})
					continue
				}
				if c := valueClass(inst.Operands[0], tempTypes); !compatible(clPtr, c) {
					diags = append(diags, Diagnostic{
						Rule: "operand-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: fmt.Sprintf("store address must be ptr, got %s", c),
					})
				}
			case il.OpAlloca:
				// Zero is a valid alloca size (spec.md §3); only a
				// statically negative immediate is rejected here. The VM
				// itself traps on negative size at run time too, in case
				// a producer other than the text parser hands the VM a
				// negative AllocaBytes directly.
				if inst.AllocaBytes < 0 {
					diags = append(diags, Diagnostic{
						Rule: "alloca-size", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: "alloca size must not be negative",
					})
				}
			}
		}
	}
	return diags
}

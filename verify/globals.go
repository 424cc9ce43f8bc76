package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
)

// checkGlobalRefs enforces spec.md §4.3.6: addr_of and const_str must name
// an existing global.
func checkGlobalRefs(m *il.Module, fn *il.Function) []Diagnostic {
	var diags []Diagnostic
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii, inst := range bb.Instructions {
			if inst.Op != il.OpAddrOf && inst.Op != il.OpConstStr {
				continue
			}
			if m.GlobalByName(inst.GlobalName) == nil {
				diags = append(diags, Diagnostic{
					Rule: "unknown-global", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("%s references undefined global %q", inst.Op, inst.GlobalName),
				})
			}
		}
	}
	return diags
}

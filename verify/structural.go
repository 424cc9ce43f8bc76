package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/il"
)

func checkStructural(fn *il.Function) []Diagnostic {
	var diags []Diagnostic

	seenLabels := map[string]bool{}
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		if seenLabels[bb.Label] {
			diags = append(diags, Diagnostic{
				Rule: "unique-label", Fn: fn.Name, Block: bb.Label,
				Message: "duplicate block label",
			})
		}
		seenLabels[bb.Label] = true

		if len(bb.Instructions) == 0 {
			diags = append(diags, Diagnostic{
				Rule: "block-terminated", Fn: fn.Name, Block: bb.Label, Instr: 0,
				Message: "empty block has no terminator",
			})
			continue
		}
		for ii, inst := range bb.Instructions {
			last := ii == len(bb.Instructions)-1
			if inst.Op.IsTerminator() && !last {
				diags = append(diags, Diagnostic{
					Rule: "no-instr-after-terminator", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: "instruction follows a terminator",
				})
			}
		}
		if !bb.Terminated() {
			diags = append(diags, Diagnostic{
				Rule: "block-terminated", Fn: fn.Name, Block: bb.Label, Instr: len(bb.Instructions) - 1,
				Message: "block does not end in a terminator",
			})
		}
	}
	return diags
}

// checkEntryHasNoPredecessors enforces spec.md §4.3.1: the entry block is
// never the target of a branch within its own function.
func checkEntryHasNoPredecessors(fn *il.Function, cfg *analysis.CFG) []Diagnostic {
	if len(fn.Blocks) == 0 {
		return nil
	}
	if preds := cfg.Predecessors(0); len(preds) > 0 {
		return []Diagnostic{{
			Rule: "entry-no-preds", Fn: fn.Name, Block: fn.Blocks[0].Label,
			Message: fmt.Sprintf("entry block %q is the target of a branch", fn.Blocks[0].Label),
		}}
	}
	return nil
}

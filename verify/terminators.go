package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/il"
)

// checkTerminators enforces spec.md §4.3.4: branch targets resolve within
// the function, branch-argument lists match the target block's parameter
// shape, ret's operand matches the function's return type, and trap takes
// no operands. CFG is unused for target resolution here (it silently drops
// unknown labels, which is a verifier error rather than a CFG one) but is
// accepted for symmetry with the rest of the per-function checks.
func checkTerminators(m *il.Module, fn *il.Function, _ *analysis.CFG, tempTypes map[int]il.Type) []Diagnostic {
	var diags []Diagnostic
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		term := bb.Terminator()
		if term == nil {
			continue // already reported by checkStructural
		}
		ii := len(bb.Instructions) - 1
		switch term.Op {
		case il.OpBr:
			diags = append(diags, checkBrTarget(fn, bb.Label, ii, term.Labels[0], term.BrArgs[0], tempTypes)...)
		case il.OpCBr:
			diags = append(diags, checkBrTarget(fn, bb.Label, ii, term.Labels[0], term.BrArgs[0], tempTypes)...)
			diags = append(diags, checkBrTarget(fn, bb.Label, ii, term.Labels[1], term.BrArgs[1], tempTypes)...)
		case il.OpRet:
			if fn.ReturnType.Kind == il.Void {
				if len(term.Operands) != 0 {
					diags = append(diags, Diagnostic{
						Rule: "ret-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
						Message: "ret in a void function must take no operand",
					})
				}
			} else if len(term.Operands) != 1 {
				diags = append(diags, Diagnostic{
					Rule: "ret-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("ret expects one operand of type %s", fn.ReturnType),
				})
			}
		case il.OpTrap:
			if len(term.Operands) != 0 {
				diags = append(diags, Diagnostic{
					Rule: "trap-no-operands", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: "trap takes no operands",
				})
			}
		}
	}
	return diags
}

func checkBrTarget(fn *il.Function, fromLabel string, instrIdx int, target string, args []il.Value, tempTypes map[int]il.Type) []Diagnostic {
	var diags []Diagnostic
	bb := fn.BlockByLabel(target)
	if bb == nil {
		return []Diagnostic{{
			Rule: "unknown-branch-target", Fn: fn.Name, Block: fromLabel, Instr: instrIdx,
			Message: fmt.Sprintf("branch target %q does not exist", target),
		}}
	}
	if len(args) != len(bb.Params) {
		diags = append(diags, Diagnostic{
			Rule: "branch-arg-arity", Fn: fn.Name, Block: fromLabel, Instr: instrIdx,
			Message: fmt.Sprintf("branch to %q passes %d argument(s), target expects %d", target, len(args), len(bb.Params)),
		})
		return diags
	}
	for i, p := range bb.Params {
		got := valueClass(args[i], tempTypes)
		if !compatible(classOfType(p.Type), got) {
			diags = append(diags, Diagnostic{
				Rule: "branch-arg-type", Fn: fn.Name, Block: fromLabel, Instr: instrIdx,
				Message: fmt.Sprintf("branch to %q argument %d: expected %s", target, i, p.Type),
			})
		}
	}
	return diags
}

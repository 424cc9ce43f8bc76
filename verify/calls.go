package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
)

// checkCalls enforces spec.md §4.3.5: the callee resolves to an extern or a
// module function, argument count and classes match its signature, and a
// result id is present iff the return type is not void.
func checkCalls(m *il.Module, fn *il.Function, tempTypes map[int]il.Type) []Diagnostic {
	var diags []Diagnostic
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii, inst := range bb.Instructions {
			if inst.Op != il.OpCall {
				continue
			}
			paramTypes, retType, ok := resolveCallee(m, inst.CalleeName)
			if !ok {
				diags = append(diags, Diagnostic{
					Rule: "call-target", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("call to undefined function %q", inst.CalleeName),
				})
				continue
			}
			if len(inst.Operands) != len(paramTypes) {
				diags = append(diags, Diagnostic{
					Rule: "call-arity", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("%s: expected %d argument(s), got %d", inst.CalleeName, len(paramTypes), len(inst.Operands)),
				})
			} else {
				for ai, pt := range paramTypes {
					got := valueClass(inst.Operands[ai], tempTypes)
					if !compatible(classOfType(pt), got) {
						diags = append(diags, Diagnostic{
							Rule: "call-arg-type", Fn: fn.Name, Block: bb.Label, Instr: ii,
							Message: fmt.Sprintf("%s argument %d: expected %s, got %s", inst.CalleeName, ai, pt, got),
						})
					}
				}
			}
			wantsResult := retType.Kind != il.Void
			if inst.HasResult != wantsResult {
				diags = append(diags, Diagnostic{
					Rule: "call-result-presence", Fn: fn.Name, Block: bb.Label, Instr: ii,
					Message: fmt.Sprintf("%s: result id present=%v but return type is %s", inst.CalleeName, inst.HasResult, retType),
				})
			}
		}
	}
	return diags
}

func resolveCallee(m *il.Module, name string) (params []il.Type, ret il.Type, ok bool) {
	if e := m.ExternByName(name); e != nil {
		return e.ParamTypes, e.ReturnType, true
	}
	if f := m.FuncByName(name); f != nil {
		pts := make([]il.Type, len(f.Params))
		for i, p := range f.Params {
			pts[i] = p.Type
		}
		return pts, f.ReturnType, true
	}
	return nil, il.Type{}, false
}

package debug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

// resolveWatchID maps a --watch argument to a temp id: either the explicit
// canonical form "%tN"/"tN", or a name matching a function parameter or a
// block parameter (the mem2reg-promoted form a BASIC local takes once it
// becomes a block argument).
func resolveWatchID(fn *il.Function, name string) (int, bool) {
	trimmed := strings.TrimPrefix(name, "%")
	if strings.HasPrefix(trimmed, "t") {
		if n, err := strconv.Atoi(trimmed[1:]); err == nil {
			return n, true
		}
	}
	for _, p := range fn.Params {
		if p.Name == trimmed {
			return p.SlotID, true
		}
	}
	for _, bb := range fn.Blocks {
		for _, p := range bb.Params {
			if p.Name == trimmed {
				return p.SlotID, true
			}
		}
	}
	return 0, false
}

// typeOfTemp finds the declared Type of a temp id by scanning fn's
// parameters, block parameters, and defining instructions.
func typeOfTemp(fn *il.Function, id int) (il.Type, bool) {
	for _, p := range fn.Params {
		if p.SlotID == id {
			return p.Type, true
		}
	}
	for _, bb := range fn.Blocks {
		for _, p := range bb.Params {
			if p.SlotID == id {
				return p.Type, true
			}
		}
		for _, inst := range bb.Instructions {
			if inst.HasResult && inst.ResultID == id {
				return inst.Type, true
			}
		}
	}
	return il.Type{}, false
}

// formatSlotValue renders s the way its declared type dictates, matching
// the mnemonics the IL printer and trap messages already use.
func formatSlotValue(typ il.Type, s slot.Slot) string {
	switch typ.Kind {
	case il.I1:
		if s.AsBool() {
			return "true"
		}
		return "false"
	case il.F64:
		return strconv.FormatFloat(s.F, 'g', -1, 64)
	case il.Ptr, il.Str:
		if s.Ptr == nil {
			return "null"
		}
		if rs, ok := s.Ptr.(*runtime.RtString); ok {
			return rs.String()
		}
		return fmt.Sprintf("%v", s.Ptr)
	default:
		return strconv.FormatInt(s.I, 10)
	}
}

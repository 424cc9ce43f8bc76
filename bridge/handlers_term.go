package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerTerm(b *Bridge) {
	b.register("rt_term_color_i32", Signature{Params: []il.Type{il.T(il.I32), il.T(il.I32)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			code := runtime.RtTermColorI32(int32(args[0].I), int32(args[1].I))
			return strSlot(runtime.RtConstCstr(code)), nil
		})
}

package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerAlloc(b *Bridge) {
	b.register("rt_alloc", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Ptr)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			buf, err := b.RT.RtAlloc(args[0].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return slot.Pointer(buf), nil
		})
}

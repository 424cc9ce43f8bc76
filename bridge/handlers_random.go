package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerRandom(b *Bridge) {
	b.register("rt_randomize_i64", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			b.RT.RtRandomizeI64(args[0].I)
			return slot.Slot{}, nil
		})

	b.register("rt_rnd", Signature{Params: nil, Return: il.T(il.F64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.F64(b.RT.RtRnd()), nil
		})
}

package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerTime(b *Bridge) {
	b.register("rt_sleep_ms", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			runtime.RtSleepMs(args[0].I)
			return slot.Slot{}, nil
		})

	b.register("rt_timer_ms", Signature{Params: nil, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.I64(runtime.RtTimerMs()), nil
		})
}

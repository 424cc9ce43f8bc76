package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerArgs(b *Bridge) {
	b.register("rt_args_push", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			b.RT.RtArgsPush(str(args[0]).String())
			return slot.Slot{}, nil
		})

	b.register("rt_args_count", Signature{Params: nil, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.I64(b.RT.RtArgsCount()), nil
		})

	b.register("rt_args_get", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			s, err := b.RT.RtArgsGet(args[0].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(runtime.RtConstCstr(s)), nil
		})

	b.register("rt_args_clear", Signature{Params: nil, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			b.RT.RtArgsClear()
			return slot.Slot{}, nil
		})

	b.register("rt_cmdline", Signature{Params: nil, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return strSlot(runtime.RtConstCstr(b.RT.RtCmdline())), nil
		})
}

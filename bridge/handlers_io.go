package bridge

import (
	"io"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerIO(b *Bridge) {
	b.register("rt_print_str", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			runtime.RtPrintStr(b.Stdout, str(args[0]))
			return slot.Slot{}, nil
		})

	b.register("rt_print_i64", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			runtime.RtPrintI64(b.Stdout, args[0].I)
			return slot.Slot{}, nil
		})

	b.register("rt_input_line", Signature{Params: nil, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			line, err := runtime.RtInputLine(b.Stdin)
			if err != nil && err != io.EOF {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(runtime.RtStringFromBytes([]byte(line))), nil
		})

	b.register("rt_open_err_vstr", Signature{Params: []il.Type{il.T(il.Str), il.T(il.Str)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			fd, rerr := b.RT.RtOpenErrVstr(str(args[0]).String(), str(args[1]).String())
			if !rerr.IsNone() {
				return rtErrSlot(rerr), nil
			}
			return slot.I64(int64(fd)), nil
		})

	b.register("rt_close_err", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			rerr := b.RT.RtCloseErr(int(args[0].I))
			return rtErrSlot(rerr), nil
		})
}

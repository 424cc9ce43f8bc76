package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerStrings(b *Bridge) {
	b.register("rt_string_from_bytes", Signature{Params: []il.Type{il.T(il.Ptr)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return strSlot(runtime.RtStringFromBytes([]byte(str(args[0]).String()))), nil
		})

	b.register("rt_const_cstr", Signature{Params: []il.Type{il.T(il.Ptr)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return strSlot(runtime.RtConstCstr(str(args[0]).String())), nil
		})

	b.register("rt_string_unref", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Void)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			str(args[0]).Unref()
			return slot.Slot{}, nil
		})

	b.register("rt_concat", Signature{Params: []il.Type{il.T(il.Str), il.T(il.Str)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return strSlot(runtime.RtConcat(str(args[0]), str(args[1]))), nil
		})

	b.register("rt_substr", Signature{Params: []il.Type{il.T(il.Str), il.T(il.I64), il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			r, err := runtime.RtSubstr(str(args[0]), args[1].I, args[2].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(r), nil
		})

	b.register("rt_len", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.I64(str(args[0]).Len()), nil
		})

	b.register("rt_str_eq", Signature{Params: []il.Type{il.T(il.Str), il.T(il.Str)}, Return: il.T(il.I1)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.Bool(runtime.RtStrEq(str(args[0]), str(args[1]))), nil
		})

	b.register("rt_left", Signature{Params: []il.Type{il.T(il.Str), il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			r, err := runtime.RtLeft(str(args[0]), args[1].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(r), nil
		})

	b.register("rt_right", Signature{Params: []il.Type{il.T(il.Str), il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			r, err := runtime.RtRight(str(args[0]), args[1].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(r), nil
		})

	b.register("rt_mid2", Signature{Params: []il.Type{il.T(il.Str), il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			r, err := runtime.RtMid2(str(args[0]), args[1].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(r), nil
		})

	b.register("rt_mid3", Signature{Params: []il.Type{il.T(il.Str), il.T(il.I64), il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			r, err := runtime.RtMid3(str(args[0]), args[1].I, args[2].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(r), nil
		})

	b.register("rt_ltrim", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) { return strSlot(runtime.RtLtrim(str(args[0]))), nil })
	b.register("rt_rtrim", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) { return strSlot(runtime.RtRtrim(str(args[0]))), nil })
	b.register("rt_trim", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) { return strSlot(runtime.RtTrim(str(args[0]))), nil })
	b.register("rt_ucase", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) { return strSlot(runtime.RtUcase(str(args[0]))), nil })
	b.register("rt_lcase", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) { return strSlot(runtime.RtLcase(str(args[0]))), nil })

	b.register("rt_str_chr", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			r, err := runtime.RtStrChr(args[0].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return strSlot(r), nil
		})

	b.register("rt_str_asc", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			v, err := runtime.RtStrAsc(str(args[0]))
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return slot.I64(v), nil
		})

	b.register("rt_instr2", Signature{Params: []il.Type{il.T(il.Str), il.T(il.Str)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.I64(runtime.RtInstr2(str(args[0]), str(args[1]))), nil
		})

	b.register("rt_instr3", Signature{Params: []il.Type{il.T(il.I64), il.T(il.Str), il.T(il.Str)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			v, err := runtime.RtInstr3(args[0].I, str(args[1]), str(args[2]))
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return slot.I64(v), nil
		})
}

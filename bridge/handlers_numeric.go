package bridge

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

func registerNumeric(b *Bridge) {
	f64f64 := Signature{Params: []il.Type{il.T(il.F64)}, Return: il.T(il.F64)}

	b.register("rt_sqrt", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtSqrt(args[0].F)), nil
	})
	b.register("rt_floor", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtFloor(args[0].F)), nil
	})
	b.register("rt_ceil", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtCeil(args[0].F)), nil
	})
	b.register("rt_abs_f64", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtAbsF64(args[0].F)), nil
	})
	b.register("rt_round_even", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtRoundEven(args[0].F)), nil
	})
	b.register("rt_int_floor", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtIntFloor(args[0].F)), nil
	})
	b.register("rt_fix_trunc", f64f64, func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
		return slot.F64(runtime.RtFixTrunc(args[0].F)), nil
	})

	b.register("rt_pow_f64_chkdom", Signature{Params: []il.Type{il.T(il.F64), il.T(il.F64)}, Return: il.T(il.F64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			v, e := runtime.RtPowF64Chkdom(args[0].F, args[1].F)
			if !e.IsNone() {
				return slot.F64(0), &runtime.TrapError{Kind: il.TrapDomainError, Message: "rt_pow_f64_chkdom: domain error"}
			}
			return slot.F64(v), nil
		})

	b.register("rt_abs_i64", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			v, err := runtime.RtAbsI64(args[0].I)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return slot.I64(v), nil
		})

	b.register("rt_cint_from_double", Signature{Params: []il.Type{il.T(il.F64)}, Return: il.T(il.I64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			v, err := runtime.RtCintFromDouble(args[0].F)
			if err != nil {
				return slot.Slot{}, asTrap(err)
			}
			return slot.I64(v), nil
		})

	b.register("rt_val", Signature{Params: []il.Type{il.T(il.Str)}, Return: il.T(il.F64)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return slot.F64(runtime.RtVal(str(args[0]))), nil
		})

	b.register("rt_str_i64", Signature{Params: []il.Type{il.T(il.I64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return strSlot(runtime.RtStrI64(args[0].I)), nil
		})

	b.register("rt_str_f64", Signature{Params: []il.Type{il.T(il.F64)}, Return: il.T(il.Str)},
		func(args []slot.Slot) (slot.Slot, *runtime.TrapError) {
			return strSlot(runtime.RtStrF64(args[0].F)), nil
		})
}

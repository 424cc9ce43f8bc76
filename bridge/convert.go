package bridge

import (
	"errors"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

// str unwraps a slot carrying an *runtime.RtString.
func str(s slot.Slot) *runtime.RtString {
	rs, _ := s.Ptr.(*runtime.RtString)
	return rs
}

// strSlot wraps an *runtime.RtString into a slot.
func strSlot(s *runtime.RtString) slot.Slot { return slot.Pointer(s) }

// asTrap converts an error returned by a runtime helper into a
// *runtime.TrapError. Helpers only ever return nil or a *runtime.TrapError,
// but errors.As keeps this robust if that ever changes.
func asTrap(err error) *runtime.TrapError {
	if err == nil {
		return nil
	}
	var te *runtime.TrapError
	if errors.As(err, &te) {
		return te
	}
	return &runtime.TrapError{Kind: il.TrapInvalidOperation, Message: err.Error()}
}

// rtErrSlot packs an RtError into a result slot the BASIC front end's
// calling convention expects (kind, code) — represented here as a single
// slot whose I field multiplexes kind in the high 32 bits and code in the
// low 32 bits, since rt_open_err_vstr/rt_close_err return one soft-error
// value rather than trapping.
func rtErrSlot(e runtime.RtError) slot.Slot {
	return slot.I64(int64(e.Kind)<<32 | int64(uint32(e.Code)))
}

// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

// Frame is one call's activation record: the function under execution, the
// current block and instruction pointer, and a flat slot array indexed by
// temp id (sized to the function's NextTempID so every temp has a home
// regardless of which block defines it).
type Frame struct {
	Fn    *il.Function
	Block *il.BasicBlock
	IP    int
	Slots []slot.Slot

	// CallerHasResult/CallerSlot record where this frame's return value
	// must land in the caller's slots once a Ret pops this frame.
	CallerHasResult bool
	CallerSlot      int
}

// newFrame allocates a Frame positioned at fn's entry block.
func newFrame(fn *il.Function) *Frame {
	return &Frame{
		Fn:    fn,
		Block: fn.Entry(),
		Slots: make([]slot.Slot, fn.NextTempID),
	}
}

// bindParams copies args into fn's entry-block parameter slots, the shape
// both a fresh call and a tail-call reuse of the current Frame need.
func (f *Frame) bindParams(params []il.Param, args []slot.Slot) {
	for i, p := range params {
		if i < len(args) {
			f.bind(p.SlotID, args[i])
		}
	}
}

// store records a freshly produced value (an instruction's own result) in
// id's slot. A runtime string handle carried by v already reflects one
// owner — the instruction that produced it — so store takes that
// ownership over rather than incrementing again; spec.md §5's "balances
// increments and decrements per slot write" nets to zero here by design.
func (f *Frame) store(id int, v slot.Slot) {
	unrefSlot(f.Slots[id])
	f.Slots[id] = v
}

// bind copies a value that already lives in some other slot into id's
// slot: a call's argument binding, a branch's block-parameter commit, and
// a return's transfer into the caller's result slot all share this
// shape. The value gains a second home, so it gains a second reference;
// whatever bind displaces loses one.
func (f *Frame) bind(id int, v slot.Slot) {
	refSlot(v)
	unrefSlot(f.Slots[id])
	f.Slots[id] = v
}

// release unrefs every runtime string still resident in f's slots — the
// "per frame pop" half of spec.md §5's balance. Called when f is popped
// off the call stack, and when a tail call discards f's slots in place.
func (f *Frame) release() {
	for i := range f.Slots {
		unrefSlot(f.Slots[i])
	}
}

func refSlot(v slot.Slot) {
	if s, ok := v.Ptr.(*runtime.RtString); ok {
		s.Ref()
	}
}

func unrefSlot(v slot.Slot) {
	if s, ok := v.Ptr.(*runtime.RtString); ok {
		s.Unref()
	}
}

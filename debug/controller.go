package debug

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/vm"
)

// Controller is the debug layer's vm.Hooks implementation: it matches
// breakpoints, emits trace and watch records, and tallies the final
// summary. One Controller observes exactly one Runner/VM.
type Controller struct {
	Out io.Writer

	Breakpoints []Breakpoint
	// SourcePath is the file a "path:line" breakpoint and --trace=src lines
	// are reported against; a module carries no multi-file table (FileID 1
	// is always the implicit single input per il.Loc's doc comment), so
	// matching a source breakpoint's path is best-effort: if SourcePath is
	// set, the breakpoint's path must normalize to the same string, and if
	// it is empty only the line number is compared.
	SourcePath string
	Trace      TraceMode
	Watches    []string
	Count      bool
	Time       bool

	// Commands, if set, is consulted by the driver (not by this Controller)
	// between suspensions; NextCommand forwards to it and arms reason=step
	// reporting for any breakpoint crossed afterward, matching the observed
	// ilc behavior that a breakpoint hit under scripted control reports
	// "step" rather than its natural label/src reason.
	Commands *CommandReader

	instrCount int64
	startTime  time.Time
	started    bool
	scripted   bool

	srcSeeded   bool
	lastSrcLine int

	watchLast map[string]string

	suppressArmed bool
	suppressSite  site

	curIP    int
	curBlock string
}

type site struct {
	fn  *il.Function
	ip  int
	blk string
}

// New builds a Controller that writes to stderr, matching every other
// debug/trace/break/watch/summary record's destination.
func New() *Controller {
	return &Controller{Out: os.Stderr, watchLast: make(map[string]string)}
}

var _ vm.Hooks = (*Controller)(nil)

// NextCommand reads the next scripted debug-cmds command, or ok=false once
// the script is exhausted (or no script was configured).
func (c *Controller) NextCommand() (cmd string, ok bool) {
	if c.Commands == nil {
		return "", false
	}
	cmd, ok = c.Commands.Next()
	if ok {
		c.scripted = true
	}
	return cmd, ok
}

// BeforeInstr matches breakpoints and emits trace output for the
// instruction about to execute. A non-empty return pauses the VM without
// executing it (vm.Hooks' contract), matching "the VM halts before the
// first instruction of the target."
func (c *Controller) BeforeInstr(v *vm.VM, fr *vm.Frame) string {
	if !c.started {
		c.started = true
		c.startTime = time.Now()
	}

	if reason, hit := c.matchBreakpoint(fr); hit {
		fmt.Fprintf(c.Out, "[BREAK] fn=@%s blk=%s reason=%s\n", fr.Fn.Name, fr.Block.Label, reason)
		return reason
	}

	c.curIP = fr.IP
	c.curBlock = fr.Block.Label
	c.emitTrace(fr)
	return ""
}

// AfterInstr tallies the instruction count and emits any watch records
// whose value changed.
func (c *Controller) AfterInstr(v *vm.VM, fr *vm.Frame) {
	c.instrCount++
	c.emitWatches(fr)
}

// matchBreakpoint reports whether fr sits at an armed breakpoint's target,
// and if so the reason to report. A breakpoint just paused at is
// suppressed for exactly one subsequent check, so resuming a run does not
// re-trigger the same site it was already stopped at.
func (c *Controller) matchBreakpoint(fr *vm.Frame) (string, bool) {
	cur := site{fr.Fn, fr.IP, fr.Block.Label}
	if c.suppressArmed && cur == c.suppressSite {
		c.suppressArmed = false
		return "", false
	}

	for _, bp := range c.Breakpoints {
		switch bp.Kind {
		case BreakLabel:
			if fr.IP == 0 && fr.Block.Label == bp.Label {
				c.suppressArmed = true
				c.suppressSite = cur
				return c.reasonFor("label"), true
			}
		case BreakSrc:
			if c.matchesSrc(fr, bp) {
				c.suppressArmed = true
				c.suppressSite = cur
				return c.reasonFor("src"), true
			}
		}
	}
	return "", false
}

func (c *Controller) reasonFor(natural string) string {
	if c.scripted {
		return "step"
	}
	return natural
}

// matchesSrc fires on an instruction at bp.Line that starts its block or
// whose predecessor in the same block is on another line. Unlike
// --trace=src, which compares with the last traced instruction, it does not
// look back across block boundaries.
func (c *Controller) matchesSrc(fr *vm.Frame, bp Breakpoint) bool {
	if bp.Path != "" && c.SourcePath != "" && bp.Path != NormalizePath(c.SourcePath) {
		return false
	}
	instr := fr.Block.Instructions[fr.IP]
	if instr.Loc.Line != bp.Line {
		return false
	}
	if fr.IP > 0 && fr.Block.Instructions[fr.IP-1].Loc.Line == bp.Line {
		return false
	}
	return true
}

// emitWatches prints a [WATCH] record for every configured watch whose
// formatted value differs from the last one observed.
func (c *Controller) emitWatches(fr *vm.Frame) {
	if len(c.Watches) == 0 {
		return
	}
	if c.watchLast == nil {
		c.watchLast = make(map[string]string)
	}
	for _, name := range c.Watches {
		id, ok := resolveWatchID(fr.Fn, name)
		if !ok || id < 0 || id >= len(fr.Slots) {
			continue
		}
		typ, ok := typeOfTemp(fr.Fn, id)
		if !ok {
			continue
		}
		text := formatSlotValue(typ, fr.Slots[id])
		if prev, seen := c.watchLast[name]; seen && prev == text {
			continue
		}
		c.watchLast[name] = text
		fmt.Fprintf(c.Out, "[WATCH] %s=%s:%s  (fn=@%s blk=%s ip=#%d)\n", name, typ, text, fr.Fn.Name, c.curBlock, c.curIP)
	}
}

// Summary prints the final [SUMMARY] line when --count or --time was
// requested; it is a no-op otherwise.
func (c *Controller) Summary() {
	if !c.Count && !c.Time {
		return
	}
	var elapsedMs float64
	if c.Time && c.started {
		elapsedMs = float64(time.Since(c.startTime).Microseconds()) / 1000.0
	}
	fmt.Fprintf(c.Out, "[SUMMARY] instr=%d time_ms=%.3f\n", c.instrCount, elapsedMs)
}

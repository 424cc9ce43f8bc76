package debug

import (
	"fmt"

	"github.com/splanck/viper-sub036/vm"
)

// TraceMode selects --trace's output granularity.
type TraceMode int

const (
	TraceNone TraceMode = iota
	TraceIL
	TraceSrc
)

// emitTrace prints the instruction about to execute in fr, per Trace's
// mode: TraceIL emits one line per instruction, TraceSrc emits one line
// per distinct source line (tracked via c.lastSrcLine; c.srcSeeded stays
// false until the first line prints, so the first instruction always
// prints).
func (c *Controller) emitTrace(fr *vm.Frame) {
	switch c.Trace {
	case TraceIL:
		inst := fr.Block.Instructions[fr.IP]
		fmt.Fprintf(c.Out, "[IL] fn=@%s blk=%s ip=#%d %s\n", fr.Fn.Name, fr.Block.Label, fr.IP, inst.Op.String())
	case TraceSrc:
		inst := fr.Block.Instructions[fr.IP]
		if !c.srcSeeded || inst.Loc.Line != c.lastSrcLine {
			c.srcSeeded = true
			c.lastSrcLine = inst.Loc.Line
			path := c.SourcePath
			if path == "" {
				path = "<input>"
			}
			fmt.Fprintf(c.Out, "[SRC] %s:%d\n", path, inst.Loc.Line)
		}
	}
}

package debug

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// CommandReader feeds the --debug-cmds scripted stepping channel one
// trimmed, non-blank line at a time: "s" (step one instruction) or "c"
// (continue running).
type CommandReader struct {
	sc *bufio.Scanner
}

// NewCommandReader wraps an already-open command stream.
func NewCommandReader(r io.Reader) *CommandReader {
	return &CommandReader{sc: bufio.NewScanner(r)}
}

// OpenCommandFile opens path as a scripted command file.
func OpenCommandFile(path string) (*CommandReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewCommandReader(f), nil
}

// Next returns the next non-blank command, or ok=false once the script is
// exhausted.
func (r *CommandReader) Next() (string, bool) {
	for r.sc.Scan() {
		line := strings.TrimSpace(r.sc.Text())
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

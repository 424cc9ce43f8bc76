package ilread

import "fmt"

// Diagnostic is a structured parse/verify failure: a line number, an
// optional rule tag, and a human-readable message. Diagnostics are values
// returned from parsing; the parser never aborts.
type Diagnostic struct {
	Line    int
	Rule    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Rule != "" {
		return fmt.Sprintf("line %d: [%s] %s", d.Line, d.Rule, d.Message)
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

func (d Diagnostic) Error() string { return d.String() }

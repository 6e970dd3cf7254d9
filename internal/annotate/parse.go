package annotate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedField is returned when a line does not match its expected grammar.
var ErrMalformedField = errors.New("malformed field")

func malformed(elmType, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedField, elmType, fmt.Sprintf(format, args...))
}

// Breakpoint is one row of the "info breakpoints" table.
type Breakpoint struct {
	Label   string // function, or exception name for "on" breakpoints
	Enabled bool
	File    string
	Line    string
}

// ParseBreakpoint parses the location column of a breakpoint row:
//
//	in <label> at <file>:<line>
//	on <label> at <file>:<line>
//
// The file may contain colons, the line never does.
func ParseBreakpoint(desc string) (Breakpoint, error) {
	var bp Breakpoint

	desc = strings.TrimSpace(desc)
	rest, ok := strings.CutPrefix(desc, "in ")
	if !ok {
		rest, ok = strings.CutPrefix(desc, "on ")
	}
	if !ok { return bp, malformed("breakpoint", "expected \"in \" or \"on \" in %q", desc) }

	label, location, found := strings.Cut(rest, " at ")
	if !found { return bp, malformed("breakpoint", "expected \" at \" in %q", desc) }

	// hit counts and conditions follow the location on their own lines
	if nl := strings.IndexByte(location, '\n'); nl >= 0 {
		location = location[:nl]
	}
	location = strings.TrimSpace(location)

	colon := strings.LastIndexByte(location, ':')
	if colon < 0 { return bp, malformed("breakpoint", "expected ':<line>' in %q", desc) }

	bp.Label = label
	bp.File = location[:colon]
	bp.Line = location[colon+1:]

	if bp.Label == "" || bp.File == "" || bp.Line == "" {
		return bp, malformed("breakpoint", "empty label, file or line in %q", desc)
	}
	return bp, nil
}

// SourceLocation is where the debugger currently stands.
type SourceLocation struct {
	File string
	Line string
}

// ParseSource parses a "source" annotation:
//
//	source <file>:<line>:<character>:<middle>:<address>
//
// Fields are split from the right since the file is not quoted and may contain colons.
func ParseSource(line string) (SourceLocation, error) {
	var loc SourceLocation

	rest, ok := strings.CutPrefix(line, "source ")
	if !ok { return loc, malformed("source", "expected \"source \" in %q", line) }
	rest = strings.TrimRight(rest, "\r\n")

	end := len(rest)
	colon := -1
	for i := 0; i < 4; i++ {
		colon = strings.LastIndexByte(rest[:end], ':')
		if colon < 0 { return loc, malformed("source", "expected 5 ':' separated fields in %q", line) }
		if i < 3 { end = colon }
	}

	loc.File = rest[:colon]
	loc.Line = rest[colon+1 : end]

	if loc.File == "" || loc.Line == "" {
		return loc, malformed("source", "empty file or line in %q", line)
	}
	return loc, nil
}

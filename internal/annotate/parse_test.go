package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBreakpoint(t *testing.T) {
	tests := []struct {
		desc     string
		expected Breakpoint
	}{
		{"in main at test.c:12", Breakpoint{Label: "main", File: "test.c", Line: "12"}},
		{"on constraint_error at a-except.adb:801", Breakpoint{Label: "constraint_error", File: "a-except.adb", Line: "801"}},
		{"in compute at C:\\path\\to\\file.c:7", Breakpoint{Label: "compute", File: "C:\\path\\to\\file.c", Line: "7"}},
		{"in handler at /srv/a:b/c:d.c:1024", Breakpoint{Label: "handler", File: "/srv/a:b/c:d.c", Line: "1024"}},
		{"in ns::f(int, char) at src/f.cc:3", Breakpoint{Label: "ns::f(int, char)", File: "src/f.cc", Line: "3"}},
		{"in main at test.c:12\n\tbreakpoint already hit 2 times\n", Breakpoint{Label: "main", File: "test.c", Line: "12"}},
		{"in main at test.c:12\n\tstop only if a::b == 1\n", Breakpoint{Label: "main", File: "test.c", Line: "12"}},
	}

	for _, test := range tests {
		bp, err := ParseBreakpoint(test.desc)
		assert.NoError(t, err, test.desc)
		assert.Equal(t, test.expected, bp, test.desc)
	}
}

func TestParseBreakpointMalformed(t *testing.T) {
	tests := []string{
		"",
		"<PENDING>  foo.c:3",
		"at main test.c:12",
		"in main test.c:12",
		"in main at test.c",
		"in main at :12",
		"in main at test.c:",
		"in  at test.c:3",
	}

	for _, desc := range tests {
		_, err := ParseBreakpoint(desc)
		assert.Error(t, err, desc)
		assert.True(t, errors.Is(err, ErrMalformedField), desc)
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		line     string
		expected SourceLocation
	}{
		{"source /home/u/test.c:12:140:beg:0x401136", SourceLocation{File: "/home/u/test.c", Line: "12"}},
		{"source C:\\src\\main.c:3:25:middle:0x00401000", SourceLocation{File: "C:\\src\\main.c", Line: "3"}},
		{"source a:b:c.c:99:1:beg:0x1", SourceLocation{File: "a:b:c.c", Line: "99"}},
		{"source test.c:5:60:beg:0x40\r\n", SourceLocation{File: "test.c", Line: "5"}},
	}

	for _, test := range tests {
		loc, err := ParseSource(test.line)
		assert.NoError(t, err, test.line)
		assert.Equal(t, test.expected, loc, test.line)
	}
}

func TestParseSourceMalformed(t *testing.T) {
	tests := []string{
		"source test.c:5:60:beg",
		"source test.c",
		"frame-begin 0 0x40",
		"source :5:60:beg:0x40",
		"source test.c::60:beg:0x40",
	}

	for _, line := range tests {
		_, err := ParseSource(line)
		assert.ErrorIs(t, err, ErrMalformedField, line)
	}
}

package annotate

import (
	"io"
	"strconv"
	"strings"

	. "gdbfront/internal/logger"
)

const marker = '\032'

// Lexer splits raw debugger output into annotations and text and drives
// the Machine with them. Input may arrive in chunks of any size.
//
// An annotation is a newline, two control-z characters, a name with
// optional arguments and a newline:
//
//	\n\032\032field 5\n
type Lexer struct {
	machine *Machine

	// Console receives the text meant for the user: everything outside
	// annotations except the replies of hidden commands.
	Console io.Writer

	// OnPrompt is called when the debugger is about to show its prompt,
	// i.e. the previous command has completed. failed is set when the
	// command produced an error.
	OnPrompt func(failed bool)

	// OnQuestion is called when the debugger waits for an answer outside
	// its prompt: a y/n query or a "press return" pagination pause.
	OnQuestion func(kind string)

	// OnAnnotation is called for every annotation after the Machine saw it.
	OnAnnotation func(name, args string)

	markers        int
	inAnnotation   bool
	annotation     TextAccumulator
	pendingNewline bool
	inPrompt       bool
	failed         bool
}

func NewLexer(machine *Machine) *Lexer {
	return &Lexer{machine: machine}
}

func (l *Lexer) Write(p []byte) (int, error) {
	for _, c := range p {
		l.feed(c)
	}
	return len(p), nil
}

func (l *Lexer) feed(c byte) {
	if l.inAnnotation {
		if c == '\n' {
			l.inAnnotation = false
			l.handle(l.annotation.String())
			l.annotation.Clear()
			return
		}
		if c != '\r' { l.annotation.Append(c) }
		return
	}

	if c == marker {
		l.markers++
		if l.markers == 2 {
			l.markers = 0
			l.inAnnotation = true
			// the newline before the markers belongs to the annotation
			l.pendingNewline = false
		}
		return
	}

	if l.markers == 1 {
		l.markers = 0
		l.text(marker)
	}
	l.text(c)
}

func (l *Lexer) text(c byte) {
	if !l.inPrompt {
		l.machine.Process(c)
	}

	if l.Console == nil || l.machine.Quiet() { return }

	if l.pendingNewline {
		l.pendingNewline = false
		l.console("\n")
	}
	if c == '\n' {
		l.pendingNewline = true
		return
	}
	l.console(string(c))
}

func (l *Lexer) console(s string) {
	if _, err := io.WriteString(l.Console, s); err != nil {
		Log.Error(err.Error())
	}
}

func (l *Lexer) handle(line string) {
	name, args, _ := strings.Cut(line, " ")

	switch name {
	case "source":
		_ = l.machine.Source(line)
	case "breakpoints-headers":
		l.machine.SetState(BreakpointHeaders)
	case "breakpoints-table":
		l.machine.SetState(BreakpointTableBegin)
	case "record":
		l.machine.SetState(Record)
	case "field":
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			Log.Error("parsing field annotation failed", strconv.Quote(line))
			break
		}
		l.machine.SetState(Field)
		l.machine.SetFieldNum(n)
	case "breakpoints-table-end":
		l.machine.SetState(BreakpointTableEnd)
	case "error-begin":
		l.failed = true
	case "pre-prompt":
		l.inPrompt = true
		l.machine.BeginPrompt()
		if l.OnPrompt != nil { l.OnPrompt(l.failed) }
	case "prompt":
		l.machine.EndPrompt()
	case "query", "prompt-for-continue":
		if l.OnQuestion != nil { l.OnQuestion(name) }
	case "post-prompt":
		l.inPrompt = false
		l.failed = false
	}

	if l.OnAnnotation != nil {
		l.OnAnnotation(name, args)
	}
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	stdio "io"
	"strings"
	"sync"

	"gdbfront/internal/annotate"
	. "gdbfront/internal/logger"
	"gdbfront/internal/server"

	"github.com/goccy/go-json"
)

var errQuit = errors.New("quit")

type Runner interface {
	Run(command annotate.Command)
}

// Repl reads commands from in. Lines starting with ':' are front end
// commands, anything else goes to the debugger as typed.
func Repl(in stdio.Reader, runner Runner) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		command, err := ParseLine(scanner.Text())
		if errors.Is(err, errQuit) { break }
		if err != nil {
			Log.Error(err.Error())
			continue
		}
		runner.Run(command)
	}
	// end of input quits; a hidden "server quit" skips the confirmation
	// gdb asks for while a program is running
	runner.Run(annotate.Command{Origin: annotate.OriginInternal, Kind: annotate.CmdVerbatim, Data: "quit"})
}

func ParseLine(line string) (annotate.Command, error) {
	if !strings.HasPrefix(line, ":") {
		return annotate.Command{Origin: annotate.OriginUser, Kind: annotate.CmdVerbatim, Data: line}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
	arg = strings.TrimSpace(arg)
	command := annotate.Command{Origin: annotate.OriginGUI, Data: arg}

	switch name {
	case "sources":
		command.Kind = annotate.CmdInfoSources
	case "source":
		command.Kind = annotate.CmdInfoSource
	case "breakpoints":
		command.Kind = annotate.CmdInfoBreakpoints
	case "list":
		command.Kind = annotate.CmdList
	case "tty":
		if arg == "" { return command, fmt.Errorf(":tty needs a device") }
		command.Kind = annotate.CmdTTY
	case "quit", "q":
		return command, errQuit
	default:
		return command, fmt.Errorf("unknown command :%s", name)
	}
	return command, nil
}

// Printer writes console lines as they are and everything else as JSON lines.
type Printer struct {
	out stdio.Writer
	mu  sync.Mutex
}

func NewPrinter(out stdio.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Broadcast(msg server.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg.Type == "console" {
		fmt.Fprintln(p.out, msg.Line)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		Log.Error("encode message:", err.Error())
		return
	}
	fmt.Fprintln(p.out, string(data))
}

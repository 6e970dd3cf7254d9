package annotate

import (
	"io"

	. "gdbfront/internal/logger"
)

// Prefix that keeps a command out of the debugger's history and echo.
const serverPrefix = "server "

// Origin tells who asked for a command.
type Origin int

const (
	OriginInternal Origin = iota // bookkeeping issued by the front end
	OriginGUI                    // issued programmatically by a client
	OriginUser                   // typed by the user
)

func (o Origin) String() string {
	switch o {
	case OriginInternal: return "internal"
	case OriginGUI: return "gui"
	case OriginUser: return "user"
	}
	return "unknown"
}

// Kind selects the handler of a command.
type Kind int

const (
	CmdVerbatim Kind = iota
	CmdInfoSources
	CmdList
	CmdInfoSource
	CmdInfoBreakpoints
	CmdTTY
)

type Command struct {
	Origin Origin
	Kind   Kind
	Data   string // argument of CmdList and CmdTTY, the command line of CmdVerbatim
}

// Dispatcher writes debugger commands and puts the Machine into the mode
// that interprets their replies.
type Dispatcher struct {
	out     io.Writer
	machine *Machine
	origin  Origin

	// BeforeRun is called before every command is written.
	BeforeRun func(origin Origin, line string)
}

func NewDispatcher(out io.Writer, machine *Machine) *Dispatcher {
	return &Dispatcher{out: out, machine: machine}
}

func (d *Dispatcher) RunInfoBreakpoints() error {
	d.machine.clearBreakpoint()
	return d.run("info breakpoints", true)
}

func (d *Dispatcher) RunTTY(device string) error {
	return d.run("tty "+device, true)
}

func (d *Dispatcher) RunInfoSources() error {
	d.machine.infoSources.reset()
	d.machine.SetState(InfoSources)
	return d.run("info sources", true)
}

// RunList lists file from its first line, or the default location when
// file is empty, so that "info source" can resolve its absolute path.
func (d *Dispatcher) RunList(file string) error {
	command := "list"
	if file != "" {
		command = "list " + file + ":1"
	}
	d.machine.requestSource(file, file != "")
	d.machine.SetState(InfoList)
	return d.run(command, true)
}

func (d *Dispatcher) RunInfoSource() error {
	d.machine.infoSource.reset()
	d.machine.SetState(InfoSource)
	return d.run("info source", true)
}

func (d *Dispatcher) RunCommand(command Command) error {
	d.origin = command.Origin
	defer func() { d.origin = OriginInternal }()

	switch command.Kind {
	case CmdInfoSources:
		return d.RunInfoSources()
	case CmdList:
		return d.RunList(command.Data)
	case CmdInfoSource:
		return d.RunInfoSource()
	case CmdInfoBreakpoints:
		return d.RunInfoBreakpoints()
	case CmdTTY:
		return d.RunTTY(command.Data)
	}
	return d.run(command.Data, command.Origin == OriginInternal)
}

// NotifyListResult is called once the debugger has answered a "list".
// A listed file is resolved with "info source" right away, a rejected one
// is reported without asking further.
func (d *Dispatcher) NotifyListResult(success bool) error {
	if success {
		return d.RunInfoSource()
	}
	d.machine.queue.Append(Event{Type: AbsoluteSourceDenied, Data: d.machine.request.file})
	d.machine.request = sourceRequest{}
	return nil
}

// Complete is called when the debugger shows its prompt again after a command.
// It reports whether a follow-up command was issued and is now in flight.
func (d *Dispatcher) Complete(failed bool) (bool, error) {
	d.machine.quiet = false
	d.machine.hideNext = false

	switch d.machine.State() {
	case InfoList:
		d.machine.SetState(Idle)
		err := d.NotifyListResult(!failed)
		return !failed && err == nil, err
	case InfoSource:
		d.machine.FinishInfoSource()
		d.machine.SetState(Idle)
	case InfoSources:
		d.machine.FinishInfoSources()
		d.machine.SetState(Idle)
	}
	return false, nil
}

func (d *Dispatcher) run(command string, hidden bool) error {
	line := command + "\n"
	if hidden {
		line = serverPrefix + line
	}
	if d.BeforeRun != nil {
		d.BeforeRun(d.origin, line)
	}
	d.machine.hide(hidden)
	Log.Info("->", d.origin.String(), command)

	_, err := io.WriteString(d.out, line)
	if err != nil {
		Log.Error(err.Error())
	}
	return err
}

package annotate

import (
	. "gdbfront/internal/logger"
)

// Machine tracks the annotation region the debugger output is in and routes
// every character of it to the interpreter that owns that region.
// It is not safe for concurrent use; callers deliver input serially.
type Machine struct {
	queue    EventQueue
	state    ParseState
	fieldNum int
	quiet    bool // output belongs to a hidden command

	// between pre-prompt and prompt the prompt text is shown even when
	// a hidden command was already sent
	prompting bool
	hideNext  bool

	breakpoint   TextAccumulator
	tableOpen    bool
	tableStarted bool
	rowEnabled   bool

	request     sourceRequest
	infoSource  infoSource
	infoSources infoSources
}

func NewMachine(queue EventQueue) *Machine {
	return &Machine{queue: queue}
}

func (m *Machine) State() ParseState { return m.state }

// Quiet reports whether the running command was hidden from the user.
func (m *Machine) Quiet() bool { return m.quiet }

// BeginPrompt is called at pre-prompt: the prompt itself is always shown.
func (m *Machine) BeginPrompt() {
	m.prompting = true
	m.quiet = false
	m.hideNext = false
}

// EndPrompt is called once the prompt text is out. The echo and reply of a
// command sent meanwhile are hidden if the command was.
func (m *Machine) EndPrompt() {
	m.prompting = false
	m.quiet = m.hideNext
}

func (m *Machine) hide(hidden bool) {
	m.hideNext = hidden
	if !m.prompting { m.quiet = hidden }
}

func (m *Machine) SetState(state ParseState) {
	m.state = state

	switch state {
	case Record:
		if m.breakpoint.Len() > 0 {
			m.finishRow()
		}
		m.rowEnabled = false

	case BreakpointTableEnd:
		if m.breakpoint.Len() > 0 {
			m.finishRow()
		}
		m.queue.Append(Event{Type: BreakpointsEnd})

		// no rows at all, consumers still get a begin/end pair
		if !m.tableStarted {
			m.queue.Append(Event{Type: BreakpointsBegin})
			m.queue.Append(Event{Type: BreakpointsEnd})
		}
		m.tableStarted = false
		m.tableOpen = false

	case BreakpointHeaders:
		m.tableOpen = false

	case BreakpointTableBegin:
		m.queue.Append(Event{Type: BreakpointsBegin})
		m.tableOpen = true
		m.tableStarted = true
	}
}

func (m *Machine) SetFieldNum(n int) {
	m.fieldNum = n

	if m.inRow() && n == FieldDescription {
		m.breakpoint.Clear()
	}
}

func (m *Machine) Process(c byte) {
	switch {
	case m.state == InfoSources:
		m.infoSources.feed(c)
	case m.state == InfoList:
		// the listing itself is not needed
	case m.state == InfoSource:
		m.infoSource.feed(c)
	case m.inRow() && m.fieldNum == FieldEnabled:
		if c == 'y' { m.rowEnabled = true }
	case m.inRow() && m.fieldNum == FieldDescription:
		m.breakpoint.Append(c)
	}
}

// Source handles a "source" annotation line.
func (m *Machine) Source(line string) error {
	loc, err := ParseSource(line)
	if err != nil {
		Log.Error(err.Error())
		return err
	}
	m.queue.Append(Event{Type: SourceFileUpdate, Data: loc.File})
	m.queue.Append(Event{Type: LineNumberUpdate, Data: loc.Line})
	return nil
}

// FinishInfoSource reports the result of a completed "info source" reply.
func (m *Machine) FinishInfoSource() {
	m.infoSource.finish(m.request, m.queue)
	m.infoSource.reset()
	m.request = sourceRequest{}
}

// FinishInfoSources reports the files of a completed "info sources" reply.
func (m *Machine) FinishInfoSources() {
	m.infoSources.emit(m.queue)
}

func (m *Machine) inRow() bool {
	return m.tableOpen && m.state == Field
}

func (m *Machine) finishRow() {
	desc := m.breakpoint.String()
	enabled := m.rowEnabled
	m.breakpoint.Clear()
	m.rowEnabled = false

	bp, err := ParseBreakpoint(desc)
	if err != nil {
		Log.Error(err.Error(), "(was the program compiled with debug info?)")
		return
	}
	m.queue.Append(Event{Type: BreakpointEvent, Data: bp.Label, Line: bp.Line, File: bp.File, Enabled: enabled})
}

func (m *Machine) clearBreakpoint() {
	m.breakpoint.Clear()
	m.rowEnabled = false
}

func (m *Machine) requestSource(file string, requested bool) {
	m.request = sourceRequest{file: file, requested: requested}
	m.infoSource.reset()
}

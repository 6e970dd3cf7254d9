package gdb

import (
	"io"
	"strings"
	"sync"

	"gdbfront/internal/annotate"
	"gdbfront/internal/config"
	. "gdbfront/internal/logger"
	"gdbfront/internal/process"
)

// Session drives one debugger: it feeds the debugger output through the
// annotation lexer and sends queued commands one at a time, each only once
// the debugger is back at its prompt.
type Session struct {
	Events  *annotate.EventList
	Console *process.Console
	Updates chan struct{} // receives a value when events were queued, never blocks

	mu         sync.Mutex
	out        io.Writer
	machine    *annotate.Machine
	dispatcher *annotate.Dispatcher
	lexer      *annotate.Lexer
	terminal   *process.Terminal

	pending   []annotate.Command
	ready     bool // at the prompt with nothing in flight
	answering bool // the debugger asked a question, the next user line answers it
}

type commandWriter struct{ s *Session }

func (w commandWriter) Write(p []byte) (int, error) {
	if w.s.out == nil { return 0, io.ErrClosedPipe }
	return w.s.out.Write(p)
}

// New builds a session writing commands to out. Output is delivered with Feed.
func New(out io.Writer) *Session {
	s := &Session{
		Events:  &annotate.EventList{},
		Console: process.NewConsole(),
		Updates: make(chan struct{}, 1),
		out:     out,
	}
	s.machine = annotate.NewMachine(s.Events)
	s.dispatcher = annotate.NewDispatcher(commandWriter{s}, s.machine)
	s.lexer = annotate.NewLexer(s.machine)
	s.lexer.Console = s.Console
	s.lexer.OnPrompt = s.onPrompt
	s.lexer.OnQuestion = s.onQuestion
	s.lexer.OnAnnotation = s.onAnnotation
	return s
}

// Start runs the configured debugger on program under a pty.
func Start(conf config.Config, program ...string) (*Session, error) {
	s := New(nil)

	args := conf.GdbArgs(program...)
	Log.Infof("starting %s %s", conf.Gdb, strings.Join(args, " "))

	s.mu.Lock()
	defer s.mu.Unlock()

	terminal, err := process.NewTerminal(s.Feed, conf.Gdb, args...)
	if err != nil { return nil, err }
	s.terminal = terminal
	s.out = terminal

	if conf.Tty != "" {
		s.pending = append(s.pending, annotate.Command{Kind: annotate.CmdTTY, Data: conf.Tty})
	}
	return s, nil
}

// Feed passes raw debugger output to the lexer.
func (s *Session) Feed(p []byte) {
	s.mu.Lock()
	before := s.Events.Len()
	_, _ = s.lexer.Write(p)
	after := s.Events.Len()
	s.mu.Unlock()

	if after != before {
		select {
		case s.Updates <- struct{}{}:
		default:
		}
	}
}

// Run queues a command. It is sent as soon as the debugger is ready.
func (s *Session) Run(command annotate.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, command)
	s.flush()
}

// RunUser queues a line typed by the user.
func (s *Session) RunUser(line string) {
	s.Run(annotate.Command{Origin: annotate.OriginUser, Kind: annotate.CmdVerbatim, Data: line})
}

func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Done is closed when the debugger output ends. It is nil without a terminal.
func (s *Session) Done() <-chan struct{} {
	if s.terminal == nil { return nil }
	return s.terminal.Done
}

func (s *Session) Stop() {
	if s.terminal != nil { s.terminal.Stop() }
}

func (s *Session) flush() {
	if s.answering {
		s.answer()
		return
	}
	if !s.ready || len(s.pending) == 0 { return }

	command := s.pending[0]
	s.pending = s.pending[1:]
	s.ready = false

	if err := s.dispatcher.RunCommand(command); err != nil {
		Log.Error("command failed:", err.Error())
	}
}

// answer sends the first queued user line as the reply to a question.
// The command that asked is still running, so the session stays busy.
func (s *Session) answer() {
	for i, command := range s.pending {
		if command.Origin != annotate.OriginUser || command.Kind != annotate.CmdVerbatim { continue }
		s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
		s.answering = false
		if err := s.dispatcher.RunCommand(command); err != nil {
			Log.Error("answer failed:", err.Error())
		}
		return
	}
}

func (s *Session) onQuestion(kind string) {
	Log.Info("debugger waits for an answer:", kind)
	s.answering = true
	s.flush()
}

func (s *Session) onPrompt(failed bool) {
	s.answering = false
	chained, err := s.dispatcher.Complete(failed)
	if err != nil {
		Log.Error("follow-up command failed:", err.Error())
	}
	if chained { return }

	s.ready = true
	s.flush()
}

func (s *Session) onAnnotation(name, args string) {
	switch name {
	case "breakpoints-invalid":
		s.queueOnce(annotate.Command{Origin: annotate.OriginInternal, Kind: annotate.CmdInfoBreakpoints})
	}
}

func (s *Session) queueOnce(command annotate.Command) {
	for _, c := range s.pending {
		if c == command { return }
	}
	s.pending = append(s.pending, command)
}

// Forward delivers queued events and new console lines until done is closed.
func (s *Session) Forward(done <-chan struct{}, onEvent func(annotate.Event), onLine func(string)) {
	offset := 0
	for {
		select {
		case <-done:
			return
		case <-s.Updates:
			for _, e := range s.Events.Drain() {
				onEvent(e)
			}
		case <-s.Console.Updates:
			lines := s.Console.GetLines(offset)
			offset += len(lines)
			for _, line := range lines {
				onLine(line)
			}
		}
	}
}

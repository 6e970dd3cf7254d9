package server

import (
	"errors"
	"fmt"

	"gdbfront/internal/annotate"
	"gdbfront/internal/langs"

	"github.com/goccy/go-json"
)

var ErrUnknownCommand = errors.New("unknown command")

// Message is what clients receive, one JSON object per websocket frame.
type Message struct {
	Type  string          `json:"type"` // event, console, source-changed, error
	Event *annotate.Event `json:"event,omitempty"`
	Lang  string          `json:"lang,omitempty"`
	Line  string          `json:"line,omitempty"`
	Path  string          `json:"path,omitempty"`
}

// Request is what clients send.
type Request struct {
	Command string `json:"command"`
	Data    string `json:"data,omitempty"`
}

func EventMessage(e annotate.Event) Message {
	msg := Message{Type: "event", Event: &e}
	switch e.Type {
	case annotate.SourceFile, annotate.SourceFileUpdate, annotate.AbsoluteSourceAccepted:
		msg.Lang = langs.DetectLang(e.Data)
	}
	return msg
}

func ConsoleMessage(line string) Message {
	return Message{Type: "console", Line: line}
}

func SourceChangedMessage(path string) Message {
	return Message{Type: "source-changed", Path: path, Lang: langs.DetectLang(path)}
}

// DecodeRequest turns a client frame into a debugger command.
func DecodeRequest(raw []byte) (annotate.Command, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return annotate.Command{}, fmt.Errorf("decode request: %w", err)
	}

	command := annotate.Command{Origin: annotate.OriginGUI, Data: req.Data}
	switch req.Command {
	case "list":
		command.Kind = annotate.CmdList
	case "info-sources":
		command.Kind = annotate.CmdInfoSources
	case "info-source":
		command.Kind = annotate.CmdInfoSource
	case "info-breakpoints":
		command.Kind = annotate.CmdInfoBreakpoints
	case "tty":
		if req.Data == "" { return annotate.Command{}, fmt.Errorf("tty: missing device") }
		command.Kind = annotate.CmdTTY
	case "run":
		if req.Data == "" { return annotate.Command{}, fmt.Errorf("run: missing command line") }
		command.Origin = annotate.OriginUser
		command.Kind = annotate.CmdVerbatim
	default:
		return annotate.Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, req.Command)
	}
	return command, nil
}

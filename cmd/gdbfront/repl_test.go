package main

import (
	"bytes"
	"strings"
	"testing"

	"gdbfront/internal/annotate"
	"gdbfront/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := map[string]annotate.Command{
		"break main":      {Origin: annotate.OriginUser, Kind: annotate.CmdVerbatim, Data: "break main"},
		"":                {Origin: annotate.OriginUser, Kind: annotate.CmdVerbatim},
		":sources":        {Origin: annotate.OriginGUI, Kind: annotate.CmdInfoSources},
		":source":         {Origin: annotate.OriginGUI, Kind: annotate.CmdInfoSource},
		":breakpoints":    {Origin: annotate.OriginGUI, Kind: annotate.CmdInfoBreakpoints},
		":list":           {Origin: annotate.OriginGUI, Kind: annotate.CmdList},
		":list  main.c ":  {Origin: annotate.OriginGUI, Kind: annotate.CmdList, Data: "main.c"},
		":tty /dev/pts/4": {Origin: annotate.OriginGUI, Kind: annotate.CmdTTY, Data: "/dev/pts/4"},
	}

	for line, want := range tests {
		got, err := ParseLine(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, got, line)
	}

	_, err := ParseLine(":tty")
	assert.Error(t, err)
	_, err = ParseLine(":frobnicate")
	assert.Error(t, err)
	_, err = ParseLine(":quit")
	assert.ErrorIs(t, err, errQuit)
}

type recorder struct{ commands []annotate.Command }

func (r *recorder) Run(command annotate.Command) { r.commands = append(r.commands, command) }

func TestRepl(t *testing.T) {
	runner := &recorder{}
	Repl(strings.NewReader(":sources\n:bogus\nnext\n:quit\nnever sent\n"), runner)

	assert.Equal(t, []annotate.Command{
		{Origin: annotate.OriginGUI, Kind: annotate.CmdInfoSources},
		{Origin: annotate.OriginUser, Kind: annotate.CmdVerbatim, Data: "next"},
		{Origin: annotate.OriginInternal, Kind: annotate.CmdVerbatim, Data: "quit"},
	}, runner.commands)
}

func TestPrinter(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrinter(out)

	p.Broadcast(server.ConsoleMessage("Breakpoint 1, main () at main.c:5"))
	p.Broadcast(server.EventMessage(annotate.Event{Type: annotate.LineNumberUpdate, Data: "5"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Breakpoint 1, main () at main.c:5", lines[0])
	assert.JSONEq(t, `{"type":"event","event":{"type":"line-number-update","data":"5"}}`, lines[1])
}

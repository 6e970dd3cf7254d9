package server

import (
	"net"
	"sync"
	"testing"
	"time"

	"gdbfront/internal/annotate"

	"github.com/fasthttp/websocket"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	commands []annotate.Command
	ran      chan struct{}
}

func (r *recorder) Run(command annotate.Command) {
	r.mu.Lock()
	r.commands = append(r.commands, command)
	r.mu.Unlock()
	r.ran <- struct{}{}
}

func startServer(t *testing.T, runner Runner) (*Server, string) {
	s := New(runner)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go s.App().Listener(ln)
	t.Cleanup(func() { s.Shutdown() })
	return s, "ws://" + ln.Addr().String() + HandlerPath
}

func waitClients(t *testing.T, s *Server, n int) {
	deadline := time.Now().Add(2 * time.Second)
	for s.Clients() != n {
		if time.Now().After(deadline) { t.Fatalf("expected %d clients, have %d", n, s.Clients()) }
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServerForwardsRequests(t *testing.T) {
	runner := &recorder{ran: make(chan struct{}, 4)}
	_, url := startServer(t, runner)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"list","data":"main.c"}`)))
	select {
	case <-runner.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("request was not forwarded")
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Equal(t, []annotate.Command{{Origin: annotate.OriginGUI, Kind: annotate.CmdList, Data: "main.c"}}, runner.commands)
}

func TestServerRejectsUnknownRequest(t *testing.T) {
	runner := &recorder{ran: make(chan struct{}, 4)}
	_, url := startServer(t, runner)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"reboot"}`)))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Line, "reboot")
	assert.Empty(t, runner.commands)
}

func TestServerBroadcast(t *testing.T) {
	s, url := startServer(t, &recorder{ran: make(chan struct{}, 1)})

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	waitClients(t, s, 2)

	s.Broadcast(EventMessage(annotate.Event{Type: annotate.BreakpointEvent, Data: "main", File: "main.c", Line: "5", Enabled: true}))

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.NotNil(t, msg.Event)
		assert.Equal(t, annotate.Event{Type: annotate.BreakpointEvent, Data: "main", File: "main.c", Line: "5", Enabled: true}, *msg.Event)
	}

	first.Close()
	waitClients(t, s, 1)
}

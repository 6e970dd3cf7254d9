package server

import (
	"sync"

	"gdbfront/internal/annotate"
	. "gdbfront/internal/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const HandlerPath = "/ws"

// Runner is the part of the debugger session the server drives.
type Runner interface {
	Run(command annotate.Command)
}

// Server publishes debugger events to websocket clients and forwards their
// requests to the debugger.
type Server struct {
	runner  Runner
	app     *fiber.App
	clients map[*websocket.Conn]chan []byte
	mu      sync.Mutex
}

func New(runner Runner) *Server {
	s := &Server{
		runner:  runner,
		clients: map[*websocket.Conn]chan []byte{},
		app:     fiber.New(fiber.Config{DisableStartupMessage: true}),
	}

	s.app.Use(HandlerPath, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) { return c.Next() }
		return fiber.ErrUpgradeRequired
	})
	s.app.Get(HandlerPath, websocket.New(s.connHandler))
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	Log.Info("listening on", addr+HandlerPath)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Broadcast sends msg to every connected client. Slow clients drop messages.
func (s *Server) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		Log.Error("encode message:", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, send := range s.clients {
		select {
		case send <- data:
		default:
			Log.Error("client too slow, dropping message for", conn.RemoteAddr().String())
		}
	}
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) connHandler(conn *websocket.Conn) {
	send := make(chan []byte, 256)
	s.mu.Lock()
	s.clients[conn] = send
	s.mu.Unlock()
	Log.Info("client connected", conn.RemoteAddr().String())

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.sendLoop(conn, send, done)
	}()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		close(done)
		wg.Wait()
		Log.Info("client disconnected", conn.RemoteAddr().String())
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil { return }

		command, err := DecodeRequest(raw)
		if err != nil {
			Log.Error(err.Error())
			s.reply(send, Message{Type: "error", Line: err.Error()})
			continue
		}
		s.runner.Run(command)
	}
}

func (s *Server) sendLoop(conn *websocket.Conn, send chan []byte, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case data := <-send:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				Log.Error("websocket write:", err.Error())
				return
			}
		}
	}
}

func (s *Server) reply(send chan []byte, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil { return }
	select {
	case send <- data:
	default:
	}
}

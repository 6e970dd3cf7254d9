package process

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	. "gdbfront/internal/logger"

	"github.com/creack/pty"
)

// Terminal runs a program under a pseudo terminal, the way an interactive
// debugger expects to be driven.
type Terminal struct {
	Cmd     *exec.Cmd          // command being executed
	Pty     *os.File           // pty master
	stop    context.CancelFunc // function to cancel process
	mutex   sync.Mutex         // protects Stopped
	Stopped bool               // true if process stopped
	Done    chan struct{}      // closed once output is exhausted
}

// NewTerminal starts command with args under a pty. Every chunk read from the
// pty is passed to onOutput from a single goroutine.
func NewTerminal(onOutput func([]byte), command string, args ...string) (*Terminal, error) {
	if _, err := exec.LookPath(command); err != nil {
		return nil, err
	}

	ctx, stop := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = append(os.Environ(), "TERM=dumb")

	ptyMaster, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 500})
	if err != nil {
		stop()
		return nil, err
	}

	t := &Terminal{
		Cmd:  cmd,
		Pty:  ptyMaster,
		stop: stop,
		Done: make(chan struct{}),
	}

	go t.read(onOutput)

	go func() {
		err := cmd.Wait()
		if err != nil { Log.Info("debugger exited:", err.Error()) }
		t.setStopped()
	}()

	return t, nil
}

func (t *Terminal) read(onOutput func([]byte)) {
	defer close(t.Done)

	buf := make([]byte, 4096)
	for {
		n, err := t.Pty.Read(buf)
		if n > 0 {
			onOutput(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !t.IsStopped() {
				Log.Error("pty read:", err.Error())
			}
			return
		}
	}
}

// Write sends raw input to the program.
func (t *Terminal) Write(p []byte) (int, error) {
	if t.IsStopped() { return 0, os.ErrClosed }
	return t.Pty.Write(p)
}

func (t *Terminal) Stop() {
	if t.IsStopped() { return }

	// ^D asks the debugger to quit before the process is cancelled
	_, _ = t.Pty.Write([]byte{4})
	t.setStopped()
	t.stop()
	_ = t.Pty.Close()
}

func (t *Terminal) setStopped() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.Stopped = true
}

func (t *Terminal) IsStopped() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.Stopped
}

package process

import (
	"strings"
	"sync"

	"github.com/acarl005/stripansi"
)

// Console keeps the debugger output shown to the user, one entry per line.
type Console struct {
	Lines   []string      // completed lines, escape sequences stripped
	partial []byte        // current unterminated line
	mu      sync.Mutex    // protects Lines and partial
	Updates chan struct{} // receives a value when lines were added, never blocks the writer
}

func NewConsole() *Console {
	return &Console{
		Lines:   []string{},
		Updates: make(chan struct{}, 1),
	}
}

// Write implements io.Writer. Lines are split on '\n', carriage returns dropped.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	added := false
	for _, b := range p {
		switch b {
		case '\r':
		case '\n':
			c.Lines = append(c.Lines, stripansi.Strip(string(c.partial)))
			c.partial = c.partial[:0]
			added = true
		default:
			c.partial = append(c.partial, b)
		}
	}
	c.mu.Unlock()

	if added { c.notify() }
	return len(p), nil
}

func (c *Console) notify() {
	select {
	case c.Updates <- struct{}{}:
	default:
	}
}

// GetLines returns a copy of the lines starting at offset.
func (c *Console) GetLines(offset int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if offset > len(c.Lines) { offset = len(c.Lines) }
	return append([]string{}, c.Lines[offset:]...)
}

func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Lines)
}

func (c *Console) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.Lines, "\n")
}

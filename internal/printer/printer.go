// internal/printer/printer.go
// Receipt printer capability and the in-memory capture fallback.

package printer

import (
	"strings"
	"sync"
)

// Alignment selects horizontal text placement for subsequent lines.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Underline levels supported by the hardware.
const (
	UnderlineOff = 0
	UnderlineSingle = 1
	UnderlineDouble = 2
)

// Printer is the capability every receipt consumer targets. Both the
// hardware driver and the in-memory capture implement it, so rendering
// code never knows whether a device is attached.
type Printer interface {
	BoldOn() error
	BoldOff() error
	Underline(level int) error
	Align(a Alignment) error
	Text(line string) error
	Feed(lines int) error
	Cut() error
	Logo() error
	Close() error
}

// Capture is an in-memory Printer used when no device is available and in
// tests. Lines are recorded verbatim; style calls are recorded as markers
// so tests can assert on them.
type Capture struct {
	mu    sync.Mutex
	lines []string
}

// NewCapture creates an in-memory printer.
func NewCapture() *Capture {
	return &Capture{}
}

// Lines returns a copy of everything printed so far.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Dump renders the captured output as one string for logging.
func (c *Capture) Dump() string {
	return strings.Join(c.Lines(), "\n")
}

func (c *Capture) record(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *Capture) BoldOn() error  { c.record("<b>"); return nil }
func (c *Capture) BoldOff() error { c.record("</b>"); return nil }

func (c *Capture) Underline(level int) error {
	switch level {
	case UnderlineSingle:
		c.record("<u>")
	case UnderlineDouble:
		c.record("<uu>")
	default:
		c.record("</u>")
	}
	return nil
}

func (c *Capture) Align(a Alignment) error {
	switch a {
	case AlignCenter:
		c.record("<center>")
	case AlignRight:
		c.record("<right>")
	default:
		c.record("<left>")
	}
	return nil
}

func (c *Capture) Text(line string) error {
	c.record(line)
	return nil
}

func (c *Capture) Feed(lines int) error {
	for i := 0; i < lines; i++ {
		c.record("")
	}
	return nil
}

func (c *Capture) Cut() error  { c.record("<cut>"); return nil }
func (c *Capture) Logo() error { c.record("<logo>"); return nil }
func (c *Capture) Close() error { return nil }

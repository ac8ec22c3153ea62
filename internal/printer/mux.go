// internal/printer/mux.go
// Scoped printer acquisition with capture fallback when no device exists.

package printer

import (
	"log"
	"sync"

	"o-event/internal/config"
)

// Mux hands out the printer capability one user at a time. When the
// hardware device cannot be opened the session transparently runs against
// an in-memory Capture whose output is logged instead of printed, so a
// missing printer never fails a readout.
type Mux struct {
	cfg    config.PrinterConfig
	enable bool
	logger *log.Logger
	mu     sync.Mutex
}

// NewMux creates a printer mux.
func NewMux(cfg config.PrinterConfig, enable bool, logger *log.Logger) *Mux {
	return &Mux{cfg: cfg, enable: enable, logger: logger}
}

// Session runs fn with exclusive access to a Printer. Hardware errors
// inside fn are returned; failure to open the device is not an error.
func (m *Mux) Session(fn func(Printer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.enable {
		if dev, err := Open(m.cfg.DevicePath, m.cfg.CodePage); err == nil {
			defer dev.Close()
			return fn(dev)
		} else {
			m.logger.Printf("printer unavailable, capturing output: %v", err)
		}
	}

	capture := NewCapture()
	err := fn(capture)
	if dump := capture.Dump(); dump != "" {
		m.logger.Printf("captured receipt:\n%s", dump)
	}
	return err
}

// PrintLines writes a rendered receipt through the capability: logo and
// header centered, body left-aligned, then feed and cut.
func (m *Mux) PrintLines(header string, lines []string) error {
	return m.Session(func(p Printer) error {
		if err := p.Align(AlignCenter); err != nil {
			return err
		}
		p.Logo()
		if header != "" {
			p.BoldOn()
			p.Text(header)
			p.BoldOff()
		}
		if err := p.Align(AlignLeft); err != nil {
			return err
		}
		for _, line := range lines {
			if err := p.Text(line); err != nil {
				return err
			}
		}
		p.Feed(4)
		return p.Cut()
	})
}

// internal/printer/escpos.go
// ESC/POS byte driver for the thermal receipt printer.

package printer

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// ESC/POS control sequences.
var (
	seqInit         = []byte{0x1b, 0x40}       // ESC @
	seqBoldOn       = []byte{0x1b, 0x45, 1}    // ESC E 1
	seqBoldOff      = []byte{0x1b, 0x45, 0}    // ESC E 0
	seqCut          = []byte{0x1d, 0x56, 0x00} // GS V full cut
)

// codePages maps the configured code-page name to the ESC/POS page number
// and the single-byte encoder used for outgoing text.
var codePages = map[string]struct {
	number  byte
	charmap *charmap.Charmap
}{
	"cp437":  {0, charmap.CodePage437},
	"cp850":  {2, charmap.CodePage850},
	"cp852":  {18, charmap.CodePage852},
	"cp1251": {46, charmap.Windows1251},
	"cp1252": {16, charmap.Windows1252},
}

// Device is the hardware ESC/POS implementation of Printer. It writes the
// raw byte protocol to an opened character device.
type Device struct {
	w       io.WriteCloser
	encoder *charmap.Charmap
}

// Open opens the thermal printer at path and sends the initialization and
// code-page selection sequences. The returned error is expected to be
// handled non-fatally by callers: when the device is absent, fall back to
// a Capture.
func Open(path, codePage string) (*Device, error) {
	page, ok := codePages[codePage]
	if !ok {
		return nil, fmt.Errorf("unsupported printer code page %q", codePage)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open printer device %s: %w", path, err)
	}

	d := &Device{w: f, encoder: page.charmap}
	if err := d.raw(seqInit); err != nil {
		f.Close()
		return nil, err
	}
	// ESC t n selects the character code table.
	if err := d.raw([]byte{0x1b, 0x74, page.number}); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *Device) raw(b []byte) error {
	_, err := d.w.Write(b)
	return err
}

func (d *Device) BoldOn() error  { return d.raw(seqBoldOn) }
func (d *Device) BoldOff() error { return d.raw(seqBoldOff) }

// Underline sets the underline mode: 0 off, 1 single, 2 double (ESC - n).
func (d *Device) Underline(level int) error {
	if level < 0 || level > 2 {
		level = 0
	}
	return d.raw([]byte{0x1b, 0x2d, byte(level)})
}

// Align selects left/center/right justification (ESC a n).
func (d *Device) Align(a Alignment) error {
	return d.raw([]byte{0x1b, 0x61, byte(a)})
}

// Text encodes one line into the configured single-byte code page and
// writes it followed by a line feed. Characters outside the code page are
// replaced with '?'.
func (d *Device) Text(line string) error {
	encoded := make([]byte, 0, len(line)+1)
	for _, r := range line {
		b, ok := d.encodeRune(r)
		if !ok {
			b = '?'
		}
		encoded = append(encoded, b)
	}
	encoded = append(encoded, '\n')
	return d.raw(encoded)
}

func (d *Device) encodeRune(r rune) (byte, bool) {
	if r < 0x80 {
		return byte(r), true
	}
	return d.encoder.EncodeRune(r)
}

// Feed advances the paper by n lines (ESC d n).
func (d *Device) Feed(lines int) error {
	if lines < 0 {
		lines = 0
	}
	return d.raw([]byte{0x1b, 0x64, byte(lines)})
}

// Cut performs a full cut.
func (d *Device) Cut() error { return d.raw(seqCut) }

// Logo prints the logo stored in the printer's NV memory slot 1 (FS p).
func (d *Device) Logo() error {
	return d.raw([]byte{0x1c, 0x70, 1, 0})
}

// Close releases the device.
func (d *Device) Close() error {
	return d.w.Close()
}

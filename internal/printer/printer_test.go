package printer

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"o-event/internal/config"
)

func TestCapture_RecordsTextAndStyles(t *testing.T) {
	c := NewCapture()

	require.NoError(t, c.BoldOn())
	require.NoError(t, c.Text("HEADER"))
	require.NoError(t, c.BoldOff())
	require.NoError(t, c.Underline(UnderlineSingle))
	require.NoError(t, c.Text("line"))
	require.NoError(t, c.Underline(UnderlineOff))
	require.NoError(t, c.Feed(2))
	require.NoError(t, c.Cut())

	assert.Equal(t, []string{
		"<b>", "HEADER", "</b>", "<u>", "line", "</u>", "", "", "<cut>",
	}, c.Lines())
}

func TestCapture_LinesReturnsCopy(t *testing.T) {
	c := NewCapture()
	require.NoError(t, c.Text("a"))

	lines := c.Lines()
	lines[0] = "mutated"
	assert.Equal(t, []string{"a"}, c.Lines())
}

func TestMux_FallsBackToCaptureWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	mux := NewMux(config.PrinterConfig{WidthCols: 48}, false, logger)

	err := mux.PrintLines("EVENT", []string{"line one", "line two"})
	require.NoError(t, err)

	// Captured output ends up in the log instead of on paper.
	assert.Contains(t, buf.String(), "captured receipt")
	assert.Contains(t, buf.String(), "line one")
	assert.Contains(t, buf.String(), "line two")
}

func TestMux_MissingDeviceIsNonFatal(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	mux := NewMux(config.PrinterConfig{
		DevicePath: "/nonexistent/printer",
		CodePage:   "cp1251",
	}, true, logger)

	err := mux.PrintLines("EVENT", []string{"line"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "printer unavailable")
}

func TestOpen_RejectsUnknownCodePage(t *testing.T) {
	_, err := Open("/dev/null", "cp9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code page")
}

// Package clipboard copies text for the user with a tiered fallback chain.
// Clipboard access is not guaranteed across terminals and permission
// contexts, and a copy request must never fail silently: the chain tries the
// system clipboard, then an OSC 52 escape through the controlling terminal,
// and finally reports ErrManualCopyRequired so the UI can show a
// select-and-copy-yourself panel.
package clipboard

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

// Method identifies which backend performed a copy.
type Method int

const (
	// MethodNone means no backend succeeded.
	MethodNone Method = iota
	// MethodNative is the system clipboard.
	MethodNative
	// MethodOSC52 is the terminal escape-sequence clipboard.
	MethodOSC52
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodNative:
		return "native"
	case MethodOSC52:
		return "osc52"
	default:
		return "none"
	}
}

// Copier copies text with the fallback chain. The zero value is not usable;
// construct with New.
type Copier struct {
	logger *logging.Logger

	// Backends, injectable for tests.
	native func(string) error
	osc52  func(string) error
}

// New creates a Copier with the real backends: atotto/clipboard for the
// system clipboard and an OSC 52 sequence written to the tty.
func New(logger *logging.Logger) *Copier {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Copier{
		logger: logger,
		native: clipboard.WriteAll,
		osc52:  writeOSC52,
	}
}

// Copy copies text and reports which backend succeeded. When every backend
// fails it returns ErrManualCopyRequired; the caller must then present the
// text for manual copying.
func (c *Copier) Copy(text string) (Method, error) {
	if text == "" {
		return MethodNone, errors.New("nothing to copy")
	}

	if err := c.native(text); err == nil {
		return MethodNative, nil
	} else {
		c.logger.Debug("native clipboard unavailable", "error", err.Error())
	}

	if err := c.osc52(text); err == nil {
		return MethodOSC52, nil
	} else {
		c.logger.Debug("osc52 clipboard write failed", "error", err.Error())
	}

	return MethodNone, errors.ErrManualCopyRequired
}

// writeOSC52 emits an OSC 52 copy sequence on the terminal. Whether the
// terminal honors it is out of our hands, but a successful write is the best
// signal available.
func writeOSC52(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()
	return writeOSC52To(tty, text)
}

func writeOSC52To(w io.Writer, text string) error {
	_, err := osc52.New(text).WriteTo(w)
	return err
}

// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (xclip, xsel or wl-copy on Linux).
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System writes to the OS clipboard.
type System struct {
	unsupported bool
	writeAll    func(string) error
}

// New returns the system clipboard.
func New() *System {
	return &System{
		unsupported: clipboard.Unsupported,
		writeAll:    clipboard.WriteAll,
	}
}

// Copy places text on the clipboard.
func (s *System) Copy(text string) error {
	if s.unsupported {
		return ErrUnsupported
	}
	return s.writeAll(text)
}

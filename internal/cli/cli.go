// Package cli holds the command handlers behind the serialterm commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	serial "github.com/luhtfiimanal/go-serial-term"
	"github.com/luhtfiimanal/go-serial-term/terminal"
)

// ErrUsage marks invocation errors. The caller prints help instead of a
// plain error line.
var ErrUsage = errors.New("usage error")

// UsageError is a malformed invocation detected before any device is touched.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// ParseTarget interprets the positional argument. It reports list for the
// list command (any case) and rejects missing or malformed port names.
func ParseTarget(target string) (list bool, err error) {
	switch {
	case target == "":
		return false, &UsageError{Msg: "Missing argument."}
	case strings.EqualFold(target, "list"):
		return true, nil
	case !serial.ValidPortName(target):
		return false, &UsageError{Msg: "Invalid port."}
	}
	return false, nil
}

// LineEnding maps lf, crlf or cr to the terminator sent after each line.
func LineEnding(name string) (string, error) {
	switch strings.ToLower(name) {
	case "", "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	case "cr":
		return "\r", nil
	default:
		return "", fmt.Errorf("invalid line ending %q (want lf, crlf or cr)", name)
	}
}

// NewFormatter resolves a colour mode (auto, always, never) for out.
func NewFormatter(mode string, out io.Writer) (terminal.Formatter, error) {
	switch strings.ToLower(mode) {
	case "never":
		return terminal.Formatter{}, nil
	case "always":
		return terminal.Formatter{Styled: true, Profile: termenv.ANSI}, nil
	case "", "auto":
		f, ok := out.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return terminal.Formatter{}, nil
		}
		return terminal.Formatter{Styled: true, Profile: termenv.EnvColorProfile()}, nil
	default:
		return terminal.Formatter{}, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
}

package serial

import "errors"

var (
	// ErrClosed is returned by operations on a port after Close.
	ErrClosed = errors.New("serial port closed")

	// ErrUnsupportedBaud is returned by Open when the requested rate has no
	// termios constant.
	ErrUnsupportedBaud = errors.New("unsupported baud rate")

	// ErrTimeout is returned by ReadAvailable when the read timeout elapsed
	// before every announced byte arrived. The bytes read so far are still
	// returned alongside it.
	ErrTimeout error = timeoutError{}
)

type timeoutError struct{}

func (timeoutError) Error() string { return "serial read timeout" }

// Timeout reports true so callers can detect the condition without
// importing this package.
func (timeoutError) Timeout() bool { return true }

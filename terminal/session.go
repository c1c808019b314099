package terminal

import (
	"errors"
	"fmt"
	"time"
)

// Framing is fixed for every session.
const (
	DataBits = 8
	Parity   = "none"
	StopBits = 1
)

// Session defaults.
const (
	DefaultBaudRate    = 115200
	DefaultEncoding    = "ascii"
	DefaultTerminator  = "\n"
	DefaultReadTimeout = 200 * time.Millisecond
	DefaultTick        = 100 * time.Millisecond
)

// Session is the configuration fixed when a session starts.
type Session struct {
	Device        string
	BaudRate      int
	Encoding      string
	Terminator    string
	ReadTimeout   time.Duration
	Tick          time.Duration
	WriteMode     bool
	ShowDirection bool
}

// NewSession returns a read-only session for device with default settings.
func NewSession(device string) Session {
	return Session{
		Device:      device,
		BaudRate:    DefaultBaudRate,
		Encoding:    DefaultEncoding,
		Terminator:  DefaultTerminator,
		ReadTimeout: DefaultReadTimeout,
		Tick:        DefaultTick,
	}
}

// Validate reports the first setting that cannot be used.
func (s Session) Validate() error {
	switch {
	case s.Device == "":
		return errors.New("device is required")
	case s.BaudRate <= 0:
		return fmt.Errorf("invalid baud rate %d", s.BaudRate)
	case s.ReadTimeout <= 0:
		return fmt.Errorf("invalid read timeout %s", s.ReadTimeout)
	case s.Tick <= 0:
		return fmt.Errorf("invalid tick interval %s", s.Tick)
	}
	if _, err := LookupCodec(s.Encoding); err != nil {
		return err
	}
	return nil
}

// Banner is printed once the channel is open.
func (s Session) Banner() string {
	mode := "Read-only. Ctrl+C to quit."
	if s.WriteMode {
		mode = "WriteMode ON. Type and Enter to send. Ctrl+C to quit."
	}
	return fmt.Sprintf("Opened %s @ %d baud. %s\n\n", s.Device, s.BaudRate, mode)
}

// ClosingNotice is printed after the channel has been released.
func (s Session) ClosingNotice() string {
	return fmt.Sprintf("\nClosed %s\n", s.Device)
}

func (s Session) watchSlice() time.Duration {
	return min(s.Tick, s.ReadTimeout)
}

package serial

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultBaudRate is used when Config.BaudRate is zero.
	DefaultBaudRate = 115200

	// DefaultReadTimeout bounds how long a read waits for a tail byte.
	DefaultReadTimeout = 200 * time.Millisecond
)

// Config holds configuration parameters for opening a serial port.
// Framing is always 8 data bits, no parity, one stop bit.
type Config struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration
}

func (c Config) withDefaults() (Config, error) {
	if c.Device == "" {
		return c, errors.New("serial device is required")
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.BaudRate < 0 {
		return c, fmt.Errorf("%w: %d", ErrUnsupportedBaud, c.BaudRate)
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return c, nil
}

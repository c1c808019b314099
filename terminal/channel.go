package terminal

import (
	"errors"
	"os"
	"time"
)

// Channel is an open, bidirectional byte stream to the device. The loop owns
// it exclusively while running.
type Channel interface {
	// Available returns the number of inbound bytes buffered right now.
	Available() (int, error)
	// ReadAvailable returns the buffered bytes. It may return a timeout error
	// together with the bytes read before the timeout.
	ReadAvailable() ([]byte, error)
	WriteLine(line string, newline string) error
	Close() error
}

// Waiter is implemented by channels that can block until inbound data is
// pending. The loop uses it to wake up before the tick expires.
type Waiter interface {
	WaitReadable(timeout time.Duration) (bool, error)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

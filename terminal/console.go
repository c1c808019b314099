package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// Console reads whole lines from the operator's input on its own goroutine
// and queues them one at a time for the loop.
//
// A read already in progress cannot be interrupted, so after cancellation
// the reader goroutine lingers until the next line or EOF arrives and then
// exits without queueing anything.
type Console struct {
	r     io.Reader
	lines chan string
	ready chan struct{}
	done  chan struct{}
	once  sync.Once
	err   error
}

// NewConsole returns a console reading from r. Nothing is read until Start.
func NewConsole(r io.Reader) *Console {
	return &Console{
		r:     r,
		lines: make(chan string, 1),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Start launches the reader goroutine. Subsequent calls are no-ops.
func (c *Console) Start(ctx context.Context) {
	c.once.Do(func() { go c.read(ctx) })
}

func (c *Console) read(ctx context.Context) {
	defer close(c.done)
	br := bufio.NewReader(c.r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			select {
			case c.lines <- line:
				select {
				case c.ready <- struct{}{}:
				default:
				}
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.err = err
			}
			return
		}
	}
}

// Ready fires after a line has been queued.
func (c *Console) Ready() <-chan struct{} {
	return c.ready
}

// TryReadLine returns the queued line without blocking. ok is false when no
// line is ready. Once the input is exhausted and drained it returns io.EOF,
// or the read error that stopped the reader.
func (c *Console) TryReadLine() (line string, ok bool, err error) {
	select {
	case line := <-c.lines:
		return line, true, nil
	default:
	}
	select {
	case <-c.done:
		select {
		case line := <-c.lines:
			return line, true, nil
		default:
		}
		if c.err != nil {
			return "", false, c.err
		}
		return "", false, io.EOF
	default:
		return "", false, nil
	}
}

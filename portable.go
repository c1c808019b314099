package serial

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	gobug "go.bug.st/serial"
	"go.uber.org/atomic"
)

// portHandle is the subset of go.bug.st/serial.Port the portable backend uses.
type portHandle interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// allow tests to override the OS port
var openPort = func(name string, mode *gobug.Mode) (portHandle, error) {
	return gobug.Open(name, mode)
}

// PortablePort is a serial port backed by go.bug.st/serial.
//
// A pump goroutine reads from the device in ReadTimeout slices and appends to
// an internal buffer, so Available and ReadAvailable never block on the
// device. A read error stops the pump and is reported once the bytes read
// before it have been drained.
type PortablePort struct {
	handle    portHandle
	config    Config
	mu        sync.Mutex
	buf       bytes.Buffer
	ready     chan struct{}
	done      chan struct{}
	pumped    chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	err       atomic.Error
}

// OpenPortable opens cfg.Device in 8N1 mode through go.bug.st/serial.
func OpenPortable(cfg Config) (*PortablePort, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	mode := &gobug.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   gobug.NoParity,
		StopBits: gobug.OneStopBit,
	}
	h, err := openPort(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	if err := h.SetReadTimeout(cfg.ReadTimeout); err != nil {
		h.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	p := &PortablePort{
		handle: h,
		config: cfg,
		ready:  make(chan struct{}, 1),
		done:   make(chan struct{}),
		pumped: make(chan struct{}),
	}
	go p.pump()
	return p, nil
}

func (p *PortablePort) pump() {
	defer close(p.pumped)
	buf := make([]byte, 4096)
	for {
		n, err := p.handle.Read(buf)
		if p.closed.Load() {
			return
		}
		if n > 0 {
			p.mu.Lock()
			p.buf.Write(buf[:n])
			p.mu.Unlock()
			p.notify()
		}
		if err != nil {
			p.err.Store(err)
			p.notify()
			return
		}
	}
}

func (p *PortablePort) notify() {
	select {
	case p.ready <- struct{}{}:
	default:
	}
}

// Available returns the number of bytes pumped but not yet read.
func (p *PortablePort) Available() (int, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	p.mu.Lock()
	n := p.buf.Len()
	p.mu.Unlock()
	if n == 0 {
		if err := p.err.Load(); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// ReadAvailable drains the pumped bytes.
func (p *PortablePort) ReadAvailable() ([]byte, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf.Len() == 0 {
		return nil, p.err.Load()
	}
	data := bytes.Clone(p.buf.Bytes())
	p.buf.Reset()
	return data, nil
}

// WaitReadable blocks until bytes are pumped, the pump fails, the timeout
// elapses or the port is closed. A negative timeout waits forever.
func (p *PortablePort) WaitReadable(timeout time.Duration) (bool, error) {
	if n, err := p.Available(); n > 0 || err != nil {
		if err == ErrClosed {
			return false, err
		}
		return true, nil
	}

	var expired <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}
	select {
	case <-p.ready:
		n, err := p.Available()
		if err == ErrClosed {
			return false, err
		}
		return n > 0 || err != nil, nil
	case <-p.done:
		return false, ErrClosed
	case <-expired:
		return false, nil
	}
}

// WriteLine writes a line (with specified newline) to the serial port.
func (p *PortablePort) WriteLine(line string, newline string) error {
	if p.closed.Load() {
		return ErrClosed
	}
	data := []byte(line + newline)
	n, err := p.handle.Write(data)
	if err != nil {
		return err
	}
	if n < len(data) {
		return io.ErrShortWrite
	}
	return nil
}

// Close closes the port and waits for the pump to stop.
// Safe to call multiple times; subsequent calls are no-ops.
func (p *PortablePort) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.done)
		err = p.handle.Close()
		<-p.pumped
	})
	return err
}

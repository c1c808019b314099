//go:build linux

package serial

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Port provides raw, non-buffered access to a Linux serial port.
// Close may be called from any goroutine and unblocks WaitReadable.
type Port struct {
	fd        int
	file      *os.File
	done      chan struct{}
	closeOnce sync.Once
	config    Config
	pipeR     int // self-pipe read fd
	pipeW     int // self-pipe write fd
}

// Open opens a serial port using the provided Config and returns a Port.
// The port is configured for raw 8N1 operation without flow control.
func Open(cfg Config) (*Port, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	baud, ok := baudToUnix(cfg.BaudRate)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBaud, cfg.BaudRate)
	}

	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF | unix.IXANY
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS
	termios.Cflag |= unix.CS8 | unix.CLOCAL | unix.CREAD

	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	// Reads only happen after poll reports data, so blocking mode is safe.
	if err := syscall.SetNonblock(fd, false); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set blocking: %w", err)
	}

	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &Port{
		fd:     fd,
		file:   os.NewFile(uintptr(fd), cfg.Device),
		done:   make(chan struct{}),
		config: cfg,
		pipeR:  pipeFds[0],
		pipeW:  pipeFds[1],
	}, nil
}

// Available returns the number of bytes waiting in the driver's input queue.
func (s *Port) Available() (int, error) {
	if s.closed() {
		return 0, ErrClosed
	}
	n, err := unix.IoctlGetInt(s.fd, unix.TIOCINQ)
	if err != nil {
		return 0, fmt.Errorf("query input queue: %w", err)
	}
	return n, nil
}

// ReadAvailable reads the bytes announced by Available in as few reads as
// possible. It waits at most ReadTimeout for each outstanding byte; on expiry
// it returns what it has together with ErrTimeout.
func (s *Port) ReadAvailable() ([]byte, error) {
	n, err := s.Available()
	if err != nil || n == 0 {
		return nil, err
	}
	buf := make([]byte, n)
	read := 0
	for read < n {
		ready, err := s.WaitReadable(s.config.ReadTimeout)
		if err != nil {
			return buf[:read], err
		}
		if !ready {
			return buf[:read], ErrTimeout
		}
		m, err := s.file.Read(buf[read:])
		if err != nil {
			return buf[:read], err
		}
		read += m
	}
	return buf, nil
}

// WaitReadable blocks until the device has inbound data, the timeout elapses
// or the port is closed. A hung-up device counts as readable so the next read
// surfaces the failure. A negative timeout waits forever.
func (s *Port) WaitReadable(timeout time.Duration) (bool, error) {
	if s.closed() {
		return false, ErrClosed
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
	}
	pfd := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.pipeR), Events: unix.POLLIN},
	}
	n, err := unix.Poll(pfd, ms)
	if errors.Is(err, unix.EINTR) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if pfd[1].Revents&unix.POLLIN != 0 || s.closed() {
		return false, ErrClosed
	}
	return pfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0, nil
}

// WriteLine writes a line (with specified newline) to the serial port.
func (s *Port) WriteLine(line string, newline string) error {
	if s.closed() {
		return ErrClosed
	}
	_, err := s.file.WriteString(line + newline)
	return err
}

// Close closes the serial port and wakes any WaitReadable call.
// Safe to call multiple times; subsequent calls are no-ops.
func (s *Port) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		unix.Write(s.pipeW, []byte{1})
		err = s.file.Close()
		unix.Close(s.pipeR)
		unix.Close(s.pipeW)
	})
	return err
}

func (s *Port) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

var unixBauds = map[int]uint32{
	1200:    unix.B1200,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	3000000: unix.B3000000,
	4000000: unix.B4000000,
}

func baudToUnix(baud int) (uint32, bool) {
	b, ok := unixBauds[baud]
	return b, ok
}

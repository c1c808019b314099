package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	serial "github.com/luhtfiimanal/go-serial-term"
	"github.com/luhtfiimanal/go-serial-term/terminal"
)

// Options are the resolved command-line settings for one session.
type Options struct {
	Port          string
	BaudRate      int
	WriteMode     bool
	ShowDirection bool
	Encoding      string
	LineEnding    string
	Driver        string
	Color         string
	Tick          time.Duration
	ReadTimeout   time.Duration
}

// allow tests to substitute the device
var openDevice = func(driver string, cfg serial.Config) (terminal.Channel, error) {
	return serial.OpenDriver(driver, cfg)
}

// RunSession opens opts.Port and runs the interactive session until ctx is
// cancelled or the device fails.
func RunSession(ctx context.Context, opts Options, stdout io.Writer, stdin io.Reader, logger *slog.Logger) error {
	terminator, err := LineEnding(opts.LineEnding)
	if err != nil {
		return err
	}
	format, err := NewFormatter(opts.Color, stdout)
	if err != nil {
		return err
	}

	s := terminal.NewSession(opts.Port)
	s.BaudRate = opts.BaudRate
	s.WriteMode = opts.WriteMode
	s.ShowDirection = opts.ShowDirection
	s.Terminator = terminator
	if opts.Encoding != "" {
		s.Encoding = opts.Encoding
	}
	if opts.Tick > 0 {
		s.Tick = opts.Tick
	}
	if opts.ReadTimeout > 0 {
		s.ReadTimeout = opts.ReadTimeout
	}

	driver := opts.Driver
	if driver == "" {
		driver = serial.DefaultDriver
	}
	logger.Debug("opening port",
		"device", s.Device,
		"baud", s.BaudRate,
		"driver", driver,
		"write_mode", s.WriteMode,
		"encoding", s.Encoding,
	)

	open := func(s terminal.Session) (terminal.Channel, error) {
		return openDevice(driver, serial.Config{
			Device:      s.Device,
			BaudRate:    s.BaudRate,
			ReadTimeout: s.ReadTimeout,
		})
	}
	return terminal.Start(ctx, s, open,
		terminal.WithOutput(stdout),
		terminal.WithConsole(stdin),
		terminal.WithLogger(logger),
		terminal.WithFormatter(format),
	)
}

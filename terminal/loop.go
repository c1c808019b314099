package terminal

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/luhtfiimanal/go-serial-term/internal/logging"
)

// Loop is the coordinator of a running session.
type Loop struct {
	ch      Channel
	session Session
	codec   Codec
	format  Formatter
	out     io.Writer
	in      io.Reader
	logger  *slog.Logger
	stats   counters
}

type counters struct {
	rx    atomic.Int64
	tx    atomic.Int64
	lines atomic.Int64
}

// Stats summarises traffic through a loop.
type Stats struct {
	RxBytes   int64
	TxBytes   int64
	LinesSent int64
}

// Option configures a Loop.
type Option func(*Loop)

// WithOutput sets the display writer. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(l *Loop) { l.out = w }
}

// WithConsole sets the operator input read in write mode. Defaults to os.Stdin.
func WithConsole(r io.Reader) Option {
	return func(l *Loop) { l.in = r }
}

// WithLogger sets the diagnostics logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithFormatter sets marker styling. ShowDirection always follows the session.
func WithFormatter(f Formatter) Option {
	return func(l *Loop) { l.format = f }
}

// WithCodec overrides the codec named by Session.Encoding.
func WithCodec(c Codec) Option {
	return func(l *Loop) { l.codec = c }
}

// NewLoop prepares a loop over an already open channel.
func NewLoop(ch Channel, s Session, opts ...Option) *Loop {
	l := &Loop{
		ch:      ch,
		session: s,
		out:     os.Stdout,
		in:      os.Stdin,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.codec == nil {
		c, err := LookupCodec(s.Encoding)
		if err != nil {
			c = asciiCodec{}
		}
		l.codec = c
	}
	if l.session.Tick <= 0 {
		l.session.Tick = DefaultTick
	}
	if l.session.ReadTimeout <= 0 {
		l.session.ReadTimeout = DefaultReadTimeout
	}
	l.format.ShowDirection = s.ShowDirection
	return l
}

// Run drives the session until ctx is cancelled, returning nil, or until a
// channel, console or display failure, returning that error. Run never
// closes the channel.
//
// Every step drains inbound data before it looks at the console, so bytes
// already buffered by the device are shown before the next line goes out.
func (l *Loop) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	var (
		console      *Console
		consoleReady <-chan struct{}
	)
	if l.session.WriteMode {
		console = NewConsole(l.in)
		console.Start(ctx)
		consoleReady = console.Ready()
	}

	wake := make(chan struct{}, 1)
	if w, ok := l.ch.(Waiter); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.watch(ctx, w, wake)
		}()
	}

	timer := time.NewTimer(l.session.Tick)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			l.logger.Debug("loop cancelled", "device", l.session.Device)
			return nil
		}

		if err := l.pollInbound(); err != nil {
			return err
		}

		if console != nil {
			res, err := l.maybeSend(console)
			if err != nil {
				return err
			}
			if res == consoleClosed {
				l.logger.Debug("console input closed, continuing read-only", "device", l.session.Device)
				console, consoleReady = nil, nil
			}
		}

		timer.Reset(l.session.Tick)
		select {
		case <-ctx.Done():
		case <-timer.C:
		case <-wake:
		case <-consoleReady:
		}
	}
}

// watch wakes the loop as soon as the channel reports inbound data. It waits
// in slices no longer than the tick so cancellation is noticed promptly.
func (l *Loop) watch(ctx context.Context, w Waiter, wake chan<- struct{}) {
	slice := l.session.watchSlice()
	l.logger.Debug("readiness watcher started", "device", l.session.Device, "slice", slice)
	for ctx.Err() == nil {
		ready, err := w.WaitReadable(slice)
		if err != nil {
			// The loop reports the failure on its next poll.
			l.logger.Debug("readiness watcher stopped", "device", l.session.Device, "err", err)
			return
		}
		if !ready {
			continue
		}
		select {
		case wake <- struct{}{}:
		case <-ctx.Done():
			return
		}
	}
}

// Stats returns traffic counters. Safe to call while Run is in progress.
func (l *Loop) Stats() Stats {
	return Stats{
		RxBytes:   l.stats.rx.Load(),
		TxBytes:   l.stats.tx.Load(),
		LinesSent: l.stats.lines.Load(),
	}
}

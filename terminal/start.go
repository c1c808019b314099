package terminal

import (
	"context"
	"fmt"
	"io"
)

// Opener opens the channel described by a session.
type Opener func(Session) (Channel, error)

// OpenError reports that the channel could not be opened. The loop never
// started.
type OpenError struct {
	Device string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open serial port %s: %v", e.Device, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Start opens the channel, prints the banner and runs the loop until ctx is
// cancelled or the channel fails. The channel is closed exactly once on
// every path after a successful open, before Start returns.
func Start(ctx context.Context, s Session, open Opener, opts ...Option) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	ch, err := open(s)
	if err != nil {
		return &OpenError{Device: s.Device, Err: err}
	}

	l := NewLoop(ch, s, opts...)
	defer func() {
		if cerr := ch.Close(); cerr != nil {
			l.logger.Warn("close failed", "device", s.Device, "err", cerr)
		}
		io.WriteString(l.out, s.ClosingNotice())
		st := l.Stats()
		l.logger.Debug("session closed",
			"device", s.Device,
			"rx_bytes", st.RxBytes,
			"tx_bytes", st.TxBytes,
			"lines_sent", st.LinesSent,
		)
	}()

	if _, err := io.WriteString(l.out, s.Banner()); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return l.Run(ctx)
}

package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type sendResult int

const (
	idle sendResult = iota
	sent
	dropped
	consoleClosed
)

// maybeSend transmits the queued console line, if any.
func (l *Loop) maybeSend(c *Console) (sendResult, error) {
	line, ok, err := c.TryReadLine()
	if errors.Is(err, io.EOF) {
		return consoleClosed, nil
	}
	if err != nil {
		return idle, fmt.Errorf("console: %w", err)
	}
	if !ok {
		return idle, nil
	}
	return l.send(line)
}

// send writes the line without trailing whitespace plus the session
// terminator. Blank lines are dropped.
func (l *Loop) send(line string) (sendResult, error) {
	msg := strings.TrimRightFunc(line, unicode.IsSpace)
	if msg == "" {
		return dropped, nil
	}
	if echo := l.format.Outbound(msg); echo != "" {
		if _, err := io.WriteString(l.out, echo); err != nil {
			return idle, fmt.Errorf("display: %w", err)
		}
	}
	encoded := l.codec.Encode(msg)
	if err := l.ch.WriteLine(string(encoded), l.session.Terminator); err != nil {
		return idle, fmt.Errorf("write %s: %w", l.session.Device, err)
	}
	l.stats.tx.Add(int64(len(encoded) + len(l.session.Terminator)))
	l.stats.lines.Inc()
	return sent, nil
}

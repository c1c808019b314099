package terminal

import (
	"fmt"
	"io"
)

// Poll drains whatever ch currently holds and decodes it. It returns "" when
// nothing is buffered. A timeout while reading the tail is not an error; the
// text decoded so far is returned. Any other failure is returned together
// with the text read before it.
func Poll(ch Channel, codec Codec) (string, error) {
	data, err := drain(ch)
	return codec.Decode(data), err
}

func drain(ch Channel) ([]byte, error) {
	n, err := ch.Available()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	data, err := ch.ReadAvailable()
	if err != nil && isTimeout(err) {
		err = nil
	}
	return data, err
}

func (l *Loop) pollInbound() error {
	data, rerr := drain(l.ch)
	if len(data) > 0 {
		l.stats.rx.Add(int64(len(data)))
		if _, err := io.WriteString(l.out, l.format.Inbound(l.codec.Decode(data))); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
	if rerr != nil {
		return fmt.Errorf("read %s: %w", l.session.Device, rerr)
	}
	return nil
}

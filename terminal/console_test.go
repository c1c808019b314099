package terminal

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_DeliversLinesInOrder(t *testing.T) {
	c := NewConsole(strings.NewReader("first\nsecond\nno newline"))
	c.Start(context.Background())

	var got []string
	require.Eventually(t, func() bool {
		line, ok, err := c.TryReadLine()
		if ok {
			got = append(got, line)
		}
		return errors.Is(err, io.EOF)
	}, time.Second, time.Millisecond)

	assert.Equal(t, []string{"first\n", "second\n", "no newline"}, got)
}

func TestConsole_NothingReady(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	c := NewConsole(pr)
	c.Start(context.Background())

	line, ok, err := c.TryReadLine()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, line)

	go pw.Write([]byte("AT\n"))

	select {
	case <-c.Ready():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for console line")
	}
	line, ok, err = c.TryReadLine()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AT\n", line)
}

func TestConsole_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	c := NewConsole(errReader{boom})
	c.Start(context.Background())

	require.Eventually(t, func() bool {
		_, _, err := c.TryReadLine()
		return errors.Is(err, boom)
	}, time.Second, time.Millisecond)
}

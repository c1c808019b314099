package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession("COM3")
	assert.Equal(t, "COM3", s.Device)
	assert.Equal(t, 115200, s.BaudRate)
	assert.Equal(t, "ascii", s.Encoding)
	assert.Equal(t, "\n", s.Terminator)
	assert.Equal(t, 200*time.Millisecond, s.ReadTimeout)
	assert.Equal(t, 100*time.Millisecond, s.Tick)
	assert.False(t, s.WriteMode)
	assert.False(t, s.ShowDirection)
	require.NoError(t, s.Validate())
}

func TestSession_Validate(t *testing.T) {
	for name, mutate := range map[string]func(*Session){
		"device":   func(s *Session) { s.Device = "" },
		"baud":     func(s *Session) { s.BaudRate = 0 },
		"timeout":  func(s *Session) { s.ReadTimeout = 0 },
		"tick":     func(s *Session) { s.Tick = -time.Second },
		"encoding": func(s *Session) { s.Encoding = "klingon" },
	} {
		s := NewSession("/dev/ttyUSB0")
		mutate(&s)
		assert.Error(t, s.Validate(), name)
	}
}

func TestSession_Banner(t *testing.T) {
	s := NewSession("COM3")
	assert.Equal(t, "Opened COM3 @ 115200 baud. Read-only. Ctrl+C to quit.\n\n", s.Banner())

	s.WriteMode = true
	s.BaudRate = 9600
	assert.Equal(t, "Opened COM3 @ 9600 baud. WriteMode ON. Type and Enter to send. Ctrl+C to quit.\n\n", s.Banner())
	assert.Equal(t, "\nClosed COM3\n", s.ClosingNotice())
}

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serial "github.com/luhtfiimanal/go-serial-term"
)

func stubPorts(t *testing.T, ports func() ([]serial.PortInfo, error), names func() ([]string, error)) {
	t.Helper()
	origPorts, origNames := listPorts, listPortNames
	listPorts, listPortNames = ports, names
	t.Cleanup(func() { listPorts, listPortNames = origPorts, origNames })
}

func TestListPorts(t *testing.T) {
	stubPorts(t, func() ([]serial.PortInfo, error) {
		return []serial.PortInfo{
			{Name: "COM3", Description: "USB Serial Device (USB 2E8A:000A)"},
			{Name: "/dev/ttyS0"},
		}, nil
	}, nil)

	var out bytes.Buffer
	require.NoError(t, ListPorts(&out))
	assert.Equal(t, "COM3     USB Serial Device (USB 2E8A:000A)\n/dev/ttyS0\n", out.String())
}

func TestListPorts_None(t *testing.T) {
	stubPorts(t, func() ([]serial.PortInfo, error) { return nil, nil }, nil)

	var out bytes.Buffer
	require.NoError(t, ListPorts(&out))
	assert.Equal(t, "No serial ports found.\n", out.String())
}

func TestListPorts_Fallback(t *testing.T) {
	stubPorts(t,
		func() ([]serial.PortInfo, error) { return nil, errors.New("access denied") },
		func() ([]string, error) { return []string{"COM1", "COM3"}, nil },
	)

	var out bytes.Buffer
	require.NoError(t, ListPorts(&out))
	assert.Equal(t, "Failed to query serial ports: access denied\nFalling back to basic port listing:\nCOM1\nCOM3\n", out.String())
}

func TestListPorts_FallbackFails(t *testing.T) {
	stubPorts(t,
		func() ([]serial.PortInfo, error) { return nil, errors.New("access denied") },
		func() ([]string, error) { return nil, errors.New("no ports") },
	)

	var out bytes.Buffer
	require.Error(t, ListPorts(&out))
}

package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCodec(t *testing.T) {
	for name, want := range map[string]string{
		"":           "ascii",
		"ASCII":      "ascii",
		"utf8":       "utf-8",
		"UTF-8":      "utf-8",
		"iso-8859-1": "latin1",
		"cp1252":     "windows-1252",
		"ibm437":     "cp437",
	} {
		c, err := LookupCodec(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, c.Name(), name)
	}

	_, err := LookupCodec("ebcdic")
	require.Error(t, err)
}

func TestASCIICodec(t *testing.T) {
	c, err := LookupCodec("ascii")
	require.NoError(t, err)

	assert.Equal(t, "OK\r\n", c.Decode([]byte("OK\r\n")))
	assert.Equal(t, "a?b", c.Decode([]byte{'a', 0xff, 'b'}))
	assert.Equal(t, []byte("temp 21?C"), c.Encode("temp 21°C"))
}

func TestUTF8Codec(t *testing.T) {
	c, err := LookupCodec("utf-8")
	require.NoError(t, err)

	assert.Equal(t, "21°C", c.Decode([]byte("21°C")))
	assert.Equal(t, []byte("21°C"), c.Encode("21°C"))
}

func TestCharmapCodec(t *testing.T) {
	c, err := LookupCodec("latin1")
	require.NoError(t, err)
	assert.Equal(t, "21°C", c.Decode([]byte{'2', '1', 0xb0, 'C'}))
	assert.Equal(t, []byte{'2', '1', 0xb0, 'C'}, c.Encode("21°C"))
	assert.Equal(t, []byte("?"), c.Encode("€"))

	cp437, err := LookupCodec("cp437")
	require.NoError(t, err)
	assert.Equal(t, "╔", cp437.Decode([]byte{0xc9}))
}

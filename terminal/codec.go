package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Codec converts between device bytes and display text.
type Codec interface {
	Name() string
	Decode(b []byte) string
	Encode(s string) []byte
}

// LookupCodec returns the codec registered under name (case-insensitive).
func LookupCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "ascii", "us-ascii":
		return asciiCodec{}, nil
	case "utf-8", "utf8":
		return utf8Codec{}, nil
	case "latin1", "iso-8859-1":
		return charmapCodec{name: "latin1", cm: charmap.ISO8859_1}, nil
	case "windows-1252", "cp1252":
		return charmapCodec{name: "windows-1252", cm: charmap.Windows1252}, nil
	case "cp437", "ibm437":
		return charmapCodec{name: "cp437", cm: charmap.CodePage437}, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// asciiCodec maps anything outside 7-bit ASCII to '?'.
type asciiCodec struct{}

func (asciiCodec) Name() string { return "ascii" }

func (asciiCodec) Decode(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= utf8.RuneSelf {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}

func (asciiCodec) Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= utf8.RuneSelf {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

// utf8Codec passes bytes through untouched. A rune split across two chunks
// is written in two halves and reassembled by the display terminal.
type utf8Codec struct{}

func (utf8Codec) Name() string           { return "utf-8" }
func (utf8Codec) Decode(b []byte) string { return string(b) }
func (utf8Codec) Encode(s string) []byte { return []byte(s) }

type charmapCodec struct {
	name string
	cm   *charmap.Charmap
}

func (c charmapCodec) Name() string { return c.name }

func (c charmapCodec) Decode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, x := range b {
		sb.WriteRune(c.cm.DecodeByte(x))
	}
	return sb.String()
}

func (c charmapCodec) Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := c.cm.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

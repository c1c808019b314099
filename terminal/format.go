package terminal

import "github.com/muesli/termenv"

// Direction markers.
const (
	InboundMarker  = "<< "
	OutboundMarker = ">> "
)

const (
	inboundColor  = "6" // cyan
	outboundColor = "3" // yellow
)

// Formatter prefixes displayed data with direction markers. Only the marker
// is ever styled; payload text is written exactly as decoded.
type Formatter struct {
	ShowDirection bool
	Styled        bool
	Profile       termenv.Profile
}

// Inbound returns chunk, prefixed with the inbound marker when direction
// display is on.
func (f Formatter) Inbound(chunk string) string {
	if !f.ShowDirection {
		return chunk
	}
	return f.marker(InboundMarker, inboundColor) + chunk
}

// Outbound returns the echo for a transmitted line, or "" when direction
// display is off.
func (f Formatter) Outbound(line string) string {
	if !f.ShowDirection {
		return ""
	}
	return f.marker(OutboundMarker, outboundColor) + line + "\n"
}

func (f Formatter) marker(m, color string) string {
	if !f.Styled || f.Profile == termenv.Ascii {
		return m
	}
	return f.Profile.String(m).Foreground(f.Profile.Color(color)).String()
}

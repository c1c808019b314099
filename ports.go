package serial

import (
	"fmt"
	"regexp"
	"strings"

	gobug "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// allow tests to override the platform enumeration
var (
	detailedPortsList = enumerator.GetDetailedPortsList
	portsList         = gobug.GetPortsList
)

// PortInfo describes one port found on the system.
type PortInfo struct {
	Name        string
	Description string
}

// ListPorts returns the ports reported by the platform enumerator, with
// product and USB identifiers folded into Description when known.
func ListPorts() ([]PortInfo, error) {
	details, err := detailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate ports: %w", err)
	}
	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}
		ports = append(ports, PortInfo{Name: d.Name, Description: describe(d)})
	}
	return ports, nil
}

// ListPortNames returns bare port names. It is the basic listing used when
// the detailed enumeration is unavailable.
func ListPortNames() ([]string, error) {
	names, err := portsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	return names, nil
}

func describe(d *enumerator.PortDetails) string {
	var parts []string
	if d.Product != "" {
		parts = append(parts, d.Product)
	}
	if d.IsUSB {
		usb := fmt.Sprintf("USB %s:%s", strings.ToUpper(d.VID), strings.ToUpper(d.PID))
		if d.SerialNumber != "" {
			usb += " SN " + d.SerialNumber
		}
		parts = append(parts, "("+usb+")")
	}
	return strings.Join(parts, " ")
}

var comPort = regexp.MustCompile(`(?i)^COM\d+$`)

// ValidPortName reports whether name looks like a serial device: COM<N> on
// Windows or an absolute path under /dev elsewhere.
func ValidPortName(name string) bool {
	if comPort.MatchString(name) {
		return true
	}
	return strings.HasPrefix(name, "/dev/") && len(name) > len("/dev/")
}

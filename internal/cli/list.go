package cli

import (
	"fmt"
	"io"
	"strings"

	serial "github.com/luhtfiimanal/go-serial-term"
)

// allow tests to override the platform enumeration
var (
	listPorts     = serial.ListPorts
	listPortNames = serial.ListPortNames
)

// ListPorts prints one port per line. When the detailed query fails it says
// so and falls back to bare port names.
func ListPorts(w io.Writer) error {
	ports, err := listPorts()
	if err == nil {
		if len(ports) == 0 {
			fmt.Fprintln(w, "No serial ports found.")
			return nil
		}
		for _, p := range ports {
			fmt.Fprintln(w, strings.TrimRight(fmt.Sprintf("%-8s %s", p.Name, p.Description), " "))
		}
		return nil
	}

	fmt.Fprintf(w, "Failed to query serial ports: %v\n", err)
	fmt.Fprintln(w, "Falling back to basic port listing:")
	names, err := listPortNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

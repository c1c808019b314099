package serial

import (
	"fmt"
	"strings"
	"time"
)

// Driver names accepted by OpenDriver.
const (
	DriverNative   = "native"
	DriverPortable = "portable"
)

// Device is the method set shared by Port and PortablePort.
type Device interface {
	Available() (int, error)
	ReadAvailable() ([]byte, error)
	WaitReadable(timeout time.Duration) (bool, error)
	WriteLine(line string, newline string) error
	Close() error
}

// OpenDriver opens cfg.Device with the named backend.
func OpenDriver(driver string, cfg Config) (Device, error) {
	if driver == "" {
		driver = DefaultDriver
	}
	switch strings.ToLower(driver) {
	case DriverNative:
		return openNative(cfg)
	case DriverPortable:
		p, err := OpenPortable(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown serial driver %q", driver)
	}
}

//go:build !linux

package serial

import "errors"

// DefaultDriver is the backend used when none is requested.
const DefaultDriver = DriverPortable

func openNative(Config) (Device, error) {
	return nil, errors.New("native serial driver is only available on Linux")
}

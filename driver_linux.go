//go:build linux

package serial

// DefaultDriver is the backend used when none is requested.
const DefaultDriver = DriverNative

func openNative(cfg Config) (Device, error) {
	p, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

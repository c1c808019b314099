// Package serial provides the device side of an interactive serial terminal:
// opening a port in raw 8N1 mode, draining whatever bytes the driver has
// buffered without blocking, writing terminated lines and enumerating ports.
//
// Two backends share the same method set:
//   - Port (Linux only) talks to the tty with raw termios syscalls, answers
//     Available with TIOCINQ and waits for readability with poll(2). A
//     self-pipe makes any waiter return promptly once Close is called.
//   - PortablePort wraps go.bug.st/serial and works on every platform that
//     library supports. A pump goroutine moves inbound bytes into a buffer so
//     Available never blocks.
//
// Example usage:
//
//	cfg := serial.Config{
//	    Device:      "/dev/ttyUSB0",
//	    BaudRate:    115200,
//	    ReadTimeout: 200 * time.Millisecond,
//	}
//	port, err := serial.OpenDriver(serial.DefaultDriver, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	if n, _ := port.Available(); n > 0 {
//	    data, err := port.ReadAvailable()
//	    if err != nil && !errors.Is(err, serial.ErrTimeout) {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(string(data))
//	}
//
//	if err := port.WriteLine("AT", "\r\n"); err != nil {
//	    log.Println("Write failed:", err)
//	}
package serial

package terminal

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// fakeChannel is an in-memory Channel recording everything the loop does.
type fakeChannel struct {
	mu          sync.Mutex
	inbound     []byte
	availErr    error
	readErr     error
	timeoutTail bool
	writeErr    error
	written     []string
	events      []string
	closes      int
}

func (f *fakeChannel) Feed(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbound = append(f.inbound, s...)
}

func (f *fakeChannel) Available() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.availErr != nil {
		return 0, f.availErr
	}
	return len(f.inbound), nil
}

func (f *fakeChannel) ReadAvailable() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := f.inbound
	f.inbound = nil
	f.events = append(f.events, "read:"+string(data))
	if f.timeoutTail {
		return data, timeoutErr{}
	}
	return data, f.readErr
}

func (f *fakeChannel) WriteLine(line, newline string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, line+newline)
	f.events = append(f.events, "write:"+line+newline)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeChannel) Written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...)
}

func (f *fakeChannel) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *fakeChannel) Closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// waitingChannel adds readiness notification to fakeChannel.
type waitingChannel struct {
	*fakeChannel
	signal chan struct{}
}

func (w *waitingChannel) WaitReadable(timeout time.Duration) (bool, error) {
	select {
	case <-w.signal:
		return true, nil
	case <-time.After(timeout):
		return false, nil
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "read timeout" }
func (timeoutErr) Timeout() bool { return true }

// syncBuffer is a bytes.Buffer safe for the loop and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// countingReader fails the test if the loop ever reads console input.
type countingReader struct {
	mu    sync.Mutex
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	r.reads++
	r.mu.Unlock()
	return copy(p, "typed while read-only\n"), nil
}

func (r *countingReader) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

func testSession() Session {
	s := NewSession("/dev/ttyTEST0")
	s.Tick = 5 * time.Millisecond
	s.ReadTimeout = 5 * time.Millisecond
	return s
}

// runLoop starts l in the background and returns a stop function that
// cancels it and returns Run's error.
func runLoop(t *testing.T, l *Loop) (stop func() error, done <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- l.Run(ctx) }()
	t.Cleanup(cancel)

	var once sync.Once
	var err error
	stop = func() error {
		once.Do(func() {
			cancel()
			select {
			case err = <-result:
			case <-time.After(2 * time.Second):
				t.Fatal("timeout waiting for Run to return")
			}
		})
		return err
	}
	return stop, result
}

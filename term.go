// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// FlushQueue selects which queue Flush discards.
type FlushQueue int

const (
	FlushInput FlushQueue = iota
	FlushOutput
	FlushBoth
)

// Term is a terminal handle: an open file descriptor known to refer
// to a tty, plus attribute, mode and modem line operations on it.
// Term does not own the descriptor unless it opened the device
// itself; Close closes the wrapped file either way.
type Term struct {
	file *os.File
}

// New wraps an already-open file. It fails with ErrNotTerminal when
// the descriptor does not refer to a terminal.
func New(file *os.File) (*Term, error) {
	if !term.IsTerminal(int(file.Fd())) {
		return nil, fmt.Errorf("%s: %w", file.Name(), ErrNotTerminal)
	}
	return &Term{file: file}, nil
}

// Open opens a terminal device read-write without making it the
// controlling terminal. An optional mode string such as "9600,8,n,1"
// is applied before Open returns.
func Open(name string, mode ...string) (*Term, error) {
	file, err := os.OpenFile(name, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	t, err := New(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	for _, m := range mode {
		if err = t.SetMode(m); err != nil {
			file.Close()
			return nil, err
		}
	}
	return t, nil
}

// Stdio probes stdin, stdout and stderr in order and wraps the first
// one that is a terminal.
func Stdio() (*Term, error) {
	for _, file := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		if term.IsTerminal(int(file.Fd())) {
			return &Term{file: file}, nil
		}
	}
	return nil, fmt.Errorf("stdin, stdout, stderr: %w", ErrNotTerminal)
}

func (t *Term) Fd() int { return int(t.file.Fd()) }

func (t *Term) Name() string { return t.file.Name() }

func (t *Term) Read(p []byte) (int, error) { return t.file.Read(p) }

func (t *Term) Write(p []byte) (int, error) { return t.file.Write(p) }

func (t *Term) Close() error { return t.file.Close() }

// Getattr reads the terminal attributes.
func (t *Term) Getattr() (*Attrs, error) {
	return Getattr(t.Fd())
}

// Setattr writes the attributes to the terminal.
func (t *Term) Setattr(a *Attrs) error {
	return Setattr(t.Fd(), a)
}

// modify reads the attributes, applies fn, and writes them back.
// The write is skipped when fn fails.
func (t *Term) modify(fn func(a *Attrs) error) error {
	a, err := t.Getattr()
	if err != nil {
		return err
	}
	if err = fn(a); err != nil {
		return err
	}
	return t.Setattr(a)
}

// GetMode reads the current "baud,csize,parity,stop" mode string.
func (t *Term) GetMode() (string, error) {
	a, err := t.Getattr()
	if err != nil {
		return "", err
	}
	return a.Mode(), nil
}

// SetMode applies a mode string, leaving all other attribute bits
// untouched.
func (t *Term) SetMode(mode string) error {
	return t.modify(func(a *Attrs) error { return a.SetMode(mode) })
}

// SetBaud sets the input and output baud rate.
func (t *Term) SetBaud(rate int) error {
	return t.modify(func(a *Attrs) error { return a.SetBaud(rate) })
}

// SetCSize sets the character size in bits, 5 to 8.
func (t *Term) SetCSize(bits int) error {
	return t.modify(func(a *Attrs) error { return a.SetCSize(bits) })
}

// SetParity sets the parity mode: 'n', 'o' or 'e'.
func (t *Term) SetParity(parity byte) error {
	return t.modify(func(a *Attrs) error { return a.SetParity(parity) })
}

// SetStopBits sets the number of stop bits, 1 or 2.
func (t *Term) SetStopBits(n int) error {
	return t.modify(func(a *Attrs) error { return a.SetStopBits(n) })
}

// GetFlag reports a named flag, see FlagNames.
func (t *Term) GetFlag(name string) (bool, error) {
	a, err := t.Getattr()
	if err != nil {
		return false, err
	}
	return a.GetFlag(name)
}

// SetFlag sets or clears a named flag.
func (t *Term) SetFlag(name string, on bool) error {
	return t.modify(func(a *Attrs) error { return a.SetFlag(name, on) })
}

// SetRaw puts the terminal in raw mode.
func (t *Term) SetRaw() error {
	return t.modify(func(a *Attrs) error {
		a.MakeRaw()
		return nil
	})
}

// SetCbreak turns off canonical mode and echo.
func (t *Term) SetCbreak() error {
	return t.modify(func(a *Attrs) error {
		a.MakeCbreak()
		return nil
	})
}

// Drain blocks until all queued output has been transmitted.
func (t *Term) Drain() error {
	return drain(t.Fd())
}

// Flush discards data held in the selected queue.
func (t *Term) Flush(queue FlushQueue) error {
	return flush(t.Fd(), queue)
}

// SendBreak transmits a stream of zero bits for 0.25 to 0.5 seconds.
func (t *Term) SendBreak() error {
	return sendBreak(t.Fd())
}

// Pending returns the number of bytes waiting in the input queue.
func (t *Term) Pending() (int, error) {
	return inputPending(t.Fd())
}

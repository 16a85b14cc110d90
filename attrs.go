// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package termios provides an object wrapper around the POSIX
// termios(3) terminal control interface: a handle type bound to a
// terminal descriptor and an attributes type mirroring the kernel
// termios block, with convenience accessors for the baud rate,
// character size, parity, stop bits, the common control and local
// mode flags, and the modem control lines.
package termios

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	ErrInvalidBaud   = errors.New("unsupported baud rate")
	ErrInvalidCSize  = errors.New("invalid character size")
	ErrInvalidParity = errors.New("invalid parity")
	ErrInvalidStop   = errors.New("invalid stop bits")
	ErrUnknownFlag   = errors.New("unknown terminal flag")
	ErrInvalidMode   = errors.New("invalid mode string")
	ErrNotTerminal   = errors.New("not a terminal")
)

// Attrs mirrors the kernel termios control block. The embedded
// unix.Termios stays fully accessible for bits the accessors don't
// cover. An Attrs is plain memory: it only affects a terminal when
// written back with Setattr.
type Attrs struct {
	unix.Termios
}

// Getattr reads the current terminal attributes of fd.
func Getattr(fd int) (*Attrs, error) {
	raw, err := unix.IoctlGetTermios(fd, getTermios)
	if err != nil {
		return nil, err
	}
	return &Attrs{Termios: *raw}, nil
}

// Setattr writes the attributes back to fd, wholesale.
func Setattr(fd int, a *Attrs) error {
	return unix.IoctlSetTermios(fd, setTermios, &a.Termios)
}

// flagBits drives the by-name flag accessors: each entry names a bit
// in either the control word ('c') or the local mode word ('l').
var flagBits = map[string]struct {
	word byte
	mask tcflagT
}{
	"cread":  {'c', unix.CREAD},
	"clocal": {'c', unix.CLOCAL},
	"hupcl":  {'c', unix.HUPCL},
	"icanon": {'l', unix.ICANON},
	"echo":   {'l', unix.ECHO},
	"isig":   {'l', unix.ISIG},
}

// FlagNames returns the flag names GetFlag and SetFlag accept, in no
// particular order.
func FlagNames() []string {
	names := make([]string, 0, len(flagBits))
	for name := range flagBits {
		names = append(names, name)
	}
	return names
}

func (a *Attrs) flagWord(word byte) *tcflagT {
	if word == 'c' {
		return &a.Cflag
	}
	return &a.Lflag
}

// GetFlag reports the named flag. See FlagNames for the valid names.
func (a *Attrs) GetFlag(name string) (bool, error) {
	fb, ok := flagBits[name]
	if !ok {
		return false, fmt.Errorf("%s: %w", name, ErrUnknownFlag)
	}
	return *a.flagWord(fb.word)&fb.mask != 0, nil
}

// SetFlag sets or clears the named flag.
func (a *Attrs) SetFlag(name string, on bool) error {
	fb, ok := flagBits[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownFlag)
	}
	word := a.flagWord(fb.word)
	if on {
		*word |= fb.mask
	} else {
		*word &^= fb.mask
	}
	return nil
}

func (a *Attrs) getBit(word byte, mask tcflagT) bool {
	return *a.flagWord(word)&mask != 0
}

func (a *Attrs) setBit(word byte, mask tcflagT, on bool) {
	w := a.flagWord(word)
	if on {
		*w |= mask
	} else {
		*w &^= mask
	}
}

// accessor per flag, mirroring the flagBits table

func (a *Attrs) CRead() bool { return a.getBit('c', unix.CREAD) }

func (a *Attrs) SetCRead(on bool) { a.setBit('c', unix.CREAD, on) }

func (a *Attrs) CLocal() bool { return a.getBit('c', unix.CLOCAL) }

func (a *Attrs) SetCLocal(on bool) { a.setBit('c', unix.CLOCAL, on) }

func (a *Attrs) HupCl() bool { return a.getBit('c', unix.HUPCL) }

func (a *Attrs) SetHupCl(on bool) { a.setBit('c', unix.HUPCL, on) }

func (a *Attrs) ICanon() bool { return a.getBit('l', unix.ICANON) }

func (a *Attrs) SetICanon(on bool) { a.setBit('l', unix.ICANON, on) }

func (a *Attrs) Echo() bool { return a.getBit('l', unix.ECHO) }

func (a *Attrs) SetEcho(on bool) { a.setBit('l', unix.ECHO, on) }

func (a *Attrs) ISig() bool { return a.getBit('l', unix.ISIG) }

func (a *Attrs) SetISig(on bool) { a.setBit('l', unix.ISIG, on) }

// OBaud returns the output baud rate as a plain integer.
func (a *Attrs) OBaud() int { return a.getOBaud() }

// IBaud returns the input baud rate; when the terminal follows the
// output rate it returns that rate, like cfgetispeed(3).
func (a *Attrs) IBaud() int { return a.getIBaud() }

// SetOBaud sets the output baud rate.
func (a *Attrs) SetOBaud(rate int) error { return a.setOBaud(rate) }

// SetIBaud sets the input baud rate. Zero means follow the output
// rate.
func (a *Attrs) SetIBaud(rate int) error { return a.setIBaud(rate) }

// SetBaud sets both the input and output baud rate.
func (a *Attrs) SetBaud(rate int) error {
	if err := a.setOBaud(rate); err != nil {
		return err
	}
	return a.setIBaud(rate)
}

// CSize returns the character size in bits, 5 to 8.
func (a *Attrs) CSize() int {
	switch a.Cflag & unix.CSIZE {
	case unix.CS5:
		return 5
	case unix.CS6:
		return 6
	case unix.CS7:
		return 7
	default:
		return 8
	}
}

// SetCSize sets the character size in bits, 5 to 8.
func (a *Attrs) SetCSize(bits int) error {
	var cs tcflagT
	switch bits {
	case 5:
		cs = unix.CS5
	case 6:
		cs = unix.CS6
	case 7:
		cs = unix.CS7
	case 8:
		cs = unix.CS8
	default:
		return fmt.Errorf("%d: %w", bits, ErrInvalidCSize)
	}
	a.Cflag = a.Cflag&^unix.CSIZE | cs
	return nil
}

// Parity returns 'n', 'o' or 'e'.
func (a *Attrs) Parity() byte {
	if a.Cflag&unix.PARENB == 0 {
		return 'n'
	}
	if a.Cflag&unix.PARODD != 0 {
		return 'o'
	}
	return 'e'
}

// SetParity enables or disables parity generation and checking:
// 'n' none, 'o' odd, 'e' even.
func (a *Attrs) SetParity(parity byte) error {
	switch parity {
	case 'n':
		a.Cflag &^= unix.PARENB | unix.PARODD
	case 'o':
		a.Cflag |= unix.PARENB | unix.PARODD
	case 'e':
		a.Cflag |= unix.PARENB
		a.Cflag &^= unix.PARODD
	default:
		return fmt.Errorf("%q: %w", parity, ErrInvalidParity)
	}
	return nil
}

// StopBits returns 1 or 2.
func (a *Attrs) StopBits() int {
	if a.Cflag&unix.CSTOPB != 0 {
		return 2
	}
	return 1
}

// SetStopBits sets the number of stop bits, 1 or 2.
func (a *Attrs) SetStopBits(n int) error {
	switch n {
	case 1:
		a.Cflag &^= unix.CSTOPB
	case 2:
		a.Cflag |= unix.CSTOPB
	default:
		return fmt.Errorf("%d: %w", n, ErrInvalidStop)
	}
	return nil
}

// MakeRaw adjusts the attributes for raw mode: no input or output
// processing, no echo, no signals, 8 bit characters. cfmakeraw(3)
// semantics.
func (a *Attrs) MakeRaw() {
	a.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	a.Oflag &^= unix.OPOST
	a.Cflag &^= unix.CSIZE | unix.PARENB
	a.Cflag |= unix.CS8
	a.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	a.Cc[unix.VMIN] = 1
	a.Cc[unix.VTIME] = 0
}

// MakeCbreak turns off canonical mode and echo but leaves the rest
// of the input processing in place.
func (a *Attrs) MakeCbreak() {
	a.Lflag &^= unix.ECHO | unix.ICANON
	a.Cc[unix.VMIN] = 1
	a.Cc[unix.VTIME] = 0
}

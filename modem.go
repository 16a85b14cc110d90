// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

import (
	"golang.org/x/sys/unix"
)

// Modem control line accessors. Each call performs a fresh TIOCMGET;
// nothing is cached. A pseudo terminal has no modem, the kernel
// reports that as an error.

func (t *Term) modemBit(mask int) (bool, error) {
	status, err := unix.IoctlGetInt(t.Fd(), unix.TIOCMGET)
	if err != nil {
		return false, err
	}
	return status&mask != 0, nil
}

func (t *Term) setModemBit(mask int, on bool) error {
	request := uint(unix.TIOCMBIS)
	if !on {
		request = unix.TIOCMBIC
	}
	return unix.IoctlSetPointerInt(t.Fd(), request, mask)
}

// DTR reports the data-terminal-ready line.
func (t *Term) DTR() (bool, error) { return t.modemBit(unix.TIOCM_DTR) }

// RTS reports the request-to-send line.
func (t *Term) RTS() (bool, error) { return t.modemBit(unix.TIOCM_RTS) }

// CTS reports the clear-to-send line.
func (t *Term) CTS() (bool, error) { return t.modemBit(unix.TIOCM_CTS) }

// DSR reports the data-set-ready line.
func (t *Term) DSR() (bool, error) { return t.modemBit(unix.TIOCM_DSR) }

// CD reports the carrier-detect line.
func (t *Term) CD() (bool, error) { return t.modemBit(unix.TIOCM_CD) }

// RI reports the ring-indicator line.
func (t *Term) RI() (bool, error) { return t.modemBit(unix.TIOCM_RI) }

// SetDTR raises or drops the data-terminal-ready line.
func (t *Term) SetDTR(on bool) error { return t.setModemBit(unix.TIOCM_DTR, on) }

// SetRTS raises or drops the request-to-send line.
func (t *Term) SetRTS(on bool) error { return t.setModemBit(unix.TIOCM_RTS, on) }

// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !darwin && !freebsd && !netbsd && !openbsd && !windows
// +build !darwin,!freebsd,!netbsd,!openbsd,!windows

package termios

import (
	"golang.org/x/sys/unix"
)

const (
	getTermios = unix.TCGETS
	setTermios = unix.TCSETS
)

func drain(fd int) error {
	// tcdrain(3) is TCSBRK with a non-zero argument
	return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
}

func sendBreak(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCSBRKP, 0)
}

func flush(fd int, queue FlushQueue) error {
	var selector int
	switch queue {
	case FlushInput:
		selector = unix.TCIFLUSH
	case FlushOutput:
		selector = unix.TCOFLUSH
	default:
		selector = unix.TCIOFLUSH
	}
	return unix.IoctlSetInt(fd, unix.TCFLSH, selector)
}

func inputPending(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCINQ)
}

// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd || openbsd || netbsd
// +build darwin freebsd openbsd netbsd

package termios

import (
	"time"

	"golang.org/x/sys/unix"
)

const (
	getTermios = unix.TIOCGETA
	setTermios = unix.TIOCSETA
)

// TIOCFLUSH takes the kernel-level FREAD/FWRITE bits, not the
// TCIFLUSH selector of tcflush(3).
const (
	flushRead  = 0x1
	flushWrite = 0x2
)

func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TIOCDRAIN, 0)
}

func sendBreak(fd int) error {
	if err := unix.IoctlSetInt(fd, unix.TIOCSBRK, 0); err != nil {
		return err
	}
	time.Sleep(400 * time.Millisecond)
	return unix.IoctlSetInt(fd, unix.TIOCCBRK, 0)
}

func flush(fd int, queue FlushQueue) error {
	var selector int
	switch queue {
	case FlushInput:
		selector = flushRead
	case FlushOutput:
		selector = flushWrite
	default:
		selector = flushRead | flushWrite
	}
	return unix.IoctlSetPointerInt(fd, unix.TIOCFLUSH, selector)
}

func inputPending(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.FIONREAD)
}

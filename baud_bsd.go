// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd || openbsd || netbsd
// +build darwin freebsd openbsd netbsd

package termios

import (
	"fmt"
)

// The BSDs store the literal rate in the Ispeed/Ospeed fields, no
// token translation. The table below only guards against rates the
// tty subsystem would reject anyway.
var baudList = []int{
	0, 50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800,
	9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600,
}

// BaudRates returns the baud rates supported on this platform, in no
// particular order.
func BaudRates() []int {
	rates := make([]int, len(baudList))
	copy(rates, baudList)
	return rates
}

func supportedBaud(rate int) bool {
	for _, r := range baudList {
		if r == rate {
			return true
		}
	}
	return false
}

func (a *Attrs) getOBaud() int {
	return int(a.Ospeed)
}

func (a *Attrs) setOBaud(rate int) error {
	if !supportedBaud(rate) {
		return fmt.Errorf("%d: %w", rate, ErrInvalidBaud)
	}
	a.Ospeed = speedT(rate)
	return nil
}

func (a *Attrs) getIBaud() int {
	return int(a.Ispeed)
}

func (a *Attrs) setIBaud(rate int) error {
	if rate == 0 {
		// cfsetispeed(3): zero means follow the output rate
		a.Ispeed = a.Ospeed
		return nil
	}
	if !supportedBaud(rate) {
		return fmt.Errorf("%d: %w", rate, ErrInvalidBaud)
	}
	a.Ispeed = speedT(rate)
	return nil
}

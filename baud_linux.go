// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/sys/unix"
)

// On linux the baud rate lives in the CBAUD bits of c_cflag as an
// enumerated Bnnn token; the input rate occupies the same bits
// shifted into CIBAUD, token zero meaning "same as output".
const ibshift = 16

var baudTokens = map[int]tcflagT{
	0:       unix.B0,
	50:      unix.B50,
	75:      unix.B75,
	110:     unix.B110,
	134:     unix.B134,
	150:     unix.B150,
	200:     unix.B200,
	300:     unix.B300,
	600:     unix.B600,
	1200:    unix.B1200,
	1800:    unix.B1800,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	500000:  unix.B500000,
	576000:  unix.B576000,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1152000: unix.B1152000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	2500000: unix.B2500000,
	3000000: unix.B3000000,
	3500000: unix.B3500000,
	4000000: unix.B4000000,
}

var baudRates = make(map[tcflagT]int, len(baudTokens))

func init() {
	for rate, token := range baudTokens {
		baudRates[token] = rate
	}
}

// BaudRates returns the baud rates supported on this platform, in no
// particular order.
func BaudRates() []int {
	return maps.Keys(baudTokens)
}

func (a *Attrs) getOBaud() int {
	return baudRates[a.Cflag&unix.CBAUD]
}

func (a *Attrs) setOBaud(rate int) error {
	token, ok := baudTokens[rate]
	if !ok {
		return fmt.Errorf("%d: %w", rate, ErrInvalidBaud)
	}
	a.Cflag = a.Cflag&^unix.CBAUD | token
	a.Ospeed = token
	return nil
}

func (a *Attrs) getIBaud() int {
	token := (a.Cflag >> ibshift) & unix.CBAUD
	if token == unix.B0 {
		return a.getOBaud()
	}
	return baudRates[token]
}

func (a *Attrs) setIBaud(rate int) error {
	token, ok := baudTokens[rate]
	if !ok {
		return fmt.Errorf("%d: %w", rate, ErrInvalidBaud)
	}
	a.Cflag = a.Cflag&^(unix.CBAUD<<ibshift) | token<<ibshift
	a.Ispeed = token
	return nil
}

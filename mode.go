// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode formats the four serial line parameters as the usual
// comma-separated shorthand, such as "9600,8,n,1". The baud field
// reports the output rate.
func (a *Attrs) Mode() string {
	return fmt.Sprintf("%d,%d,%c,%d", a.OBaud(), a.CSize(), a.Parity(), a.StopBits())
}

// SetMode parses a "baud,csize,parity,stop" string and applies the
// four fields to the attributes. All four fields are required; any
// invalid token leaves the attributes partially updated, so apply a
// rejected mode to a scratch copy first when that matters.
func (a *Attrs) SetMode(mode string) error {
	fields := strings.Split(mode, ",")
	if len(fields) != 4 {
		return fmt.Errorf("%q: %w", mode, ErrInvalidMode)
	}

	baud, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("baud %q: %w", fields[0], ErrInvalidMode)
	}
	if err := a.SetBaud(baud); err != nil {
		return err
	}

	csize, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("csize %q: %w", fields[1], ErrInvalidMode)
	}
	if err := a.SetCSize(csize); err != nil {
		return err
	}

	if len(fields[2]) != 1 {
		return fmt.Errorf("parity %q: %w", fields[2], ErrInvalidMode)
	}
	if err := a.SetParity(fields[2][0]); err != nil {
		return err
	}

	stop, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("stop %q: %w", fields[3], ErrInvalidMode)
	}
	return a.SetStopBits(stop)
}

// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

import (
	"errors"
	"testing"
)

func TestModeRoundTrip(t *testing.T) {
	tc := []struct {
		label string
		mode  string
	}{
		{"classic 9600 8n1", "9600,8,n,1"},
		{"19200 8n1", "19200,8,n,1"},
		{"even parity", "19200,7,e,1"},
		{"odd parity two stop", "2400,6,o,2"},
		{"hangup rate", "0,5,n,1"},
		{"fast", "115200,8,n,1"},
	}

	for _, v := range tc {
		var a Attrs
		if err := a.SetMode(v.mode); err != nil {
			t.Errorf("#mode %q set %q got %s, expect nil\n", v.label, v.mode, err)
			continue
		}
		if got := a.Mode(); got != v.mode {
			t.Errorf("#mode %q got %q, expect %q\n", v.label, got, v.mode)
		}
	}
}

func TestSetModeReject(t *testing.T) {
	tc := []struct {
		label  string
		mode   string
		expect error
	}{
		{"empty", "", ErrInvalidMode},
		{"too few fields", "9600,8,n", ErrInvalidMode},
		{"too many fields", "9600,8,n,1,x", ErrInvalidMode},
		{"baud not a number", "fast,8,n,1", ErrInvalidMode},
		{"unsupported baud", "9601,8,n,1", ErrInvalidBaud},
		{"csize not a number", "9600,eight,n,1", ErrInvalidMode},
		{"csize out of range", "9600,9,n,1", ErrInvalidCSize},
		{"parity too long", "9600,8,no,1", ErrInvalidMode},
		{"parity unknown", "9600,8,x,1", ErrInvalidParity},
		{"stop not a number", "9600,8,n,one", ErrInvalidMode},
		{"stop out of range", "9600,8,n,3", ErrInvalidStop},
	}

	for _, v := range tc {
		var a Attrs
		err := a.SetMode(v.mode)
		if !errors.Is(err, v.expect) {
			t.Errorf("#mode %q set %q got %s, expect %s\n", v.label, v.mode, err, v.expect)
		}
	}
}

func TestModeDefault(t *testing.T) {
	// the zero attributes read back as hung up, 5 bits (CS5 is the
	// all-zero CSIZE pattern), no parity, one stop bit
	var a Attrs
	if got := a.Mode(); got != "0,5,n,1" {
		t.Errorf("#mode zero value got %q, expect %q\n", got, "0,5,n,1")
	}
}

// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
)

// openPtyPair returns a master/slave pair that is closed when the
// test finishes.
func openPtyPair(t *testing.T) (*os.File, *os.File, error) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, nil, err
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return ptmx, tty, nil
}

func openNull(t *testing.T) *os.File {
	t.Helper()
	nullFD, err := os.OpenFile("/dev/null", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("#test open %s failed, %s\n", "/dev/null", err)
	}
	t.Cleanup(func() { nullFD.Close() })
	return nullFD
}

func TestNew(t *testing.T) {
	_, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#new open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#new pty slave got %s, expect nil\n", err)
	}
	if term.Fd() != int(tty.Fd()) {
		t.Errorf("#new fd got %d, expect %d\n", term.Fd(), int(tty.Fd()))
	}
	if term.Name() != tty.Name() {
		t.Errorf("#new name got %q, expect %q\n", term.Name(), tty.Name())
	}

	// a null descriptor is not a terminal
	nullFD := openNull(t)
	if _, err = New(nullFD); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("#new null fd got %s, expect %s\n", err, ErrNotTerminal)
	}
}

func TestStdio(t *testing.T) {
	// under go test stdin, stdout and stderr are pipes or /dev/null,
	// none of them a terminal
	if _, err := Stdio(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("#stdio got %s, expect %s\n", err, ErrNotTerminal)
	}
}

func TestOpen(t *testing.T) {
	_, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#open open pty %s\n", err)
	}

	term, err := Open(tty.Name(), "19200,8,n,1")
	if err != nil {
		t.Fatalf("#open %s got %s, expect nil\n", tty.Name(), err)
	}
	defer term.Close()

	mode, err := term.GetMode()
	if err != nil {
		t.Fatalf("#open getMode %s\n", err)
	}
	if mode != "19200,8,n,1" {
		t.Errorf("#open mode got %q, expect %q\n", mode, "19200,8,n,1")
	}

	// an invalid mode closes the device again
	if _, err = Open(tty.Name(), "19200,8,x,1"); !errors.Is(err, ErrInvalidParity) {
		t.Errorf("#open bad mode got %s, expect %s\n", err, ErrInvalidParity)
	}

	// a non-terminal device is rejected
	if _, err = Open("/dev/null"); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("#open /dev/null got %s, expect %s\n", err, ErrNotTerminal)
	}

	// a missing device surfaces the open error
	if _, err = Open("/dev/no-such-tty"); err == nil {
		t.Errorf("#open missing device should report error, got nil\n")
	}
}

func TestModeRoundTripOnTTY(t *testing.T) {
	_, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#ttyMode open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#ttyMode new %s\n", err)
	}

	if err = term.SetMode("19200,8,n,1"); err != nil {
		t.Fatalf("#ttyMode setMode %s\n", err)
	}

	mode, err := term.GetMode()
	if err != nil {
		t.Fatalf("#ttyMode getMode %s\n", err)
	}
	if mode != "19200,8,n,1" {
		t.Errorf("#ttyMode got %q, expect %q\n", mode, "19200,8,n,1")
	}
}

func TestTermFlagsAndRaw(t *testing.T) {
	_, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#termFlags open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#termFlags new %s\n", err)
	}

	if err = term.SetFlag("echo", false); err != nil {
		t.Fatalf("#termFlags setFlag %s\n", err)
	}
	on, err := term.GetFlag("echo")
	if err != nil {
		t.Fatalf("#termFlags getFlag %s\n", err)
	}
	if on {
		t.Errorf("#termFlags echo got %t, expect %t\n", on, false)
	}

	if err = term.SetFlag("vaporware", true); !errors.Is(err, ErrUnknownFlag) {
		t.Errorf("#termFlags unknown flag got %s, expect %s\n", err, ErrUnknownFlag)
	}

	if err = term.SetRaw(); err != nil {
		t.Fatalf("#termFlags setRaw %s\n", err)
	}
	a, err := term.Getattr()
	if err != nil {
		t.Fatalf("#termFlags getattr %s\n", err)
	}
	if a.ICanon() || a.Echo() {
		t.Errorf("#termFlags raw mode still canonical, lflag=%x\n", a.Lflag)
	}

	if err = term.SetCbreak(); err != nil {
		t.Fatalf("#termFlags setCbreak %s\n", err)
	}
}

func TestTermConvenienceSetters(t *testing.T) {
	_, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#termSet open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#termSet new %s\n", err)
	}

	if err = term.SetBaud(9600); err != nil {
		t.Errorf("#termSet baud got %s, expect nil\n", err)
	}
	if err = term.SetCSize(7); err != nil {
		t.Errorf("#termSet csize got %s, expect nil\n", err)
	}
	if err = term.SetParity('e'); err != nil {
		t.Errorf("#termSet parity got %s, expect nil\n", err)
	}
	if err = term.SetStopBits(2); err != nil {
		t.Errorf("#termSet stop got %s, expect nil\n", err)
	}

	mode, err := term.GetMode()
	if err != nil {
		t.Fatalf("#termSet getMode %s\n", err)
	}
	if mode != "9600,7,e,2" {
		t.Errorf("#termSet mode got %q, expect %q\n", mode, "9600,7,e,2")
	}

	// a rejected value leaves the terminal untouched
	if err = term.SetCSize(9); !errors.Is(err, ErrInvalidCSize) {
		t.Errorf("#termSet csize 9 got %s, expect %s\n", err, ErrInvalidCSize)
	}
	mode, _ = term.GetMode()
	if mode != "9600,7,e,2" {
		t.Errorf("#termSet mode after reject got %q, expect %q\n", mode, "9600,7,e,2")
	}
}

func TestPendingAndFlush(t *testing.T) {
	ptmx, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#pending open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#pending new %s\n", err)
	}

	if _, err = ptmx.WriteString("hello\n"); err != nil {
		t.Fatalf("#pending write master %s\n", err)
	}

	// the line discipline moves the bytes over in write context,
	// give it a moment anyway
	var n int
	for i := 0; i < 50; i++ {
		n, err = term.Pending()
		if err != nil {
			t.Fatalf("#pending %s\n", err)
		}
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if n == 0 {
		t.Errorf("#pending got 0 bytes, expect input queued\n")
	}

	if err = term.Flush(FlushInput); err != nil {
		t.Fatalf("#pending flush %s\n", err)
	}
	n, err = term.Pending()
	if err != nil {
		t.Fatalf("#pending after flush %s\n", err)
	}
	if n != 0 {
		t.Errorf("#pending after flush got %d, expect 0\n", n)
	}

	if err = term.Flush(FlushOutput); err != nil {
		t.Errorf("#pending flush output got %s, expect nil\n", err)
	}
	if err = term.Flush(FlushBoth); err != nil {
		t.Errorf("#pending flush both got %s, expect nil\n", err)
	}
}

func TestDrain(t *testing.T) {
	_, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#drain open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#drain new %s\n", err)
	}
	if err = term.Drain(); err != nil {
		t.Errorf("#drain got %s, expect nil\n", err)
	}
}

func TestLineControlOnNull(t *testing.T) {
	// build the handle directly, New would reject the descriptor
	term := &Term{file: openNull(t)}

	if err := term.Drain(); err == nil {
		t.Errorf("#lineControl drain on null should report error, got nil\n")
	}
	if err := term.Flush(FlushBoth); err == nil {
		t.Errorf("#lineControl flush on null should report error, got nil\n")
	}
	if err := term.SendBreak(); err == nil {
		t.Errorf("#lineControl sendBreak on null should report error, got nil\n")
	}
}

func TestReadWrite(t *testing.T) {
	ptmx, tty, err := openPtyPair(t)
	if err != nil {
		t.Fatalf("#readWrite open pty %s\n", err)
	}

	term, err := New(tty)
	if err != nil {
		t.Fatalf("#readWrite new %s\n", err)
	}
	if err = term.SetRaw(); err != nil {
		t.Fatalf("#readWrite setRaw %s\n", err)
	}

	if _, err = ptmx.WriteString("ping"); err != nil {
		t.Fatalf("#readWrite write master %s\n", err)
	}
	buf := make([]byte, 16)
	n, err := term.Read(buf)
	if err != nil {
		t.Fatalf("#readWrite read %s\n", err)
	}
	if string(buf[:n]) != "ping" {
		t.Errorf("#readWrite got %q, expect %q\n", buf[:n], "ping")
	}

	if _, err = term.Write([]byte("pong")); err != nil {
		t.Fatalf("#readWrite write %s\n", err)
	}
	n, err = ptmx.Read(buf)
	if err != nil {
		t.Fatalf("#readWrite read master %s\n", err)
	}
	if string(buf[:n]) != "pong" {
		t.Errorf("#readWrite got %q, expect %q\n", buf[:n], "pong")
	}
}

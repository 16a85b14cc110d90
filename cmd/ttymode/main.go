// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/creack/pty"
	"github.com/ericwq/termios"
	"github.com/ericwq/termios/util"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	_PACKAGE_STRING = "termios"
	_COMMAND_NAME   = "ttymode"
)

var (
	BuildVersion = "0.1.0" // ready for ldflags

	usage = `Usage:
  ` + _COMMAND_NAME + ` [--version] [--help]
  ` + _COMMAND_NAME + ` [--device DEV | --pty] [--set MODE] [--flag NAME=STATE]
  ` + _COMMAND_NAME + ` [--device DEV] [--modem | --watch | --speeds]
Options:
  -h, --help     print this message
  -v, --version  print version information
  -d, --device   terminal device to use (default: first tty of stdin, stdout, stderr)
      --pty      run against a freshly allocated pseudo terminal pair
  -s, --set      apply a mode string, e.g. "19200,8,n,1"
  -f, --flag     set a named flag, e.g. "icanon=off"
  -m, --modem    report the modem control lines
  -w, --watch    poll the modem control lines until interrupted
      --speeds   list the supported baud rates
      --verbose  verbose output mode
`
)

type Config struct {
	verbose int
	version bool
	device  string
	usePty  bool
	mode    string
	flagArg string
	modem   bool
	watch   bool
	speeds  bool
}

func printVersion() {
	fmt.Printf("%s (%s) [build %s]\n\n", _COMMAND_NAME, _PACKAGE_STRING, BuildVersion)
	fmt.Printf(`Copyright (c) 2022~2024 wangqi ericwq057[AT]qq[dot]com
This is free software: you are free to change and redistribute it.
There is NO WARRANTY, to the extent permitted by law.

inspect and set terminal modes
`)
}

func printUsage(hint, usage string) {
	if hint != "" {
		fmt.Printf("Hints: %s\n%s", hint, usage)
	} else {
		fmt.Printf("%s", usage)
	}
}

func parseFlags(progname string, args []string) (config *Config, output string, err error) {
	// https://eli.thegreenplace.net/2020/testing-flag-parsing-in-go-programs/
	flagSet := flag.NewFlagSet(progname, flag.ContinueOnError)
	var buf bytes.Buffer
	flagSet.SetOutput(&buf)

	var conf Config

	flagSet.IntVar(&conf.verbose, "verbose", 0, "verbose output mode")

	flagSet.BoolVar(&conf.version, "version", false, "print version information")
	flagSet.BoolVar(&conf.version, "v", false, "print version information")

	flagSet.StringVar(&conf.device, "device", "", "terminal device")
	flagSet.StringVar(&conf.device, "d", "", "terminal device")

	flagSet.BoolVar(&conf.usePty, "pty", false, "use a fresh pseudo terminal pair")

	flagSet.StringVar(&conf.mode, "set", "", "mode string to apply")
	flagSet.StringVar(&conf.mode, "s", "", "mode string to apply")

	flagSet.StringVar(&conf.flagArg, "flag", "", "named flag to set, NAME=STATE")
	flagSet.StringVar(&conf.flagArg, "f", "", "named flag to set, NAME=STATE")

	flagSet.BoolVar(&conf.modem, "modem", false, "report the modem control lines")
	flagSet.BoolVar(&conf.modem, "m", false, "report the modem control lines")

	flagSet.BoolVar(&conf.watch, "watch", false, "poll the modem control lines")
	flagSet.BoolVar(&conf.watch, "w", false, "poll the modem control lines")

	flagSet.BoolVar(&conf.speeds, "speeds", false, "list the supported baud rates")

	err = flagSet.Parse(args)
	if err != nil {
		return nil, buf.String(), err
	}
	return &conf, buf.String(), nil
}

// openTerm picks the terminal the flags ask for. The returned
// cleanup closes whatever openTerm opened itself.
func openTerm(conf *Config) (*termios.Term, func(), error) {
	if conf.usePty {
		ptmx, tty, err := pty.Open()
		if err != nil {
			return nil, nil, err
		}
		t, err := termios.New(tty)
		if err != nil {
			tty.Close()
			ptmx.Close()
			return nil, nil, err
		}
		return t, func() {
			tty.Close()
			ptmx.Close()
		}, nil
	}

	if conf.device != "" {
		t, err := termios.Open(conf.device)
		if err != nil {
			return nil, nil, err
		}
		return t, func() { t.Close() }, nil
	}

	t, err := termios.Stdio()
	if err != nil {
		return nil, nil, err
	}
	return t, func() {}, nil
}

func showMode(t *termios.Term) error {
	mode, err := t.GetMode()
	if err != nil {
		return err
	}

	a, err := t.Getattr()
	if err != nil {
		return err
	}

	names := termios.FlagNames()
	slices.Sort(names)

	states := make([]string, 0, len(names))
	for _, name := range names {
		on, _ := a.GetFlag(name)
		if on {
			states = append(states, name)
		} else {
			states = append(states, "-"+name)
		}
	}

	fmt.Printf("%s: %s %s\n", t.Name(), mode, strings.Join(states, " "))
	return nil
}

func applyFlag(t *termios.Term, arg string) error {
	name, state, found := strings.Cut(arg, "=")
	if !found {
		return fmt.Errorf("flag argument %q is not NAME=STATE", arg)
	}
	var on bool
	switch state {
	case "on", "true", "1":
		on = true
	case "off", "false", "0":
		on = false
	default:
		return fmt.Errorf("flag state %q is not on or off", state)
	}
	return t.SetFlag(name, on)
}

func modemState(t *termios.Term) (string, error) {
	lines := []struct {
		name string
		get  func() (bool, error)
	}{
		{"dtr", t.DTR}, {"rts", t.RTS}, {"cts", t.CTS},
		{"dsr", t.DSR}, {"cd", t.CD}, {"ri", t.RI},
	}

	var b strings.Builder
	for i, line := range lines {
		on, err := line.get()
		if err != nil {
			return "", fmt.Errorf("%s: %w", line.name, err)
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if on {
			fmt.Fprintf(&b, "%s=1", line.name)
		} else {
			fmt.Fprintf(&b, "%s=0", line.name)
		}
	}
	return b.String(), nil
}

func showModem(t *termios.Term) error {
	state, err := modemState(t)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", t.Name(), state)
	return nil
}

// watchModem polls the modem lines and prints every change until the
// context is canceled. One goroutine polls, one prints.
func watchModem(ctx context.Context, t *termios.Term, interval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)
	changes := make(chan string, 1)

	g.Go(func() error {
		defer close(changes)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := ""
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				state, err := modemState(t)
				if err != nil {
					return err
				}
				if state != last {
					changes <- state
					last = state
				}
			}
		}
	})

	g.Go(func() error {
		for state := range changes {
			fmt.Printf("%s: %s\n", t.Name(), state)
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func listSpeeds() {
	rates := termios.BaudRates()
	slices.Sort(rates)
	for _, rate := range rates {
		fmt.Println(rate)
	}
}

func main() {
	conf, _, err := parseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage("", usage)
		} else {
			printUsage(err.Error(), usage)
		}
		return
	}

	if conf.version {
		printVersion()
		return
	}

	if conf.verbose > 0 {
		util.Logger.SetLevel(slog.LevelDebug)
	}

	if conf.speeds {
		listSpeeds()
		return
	}

	t, cleanup, err := openTerm(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", _COMMAND_NAME, err)
		os.Exit(1)
	}
	defer cleanup()
	util.Logger.Debug("open terminal", "device", t.Name())

	switch {
	case conf.mode != "":
		err = t.SetMode(conf.mode)
	case conf.flagArg != "":
		err = applyFlag(t, conf.flagArg)
	case conf.modem:
		err = showModem(t)
	case conf.watch:
		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		err = watchModem(ctx, t, 500*time.Millisecond)
	default:
		err = showMode(t)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", _COMMAND_NAME, err)
		os.Exit(1)
	}
}

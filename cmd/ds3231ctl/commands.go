package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"

	"github.com/ajanata/drivers/rtc"
)

var errUsage = errors.New("usage")

const usage = `commands:
  show                              print the time as dd/m/y h:mm:ss
  get                               print the time as yymmddhhnnssww
  field <y|m|d|h|n|s|w>             print one field as two digits
  passed <hhmm|yymmddhhmm>          print Y if the trigger time has passed, N otherwise
  diff <hh> <mm>                    print the time to (hh-mm-ss) or since (hh=mm=ss) hh:mm
  bump                              add a minute, unless the minute is 58 or 59
  zero                              set the seconds to zero
  set <yy> <mo> <dd> <hh> <mi> <ss> <dow>
                                    set the time, dow 1 is Sunday
  sync                              set the time from the host clock
  shell                             read commands from stdin
  publish                           publish the time over MQTT
`

type app struct {
	clock *rtc.Clock
	cfg   *Config
	log   *logrus.Logger
	in    io.Reader
	out   io.Writer
	now   func() time.Time
	// dial connects to the MQTT broker; replaced in tests.
	dial  func(MQTTConfig) (publishFunc, func(), error)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "show":
		return a.clock.Display()
	case "get":
		s, err := a.clock.FixedString()
		if err != nil {
			return err
		}
		return a.println(s)
	case "field":
		if len(args) != 1 || len(args[0]) != 1 {
			return errUsage
		}
		d, err := a.clock.Field(rtc.Field(args[0][0]))
		if err != nil {
			return err
		}
		return a.println(string(d[:]))
	case "passed":
		if len(args) != 1 {
			return errUsage
		}
		trigger, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("trigger %q: %w", args[0], err)
		}
		passed, err := a.clock.HasTimePassed(trigger)
		if err != nil {
			return err
		}
		if passed {
			return a.println("Y")
		}
		return a.println("N")
	case "diff":
		if len(args) != 2 {
			return errUsage
		}
		d, err := a.diff(args[0], args[1])
		if err != nil {
			return err
		}
		return a.println(d)
	case "bump":
		return a.logged("bump", a.clock.BumpMinute())
	case "zero":
		return a.logged("zero", a.clock.ZeroSeconds())
	case "set":
		s, err := parseSnapshot(args)
		if err != nil {
			return err
		}
		return a.logged("set", a.clock.SetTime(s))
	case "sync":
		return a.logged("sync", a.clock.SetTime(rtc.FromTime(a.now().UTC())))
	case "shell":
		return a.shell(ctx)
	case "publish":
		return a.publish(ctx)
	case "help":
		_, err := io.WriteString(a.out, usage)
		return err
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func (a *app) println(s string) error {
	_, err := fmt.Fprintln(a.out, s)
	return err
}

func (a *app) logged(op string, err error) error {
	if err != nil {
		return err
	}
	a.log.WithField("op", op).Info("clock adjusted")
	return nil
}

// diff accepts whole or fractional hours and minutes; fractions are dropped.
func (a *app) diff(hh, mm string) (string, error) {
	if strings.ContainsRune(hh+mm, '.') {
		h, err := strconv.ParseFloat(hh, 64)
		if err != nil {
			return "", fmt.Errorf("hour %q: %w", hh, err)
		}
		m, err := strconv.ParseFloat(mm, 64)
		if err != nil {
			return "", fmt.Errorf("minute %q: %w", mm, err)
		}
		return a.clock.TimeDifferenceFloats([2]float64{h, m})
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return "", fmt.Errorf("hour %q: %w", hh, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return "", fmt.Errorf("minute %q: %w", mm, err)
	}
	return a.clock.TimeDifferenceInts([2]int{h, m})
}

func parseSnapshot(args []string) (rtc.Snapshot, error) {
	if len(args) != 7 {
		return rtc.Snapshot{}, errUsage
	}
	var v [7]uint8
	for i, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return rtc.Snapshot{}, fmt.Errorf("set argument %d %q: %w", i+1, arg, err)
		}
		v[i] = uint8(n)
	}
	return rtc.Snapshot{
		Year:       v[0],
		Month:      v[1],
		DayOfMonth: v[2],
		Hour:       v[3],
		Minute:     v[4],
		Second:     v[5],
		DayOfWeek:  v[6],
	}, nil
}

// shell runs one command per input line until EOF, "quit", "exit" or cancellation of ctx. Failed commands are
// reported and the shell carries on.
func (a *app) shell(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	done := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(a.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		done <- sc.Err()
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			return err
		case line = <-lines:
		}
		args, err := shlex.Split(line)
		if err != nil {
			a.log.WithError(err).Warn("cannot parse line")
			continue
		}
		if len(args) == 0 || strings.HasPrefix(args[0], "#") {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		case "shell":
			a.log.Warn("already in a shell")
			continue
		}
		if err := a.run(ctx, args); err != nil {
			a.log.WithError(err).WithField("command", args[0]).Error("command failed")
			if errors.Is(err, errUsage) {
				if _, werr := io.WriteString(a.out, usage); werr != nil {
					return werr
				}
			}
		}
	}
}

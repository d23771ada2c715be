// Package rtc implements the time service shared by the real-time clock drivers: formatted snapshots, trigger
// checks, small adjustments and time-of-day differences. Every operation reads a fresh snapshot from the chip through
// a Transport; nothing is cached between calls.
//
// By default the service is permissive: out-of-range values are written as given and unknown field selectors
// report "99". Strict mode turns both into errors.
package rtc

import (
	"fmt"
	"io"
	"os"
)

// Transport reads and writes the seven time registers of a clock chip. It is implemented by ds3231.Device and
// pcf8523.Device.
type Transport interface {
	ReadTime() (Snapshot, error)
	WriteTime(s Snapshot) error
}

type Config struct {
	// Output receives Display lines. Defaults to os.Stdout.
	Output io.Writer
	// Strict rejects out-of-range values and unknown field selectors instead of passing them through.
	Strict bool
}

// Clock is the time service. It performs no locking: callers serialize access to the chip.
type Clock struct {
	t      Transport
	out    io.Writer
	strict bool
}

func New(t Transport) *Clock {
	return &Clock{
		t:   t,
		out: os.Stdout,
	}
}

func (c *Clock) Configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	c.out = cfg.Output
	c.strict = cfg.Strict
}

// Snapshot reads the current time registers.
func (c *Clock) Snapshot() (Snapshot, error) {
	s, err := c.t.ReadTime()
	if err != nil {
		return Snapshot{}, err
	}
	if c.strict {
		if err := s.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("rtc: chip returned invalid time: %w", err)
		}
	}
	return s, nil
}

// SetTime writes s to the chip. In strict mode s is validated first.
func (c *Clock) SetTime(s Snapshot) error {
	if c.strict {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return c.t.WriteTime(s)
}

// Display writes the current time as one "dd/m/y h:mm:ss" line to the configured output.
func (c *Clock) Display() error {
	s, err := c.Snapshot()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, s.String())
	return err
}

// HasTimePassed reports whether trigger, given as hhmm or yymmddhhmm, is at or before the current time.
func (c *Clock) HasTimePassed(trigger uint64) (bool, error) {
	s, err := c.Snapshot()
	if err != nil {
		return false, err
	}
	return TimePassed(s, trigger), nil
}

// BumpMinute advances the clock by one minute for fine adjustment. Minutes 58 and 59 are left alone so the
// adjustment never rolls over into the hour. The snapshot is written back either way.
func (c *Clock) BumpMinute() error {
	s, err := c.Snapshot()
	if err != nil {
		return err
	}
	if s.Minute < 58 {
		s.Minute++
	}
	return c.SetTime(s)
}

// ZeroSeconds resets the seconds register, used to align sub-minute drift.
func (c *Clock) ZeroSeconds() error {
	s, err := c.Snapshot()
	if err != nil {
		return err
	}
	s.Second = 0
	return c.SetTime(s)
}

// Field returns the two digit characters of the selected field of the current time.
func (c *Clock) Field(f Field) ([2]byte, error) {
	if _, ok := (Snapshot{}).value(f); !ok && c.strict {
		return [2]byte{}, fmt.Errorf("%w %q", ErrUnknownField, rune(f))
	}
	s, err := c.Snapshot()
	if err != nil {
		return [2]byte{}, err
	}
	return EncodeField(s, f), nil
}

// FixedString returns the current time as "yymmddhhnnssww".
func (c *Clock) FixedString() (string, error) {
	s, err := c.Snapshot()
	if err != nil {
		return "", err
	}
	return s.FixedString(), nil
}

// TimeDifference returns how far the current time of day is from hour:minute, formatted as by Difference.
func (c *Clock) TimeDifference(hour, minute int) (string, error) {
	if c.strict {
		if hour < 0 || hour > 23 {
			return "", &RangeError{Field: FieldHour, Value: hour}
		}
		if minute < 0 || minute > 59 {
			return "", &RangeError{Field: FieldMinute, Value: minute}
		}
	}
	s, err := c.Snapshot()
	if err != nil {
		return "", err
	}
	return Difference(s, targetSeconds(int64(hour), int64(minute))), nil
}

// TimeDifferenceInts is TimeDifference with the target given as {hour, minute}.
func (c *Clock) TimeDifferenceInts(hhmm [2]int) (string, error) {
	return c.TimeDifference(hhmm[0], hhmm[1])
}

// TimeDifferenceFloats is TimeDifference with the target given as {hour, minute}. Fractions are truncated.
func (c *Clock) TimeDifferenceFloats(hhmm [2]float64) (string, error) {
	return c.TimeDifference(int(hhmm[0]), int(hhmm[1]))
}

// Package ds3231 implements a driver for the DS3231 real-time clock, providing read-write of the current time. Alarms,
// the square-wave output and the temperature sensor are not implemented.
//
// Datasheet: https://datasheets.maximintegrated.com/en/ds/DS3231.pdf
package ds3231

import (
	"fmt"
	"time"

	"github.com/ajanata/drivers"
	"github.com/ajanata/drivers/internal/bcd"
	"github.com/ajanata/drivers/rtc"
)

type Device struct {
	bus     drivers.I2C
	Address uint8
}

type Config struct {
	Address uint8
}

var _ rtc.Transport = (*Device)(nil)

func New(i2c drivers.I2C) Device {
	return Device{
		bus:     i2c,
		Address: Address,
	}
}

func (d *Device) Configure(c Config) {
	if c.Address == 0 {
		c.Address = Address
	}
	d.Address = c.Address
}

// WriteTime stores s in the timekeeping registers in a single transaction. Values are written as given.
func (d *Device) WriteTime(s rtc.Snapshot) error {
	buf := []byte{
		bcd.Encode(s.Second),
		bcd.Encode(s.Minute),
		bcd.Encode(s.Hour),
		bcd.Encode(s.DayOfWeek),
		bcd.Encode(s.DayOfMonth),
		bcd.Encode(s.Month),
		bcd.Encode(s.Year),
	}
	if err := d.bus.WriteRegister(d.Address, Seconds, buf); err != nil {
		return fmt.Errorf("ds3231: write time: %w", err)
	}
	return nil
}

// ReadTime fetches the timekeeping registers. The register pointer is set in one transaction and the seven bytes are
// read in a second one. The clock-halt bit and the 12/24 hour mode bits are ignored; the chip is assumed to run in
// 24 hour mode.
func (d *Device) ReadTime() (rtc.Snapshot, error) {
	if err := d.bus.Tx(uint16(d.Address), []byte{Seconds}, nil); err != nil {
		return rtc.Snapshot{}, fmt.Errorf("ds3231: select time registers: %w", err)
	}
	buf := [7]byte{}
	if err := d.bus.Tx(uint16(d.Address), nil, buf[:]); err != nil {
		return rtc.Snapshot{}, fmt.Errorf("ds3231: read time: %w", err)
	}
	return rtc.Snapshot{
		Second:     bcd.Decode(buf[0] &^ clockHalt),
		Minute:     bcd.Decode(buf[1]),
		Hour:       bcd.Decode(buf[2] &^ hourModeBit),
		DayOfWeek:  bcd.Decode(buf[3]),
		DayOfMonth: bcd.Decode(buf[4]),
		Month:      bcd.Decode(buf[5]),
		Year:       bcd.Decode(buf[6]),
	}, nil
}

// LostPower reports whether the oscillator has stopped since the time was last set, which means the time registers
// cannot be trusted.
func (d *Device) LostPower() (bool, error) {
	buf := [1]byte{}
	if err := d.bus.ReadRegister(d.Address, Status, buf[:]); err != nil {
		return false, fmt.Errorf("ds3231: read status: %w", err)
	}
	return buf[0]&oscStopped != 0, nil
}

// Set writes t, interpreted in its own location, and clears the oscillator-stopped flag.
func (d *Device) Set(t time.Time) error {
	if err := d.WriteTime(rtc.FromTime(t)); err != nil {
		return err
	}
	buf := [1]byte{}
	if err := d.bus.ReadRegister(d.Address, Status, buf[:]); err != nil {
		return fmt.Errorf("ds3231: read status: %w", err)
	}
	buf[0] &^= oscStopped
	if err := d.bus.WriteRegister(d.Address, Status, buf[:]); err != nil {
		return fmt.Errorf("ds3231: clear oscillator flag: %w", err)
	}
	return nil
}

// Now reads the current time as UTC in the 2000s.
func (d *Device) Now() (time.Time, error) {
	s, err := d.ReadTime()
	if err != nil {
		return time.Time{}, err
	}
	return s.Time(), nil
}

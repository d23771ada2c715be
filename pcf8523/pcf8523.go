// Package pcf8523 implements a driver for the PCF8523 Real-Time Clock (RTC), providing basic read-write of the current
// time only. The PCF8523 itself supports alarms, clock drift compensation, and timer interrupts, but those features
// remain unimplemented.
//
// Device implements rtc.Transport, so the rtc time service works on this chip as well.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCF8523.pdf
package pcf8523

import (
	"time"

	"github.com/ajanata/drivers"
	"github.com/ajanata/drivers/internal/bcd"
	"github.com/ajanata/drivers/rtc"
)

type Device struct {
	bus     drivers.I2C
	Address uint8
}

var _ rtc.Transport = (*Device)(nil)

func New(i2c drivers.I2C) Device {
	return Device{
		bus:     i2c,
		Address: Address,
	}
}

func (d *Device) LostPower() (bool, error) {
	buf := [1]byte{}
	err := d.bus.ReadRegister(d.Address, Status, buf[:])
	if err != nil {
		return false, err
	}
	return buf[0]&0xF0 == 0xF0, nil
}

func (d *Device) Initialized() (bool, error) {
	buf := [1]byte{}
	err := d.bus.ReadRegister(d.Address, Control3, buf[:])
	if err != nil {
		return false, err
	}
	return buf[0]&0xE0 != 0xE0, nil
}

// WriteTime makes sure the oscillator runs in 24 hour mode and stores s. Weekday 1-7 (Sunday first) is stored as the
// chip's 0-6.
func (d *Device) WriteTime(s rtc.Snapshot) error {
	rbuf := [1]byte{}
	err := d.bus.ReadRegister(d.Address, Control1, rbuf[:])
	if err != nil {
		return err
	}
	// do not change cap_sel or second/alarm/correction interrupts
	// ensure RTC is running and 24-hour mode is selected
	rbuf[0] &= 0b1000_0111
	err = d.bus.WriteRegister(d.Address, Control1, rbuf[:])
	if err != nil {
		return err
	}

	buf := []byte{
		bcd.Encode(s.Second),
		bcd.Encode(s.Minute),
		bcd.Encode(s.Hour),
		bcd.Encode(s.DayOfMonth),
		bcd.Encode(s.DayOfWeek - 1),
		bcd.Encode(s.Month),
		bcd.Encode(s.Year),
	}
	return d.bus.WriteRegister(d.Address, Time, buf)
}

func (d *Device) ReadTime() (rtc.Snapshot, error) {
	buf := [7]byte{}
	err := d.bus.ReadRegister(d.Address, Time, buf[:])
	if err != nil {
		return rtc.Snapshot{}, err
	}
	for i := range buf {
		buf[i] &= timeMasks[i]
	}
	return rtc.Snapshot{
		Second:     bcd.Decode(buf[0]),
		Minute:     bcd.Decode(buf[1]),
		Hour:       bcd.Decode(buf[2]),
		DayOfMonth: bcd.Decode(buf[3]),
		DayOfWeek:  bcd.Decode(buf[4]) + 1,
		Month:      bcd.Decode(buf[5]),
		Year:       bcd.Decode(buf[6]),
	}, nil
}

func (d *Device) Set(t time.Time) error {
	if err := d.WriteTime(rtc.FromTime(t)); err != nil {
		return err
	}
	// turn on battery switchover mode, turn off battery-related interrupts
	return d.bus.WriteRegister(d.Address, Control3, []byte{0})
}

func (d *Device) Now() (time.Time, error) {
	s, err := d.ReadTime()
	if err != nil {
		return time.Time{}, err
	}
	return s.Time(), nil
}

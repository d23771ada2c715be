package ds3231

import (
	"bytes"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/ajanata/drivers/rtc"
	"github.com/ajanata/drivers/tester"
)

func newDevice() (Device, *tester.I2CBus, *tester.I2CDevice) {
	bus := tester.NewI2CBus()
	chip := tester.NewI2CDevice(Address)
	bus.AddDevice(chip)
	return New(bus), bus, chip
}

func setRegisters(chip *tester.I2CDevice, regs ...uint8) {
	copy(chip.Registers[Seconds:], regs)
}

func TestWriteTime(t *testing.T) {
	c := qt.New(t)
	dev, bus, chip := newDevice()

	err := dev.WriteTime(rtc.Snapshot{Year: 16, Month: 1, DayOfMonth: 5, Hour: 9, Minute: 3, Second: 0, DayOfWeek: 2})
	c.Assert(err, qt.IsNil)

	c.Assert(bus.Log, qt.HasLen, 1)
	c.Assert(bus.Log[0].Addr, qt.Equals, uint16(0x68))
	c.Assert(bus.Log[0].W, qt.DeepEquals, []byte{0x00, 0x00, 0x03, 0x09, 0x02, 0x05, 0x01, 0x16})
	c.Assert(chip.Registers[Year], qt.Equals, uint8(0x16))
}

func TestReadTime(t *testing.T) {
	c := qt.New(t)
	dev, bus, chip := newDevice()
	setRegisters(chip, 0x45, 0x59, 0x23, 0x07, 0x31, 0x12, 0x99)

	s, err := dev.ReadTime()
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, rtc.Snapshot{Year: 99, Month: 12, DayOfMonth: 31, Hour: 23, Minute: 59, Second: 45, DayOfWeek: 7})

	// pointer write and the 7 byte read are separate transactions
	c.Assert(bus.Log, qt.HasLen, 2)
	c.Assert(bus.Log[0].W, qt.DeepEquals, []byte{Seconds})
	c.Assert(bus.Log[0].R, qt.HasLen, 0)
	c.Assert(bus.Log[1].W, qt.HasLen, 0)
	c.Assert(bus.Log[1].R, qt.HasLen, 7)
}

func TestReadTimeMasks(t *testing.T) {
	c := qt.New(t)
	dev, _, chip := newDevice()
	// clock halt set on seconds, 12 hour mode bits set on hours
	setRegisters(chip, 0x80|0x30, 0x15, 0xC0|0x12, 0x01, 0x01, 0x01, 0x20)

	s, err := dev.ReadTime()
	c.Assert(err, qt.IsNil)
	c.Assert(s.Second, qt.Equals, uint8(30))
	c.Assert(s.Hour, qt.Equals, uint8(12))
	c.Assert(s.Minute, qt.Equals, uint8(15))
}

func TestRoundTrip(t *testing.T) {
	c := qt.New(t)
	dev, _, _ := newDevice()
	want := rtc.Snapshot{Year: 23, Month: 12, DayOfMonth: 25, Hour: 12, Minute: 30, Second: 1, DayOfWeek: 2}
	c.Assert(dev.WriteTime(want), qt.IsNil)
	got, err := dev.ReadTime()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, want)
}

func TestBusError(t *testing.T) {
	c := qt.New(t)
	dev, _, chip := newDevice()
	chip.Err = errors.New("nack")

	_, err := dev.ReadTime()
	c.Assert(err, qt.ErrorMatches, "ds3231: select time registers: nack")
	err = dev.WriteTime(rtc.Snapshot{})
	c.Assert(err, qt.ErrorMatches, "ds3231: write time: nack")
}

func TestBusErrorOnRead(t *testing.T) {
	c := qt.New(t)
	dev, _, chip := newDevice()
	chip.Err = errors.New("nack")
	chip.ErrAfter = 1

	_, err := dev.ReadTime()
	c.Assert(err, qt.ErrorMatches, "ds3231: read time: nack")
	c.Assert(errors.Is(err, chip.Err), qt.IsTrue)
}

func TestStatusErrors(t *testing.T) {
	c := qt.New(t)
	dev, _, chip := newDevice()
	chip.Err = errors.New("nack")

	_, err := dev.LostPower()
	c.Assert(err, qt.ErrorMatches, "ds3231: read status: nack")

	// time write succeeds, status read fails
	chip.ErrAfter = 1
	err = dev.Set(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC))
	c.Assert(err, qt.ErrorMatches, "ds3231: read status: nack")

	// time write and status read succeed, status write fails
	chip.ErrAfter = 3
	err = dev.Set(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC))
	c.Assert(err, qt.ErrorMatches, "ds3231: clear oscillator flag: nack")
}

func TestConfigureAddress(t *testing.T) {
	c := qt.New(t)
	bus := tester.NewI2CBus()
	bus.AddDevice(tester.NewI2CDevice(0x57))
	dev := New(bus)
	dev.Configure(Config{Address: 0x57})
	c.Assert(dev.WriteTime(rtc.Snapshot{}), qt.IsNil)
	c.Assert(bus.Log[0].Addr, qt.Equals, uint16(0x57))

	dev.Configure(Config{})
	c.Assert(dev.Address, qt.Equals, uint8(Address))
}

func TestSetAndNow(t *testing.T) {
	c := qt.New(t)
	dev, _, chip := newDevice()
	chip.Registers[Status] = 0x88

	lost, err := dev.LostPower()
	c.Assert(err, qt.IsNil)
	c.Assert(lost, qt.IsTrue)

	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	c.Assert(dev.Set(want), qt.IsNil)
	c.Assert(chip.Registers[Status], qt.Equals, uint8(0x08))
	// Monday is day 2 counting from Sunday
	c.Assert(chip.Registers[DayOfWeek], qt.Equals, uint8(0x02))

	lost, err = dev.LostPower()
	c.Assert(err, qt.IsNil)
	c.Assert(lost, qt.IsFalse)

	got, err := dev.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, want)
}

// The time service on top of the fake chip, end to end.
func TestClockService(t *testing.T) {
	c := qt.New(t)
	dev, _, chip := newDevice()
	setRegisters(chip, 0x00, 0x30, 0x05, 0x02, 0x05, 0x01, 0x16)

	out := &bytes.Buffer{}
	clk := rtc.New(&dev)
	clk.Configure(rtc.Config{Output: out})

	c.Assert(clk.Display(), qt.IsNil)
	c.Assert(out.String(), qt.Equals, "05/1/16 5:30:00\n")

	diff, err := clk.TimeDifference(6, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(diff, qt.Equals, "00-30-00")

	s, err := clk.FixedString()
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, "16010505300002")

	chip.Registers[Minutes] = 0x57
	c.Assert(clk.BumpMinute(), qt.IsNil)
	c.Assert(chip.Registers[Minutes], qt.Equals, uint8(0x58))
	c.Assert(clk.BumpMinute(), qt.IsNil)
	c.Assert(chip.Registers[Minutes], qt.Equals, uint8(0x58))

	chip.Registers[Seconds] = 0x42
	c.Assert(clk.ZeroSeconds(), qt.IsNil)
	c.Assert(chip.Registers[Seconds], qt.Equals, uint8(0x00))
}

package tester

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRegisterPointer(t *testing.T) {
	c := qt.New(t)
	bus := NewI2CBus()
	dev := NewI2CDevice(0x68)
	bus.AddDevice(dev)

	err := bus.WriteRegister(0x68, 0x02, []byte{0xAA, 0xBB})
	c.Assert(err, qt.IsNil)
	c.Assert(dev.Registers[2], qt.Equals, uint8(0xAA))
	c.Assert(dev.Registers[3], qt.Equals, uint8(0xBB))

	// pointer-only write followed by a bare read
	c.Assert(bus.Tx(0x68, []byte{0x02}, nil), qt.IsNil)
	buf := make([]byte, 2)
	c.Assert(bus.Tx(0x68, nil, buf), qt.IsNil)
	c.Assert(buf, qt.DeepEquals, []byte{0xAA, 0xBB})

	c.Assert(bus.Log, qt.HasLen, 3)
	c.Assert(bus.Log[2].R, qt.DeepEquals, []byte{0xAA, 0xBB})
}

func TestMissingDevice(t *testing.T) {
	c := qt.New(t)
	bus := NewI2CBus()
	err := bus.ReadRegister(0x50, 0, make([]byte, 1))
	c.Assert(errors.Is(err, ErrNoDevice), qt.IsTrue)
}

func TestDeviceError(t *testing.T) {
	c := qt.New(t)
	bus := NewI2CBus()
	dev := NewI2CDevice(0x68)
	dev.Err = errors.New("nack")
	bus.AddDevice(dev)
	c.Assert(bus.Tx(0x68, []byte{0}, nil), qt.ErrorMatches, "nack")
	c.Assert(bus.Log, qt.HasLen, 0)
}

func TestDeviceErrorAfter(t *testing.T) {
	c := qt.New(t)
	bus := NewI2CBus()
	dev := NewI2CDevice(0x68)
	dev.Err = errors.New("nack")
	dev.ErrAfter = 1
	bus.AddDevice(dev)
	c.Assert(bus.Tx(0x68, []byte{0}, nil), qt.IsNil)
	c.Assert(bus.Tx(0x68, nil, make([]byte, 1)), qt.ErrorMatches, "nack")
	c.Assert(bus.Log, qt.HasLen, 1)
}

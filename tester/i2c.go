// Package tester provides fake buses for testing drivers without hardware.
package tester

import (
	"errors"
	"fmt"
)

// ErrNoDevice is returned when a transaction addresses a device that was never added to the bus.
var ErrNoDevice = errors.New("tester: no device at address")

// Transaction records a single call made against an I2CBus.
type Transaction struct {
	Addr uint16
	W    []byte
	// R holds the bytes handed back to the caller.
	R []byte
}

// I2CBus is a fake I2C bus holding any number of register-file devices. It implements drivers.I2C.
type I2CBus struct {
	devices map[uint16]*I2CDevice
	// Log records every transaction in order. It can be inspected or cleared as desired.
	Log []Transaction
}

// I2CDevice is a fake device with 256 eight-bit registers and an auto-incrementing register pointer, which is how
// most clock chips behave: a write sets the pointer from its first byte and stores the rest, a read returns bytes
// starting at the pointer.
type I2CDevice struct {
	Addr uint16
	// Registers holds the device registers. It can be inspected or changed as desired for testing.
	Registers [256]uint8
	// If Err is non-nil it is returned from every transaction addressed to this device once ErrAfter transactions
	// have succeeded.
	Err      error
	ErrAfter int
	pointer  uint8
	count    int
}

func NewI2CBus() *I2CBus {
	return &I2CBus{devices: make(map[uint16]*I2CDevice)}
}

func NewI2CDevice(addr uint16) *I2CDevice {
	return &I2CDevice{Addr: addr}
}

// AddDevice attaches d to the bus at d.Addr.
func (b *I2CBus) AddDevice(d *I2CDevice) {
	b.devices[d.Addr] = d
}

func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	d, ok := b.devices[addr]
	if !ok {
		return fmt.Errorf("%w 0x%02x", ErrNoDevice, addr)
	}
	if d.Err != nil && d.count >= d.ErrAfter {
		return d.Err
	}
	d.count++
	if len(w) > 0 {
		d.pointer = w[0]
		for _, v := range w[1:] {
			d.Registers[d.pointer] = v
			d.pointer++
		}
	}
	for i := range r {
		r[i] = d.Registers[d.pointer]
		d.pointer++
	}
	b.Log = append(b.Log, Transaction{
		Addr: addr,
		W:    append([]byte(nil), w...),
		R:    append([]byte(nil), r...),
	})
	return nil
}

func (b *I2CBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b *I2CBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, r)
	w = append(w, buf...)
	return b.Tx(uint16(addr), w, nil)
}

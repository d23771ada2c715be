// Package hostbus exposes an I2C bus of a Linux host (for example /dev/i2c-1 on a Raspberry Pi) as a drivers.I2C, so
// the drivers in this repository can run outside of TinyGo.
package hostbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/ajanata/drivers"
)

// Bus adapts a periph.io I2C bus.
type Bus struct {
	bus i2c.Bus
}

var _ drivers.I2C = (*Bus)(nil)

// Open initializes the host drivers and opens the named bus. An empty name selects the first bus found.
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hostbus: init host drivers: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("hostbus: open %q: %w", name, err)
	}
	return &Bus{bus: b}, nil
}

// Wrap adapts an already opened periph.io bus.
func Wrap(b i2c.Bus) *Bus {
	return &Bus{bus: b}
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

// ReadRegister writes the register pointer and reads buf with a repeated start.
func (b *Bus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.bus.Tx(uint16(addr), []byte{r}, buf)
}

func (b *Bus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, r)
	w = append(w, buf...)
	return b.bus.Tx(uint16(addr), w, nil)
}

// Close releases the bus. Opened buses are closed; wrapped ones are closed only if they support it.
func (b *Bus) Close() error {
	if c, ok := b.bus.(i2c.BusCloser); ok {
		return c.Close()
	}
	return nil
}

func (b *Bus) String() string {
	return b.bus.String()
}

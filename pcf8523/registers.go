package pcf8523

const Address = 0x68 // I2C address for PCF8523

const (
	Control1          = 0x00 // Control and status register 1
	Control2          = 0x01 // Control and status register 2
	Control3          = 0x02 // Control and status register 3
	Time              = 0x03 // Time registers starting with seconds
	Status            = 0x03 // Status register, also holds seconds
	Offset            = 0x0E // Offset register
	ClkOutControl     = 0x0F // Timer and CLKOUT control register
	TimerBFreqControl = 0x12 // Timer B source clock frequency control
	TimerBValue       = 0x13 // Timer B value (number clock periods)
)

// Masks applied to the time registers on read. The order matches the register block at Time.
var timeMasks = [7]uint8{
	0x7F, // seconds, top bit is OS
	0x7F, // minutes
	0x3F, // hours, 24 hour mode
	0x3F, // days
	0x07, // weekdays, 0-6
	0x1F, // months
	0xFF, // years
}

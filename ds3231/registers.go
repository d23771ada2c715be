package ds3231

const Address = 0x68

// Timekeeping registers. They are read and written as one block starting at Seconds, in this order.
const (
	Seconds    = 0x00
	Minutes    = 0x01
	Hours      = 0x02
	DayOfWeek  = 0x03
	DayOfMonth = 0x04
	Month      = 0x05
	Year       = 0x06
	Control    = 0x0E
	Status     = 0x0F
)

const (
	clockHalt   = 0x80 // top bit of the seconds register
	hourModeBit = 0xC0 // 12/24 hour mode bits of the hours register
	oscStopped  = 0x80 // OSF in the status register
)

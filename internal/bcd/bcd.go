// Package bcd converts between packed decimal register values and plain integers.
package bcd

// Encode converts v (0-99) to BCD. Larger values are not rejected and produce garbage.
func Encode(v uint8) uint8 {
	return (v/10)*16 + v%10
}

// Decode converts a BCD byte to its decimal value.
func Decode(b uint8) uint8 {
	return (b/16)*10 + b%16
}

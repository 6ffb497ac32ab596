// Package lcd drives an HD44780 character display through a PCF8574 I2C backpack.
//
// The controller runs in 4-bit mode: every byte is sent as two nibbles on the
// upper expander pins, each latched by a pulse on the enable pin.
package lcd

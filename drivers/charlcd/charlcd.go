// Package charlcd adapts an HD44780 character panel behind an I2C backpack to
// the display contract the runtime draws on. It programs the eight CGRAM
// slots with the big-digit segment glyphs at configure time.
package charlcd

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"github.com/ajanata/weatherclock"
)

var _ weatherclock.Display = (*Device)(nil)

const (
	width  = 16
	height = 2
)

// CGRAM slot assignments. Slots 0-7 are the only programmable characters the
// controller has, and the big digits consume all of them.
const (
	glyphLeftTop uint8 = iota
	glyphUpperBar
	glyphRightTop
	glyphLowerLeft
	glyphLowerBar
	glyphLowerRight
	glyphMiddleBar
	glyphBlock
)

// 5x8 bitmaps for each slot.
var segments = [8][8]byte{
	glyphLeftTop:    {0b00111, 0b01111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111},
	glyphUpperBar:   {0b11111, 0b11111, 0b11111, 0b00000, 0b00000, 0b00000, 0b00000, 0b00000},
	glyphRightTop:   {0b11100, 0b11110, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111},
	glyphLowerLeft:  {0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b01111, 0b00111},
	glyphLowerBar:   {0b00000, 0b00000, 0b00000, 0b00000, 0b00000, 0b11111, 0b11111, 0b11111},
	glyphLowerRight: {0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11110, 0b11100},
	glyphMiddleBar:  {0b11111, 0b11111, 0b11111, 0b00000, 0b00000, 0b00000, 0b11111, 0b11111},
	glyphBlock:      {0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111},
}

// blank marks an empty cell in a digit composition.
const blank = 0xff

// digits holds the cell layout of each big digit, two rows of three columns.
// Values other than blank index the CGRAM slots above.
var digits = [10][2][3]byte{
	0: {{glyphLeftTop, glyphUpperBar, glyphRightTop}, {glyphLowerLeft, glyphLowerBar, glyphLowerRight}},
	1: {{glyphUpperBar, glyphRightTop, blank}, {glyphLowerBar, glyphBlock, glyphLowerBar}},
	2: {{glyphMiddleBar, glyphMiddleBar, glyphRightTop}, {glyphLowerLeft, glyphLowerBar, glyphLowerBar}},
	3: {{glyphMiddleBar, glyphMiddleBar, glyphRightTop}, {glyphLowerBar, glyphLowerBar, glyphLowerRight}},
	4: {{glyphLowerLeft, glyphLowerBar, glyphBlock}, {blank, blank, glyphBlock}},
	5: {{glyphLowerLeft, glyphMiddleBar, glyphMiddleBar}, {glyphLowerBar, glyphLowerBar, glyphLowerRight}},
	6: {{glyphLeftTop, glyphMiddleBar, glyphMiddleBar}, {glyphLowerLeft, glyphLowerBar, glyphLowerRight}},
	7: {{glyphUpperBar, glyphUpperBar, glyphRightTop}, {blank, blank, glyphBlock}},
	8: {{glyphLeftTop, glyphMiddleBar, glyphRightTop}, {glyphLowerLeft, glyphLowerBar, glyphLowerRight}},
	9: {{glyphLeftTop, glyphMiddleBar, glyphRightTop}, {blank, blank, glyphBlock}},
}

// panel is the subset of the hd44780i2c device the adapter drives. It exists
// so tests can record the byte traffic without an I2C bus. Signatures mirror
// hd44780i2c.Device, which swallows bus errors itself.
type panel interface {
	ClearDisplay()
	SetCursor(x, y uint8)
	Print(data []byte)
	CreateCharacter(cgramAddr uint8, data []byte)
	BacklightOn(option bool)
}

var _ panel = (*hd44780i2c.Device)(nil)

// Device implements the runtime display contract on a 16x2 panel.
type Device struct {
	lcd panel
}

// New configures the panel at addr on bus and programs the big-digit glyphs.
func New(bus drivers.I2C, addr uint8) (*Device, error) {
	lcd := hd44780i2c.New(bus, addr)
	err := lcd.Configure(hd44780i2c.Config{Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	d := &Device{lcd: &lcd}
	d.loadGlyphs()
	return d, nil
}

func (d *Device) loadGlyphs() {
	for slot := range segments {
		d.lcd.CreateCharacter(uint8(slot), segments[slot][:])
	}
}

func (d *Device) Clear() {
	d.lcd.ClearDisplay()
}

func (d *Device) SetCursor(col, row uint8) {
	d.lcd.SetCursor(col, row)
}

func (d *Device) Print(text string) {
	d.lcd.Print([]byte(text))
}

// WriteGlyph draws CGRAM slot id at the cursor. Bytes 0-7 address the CGRAM
// characters directly.
func (d *Device) WriteGlyph(id uint8) {
	if id > 7 {
		return
	}
	d.lcd.Print([]byte{id})
}

func (d *Device) BigDigit(digit, col uint8) {
	if digit > 9 {
		return
	}
	for row := uint8(0); row < height; row++ {
		d.lcd.SetCursor(col, row)
		for _, cell := range digits[digit][row] {
			if cell == blank {
				d.lcd.Print([]byte{' '})
			} else {
				d.lcd.Print([]byte{cell})
			}
		}
	}
}

func (d *Device) Backlight(on bool) {
	d.lcd.BacklightOn(on)
}

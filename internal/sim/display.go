package sim

import (
	"github.com/gdamore/tcell/v2"
)

const (
	panelWidth  = 16
	panelHeight = 2

	// border offset of the panel within the terminal
	originX = 2
	originY = 1
)

// glyphRunes stands in for the programmable character slots. The slots hold
// the big-digit segments, so each maps to the block rune closest to its
// bitmap.
var glyphRunes = [8]rune{
	0: '█', // left top
	1: '▀', // upper bar
	2: '█', // right top
	3: '█', // lower left
	4: '▄', // lower bar
	5: '█', // lower right
	6: '▀', // middle bar
	7: '█', // full block
}

// cells for each big digit, two rows of three columns. 0xff is blank, other
// values index glyphRunes.
var bigDigits = [10][2][3]byte{
	0: {{0, 1, 2}, {3, 4, 5}},
	1: {{1, 2, 0xff}, {4, 7, 4}},
	2: {{6, 6, 2}, {3, 4, 4}},
	3: {{6, 6, 2}, {4, 4, 5}},
	4: {{3, 4, 7}, {0xff, 0xff, 7}},
	5: {{3, 6, 6}, {4, 4, 5}},
	6: {{0, 6, 6}, {3, 4, 5}},
	7: {{1, 1, 2}, {0xff, 0xff, 7}},
	8: {{0, 6, 2}, {3, 4, 5}},
	9: {{0, 6, 2}, {0xff, 0xff, 7}},
}

type display struct {
	screen tcell.Screen
	col    uint8
	row    uint8
	lit    bool
}

var panelStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
var dimStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)

func (d *display) style() tcell.Style {
	if d.lit {
		return panelStyle
	}
	return dimStyle
}

func (d *display) Clear() {
	for r := 0; r < panelHeight; r++ {
		for c := 0; c < panelWidth; c++ {
			d.screen.SetContent(originX+c, originY+r, ' ', nil, d.style())
		}
	}
	d.col, d.row = 0, 0
	d.frame()
	d.screen.Show()
}

func (d *display) SetCursor(col, row uint8) {
	d.col, d.row = col, row
}

func (d *display) Print(text string) {
	for _, r := range text {
		d.put(r)
	}
	d.screen.Show()
}

func (d *display) WriteGlyph(id uint8) {
	if id < 8 {
		d.put(glyphRunes[id])
	}
	d.screen.Show()
}

func (d *display) BigDigit(digit, col uint8) {
	if digit > 9 {
		return
	}
	for row := 0; row < panelHeight; row++ {
		d.SetCursor(col, uint8(row))
		for _, cell := range bigDigits[digit][row] {
			if cell == 0xff {
				d.put(' ')
			} else {
				d.put(glyphRunes[cell])
			}
		}
	}
	d.screen.Show()
}

func (d *display) Backlight(on bool) {
	d.lit = on
	d.frame()
	d.screen.Show()
}

// put writes one rune at the cursor and advances it, clamping at the panel
// edge the way the real controller masks overflow.
func (d *display) put(r rune) {
	if d.col >= panelWidth || d.row >= panelHeight {
		return
	}
	d.screen.SetContent(originX+int(d.col), originY+int(d.row), r, nil, d.style())
	d.col++
}

func (d *display) frame() {
	border := tcell.StyleDefault
	for c := -1; c <= panelWidth; c++ {
		d.screen.SetContent(originX+c, originY-1, '─', nil, border)
		d.screen.SetContent(originX+c, originY+panelHeight, '─', nil, border)
	}
	for r := 0; r < panelHeight; r++ {
		d.screen.SetContent(originX-1, originY+r, '│', nil, border)
		d.screen.SetContent(originX+panelWidth, originY+r, '│', nil, border)
	}
	d.screen.SetContent(originX-1, originY-1, '┌', nil, border)
	d.screen.SetContent(originX+panelWidth, originY-1, '┐', nil, border)
	d.screen.SetContent(originX-1, originY+panelHeight, '└', nil, border)
	d.screen.SetContent(originX+panelWidth, originY+panelHeight, '┘', nil, border)
}

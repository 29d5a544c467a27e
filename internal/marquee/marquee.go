// Package marquee produces fixed-width windows into a longer text for
// scrolling on a character-cell display. The text is treated as circular with
// no gap between its end and restart; the display loops seamlessly instead of
// inserting a blank separator. A separator can be appended by the caller via
// Cursor.SetText, but seamless wrap is the default.
package marquee

// Window returns exactly width bytes of source starting at position, wrapping
// around the end of source. An empty source yields width blanks.
//
// Source is expected to already be normalized to the display's single-byte
// charset; windowing is byte-wise on purpose.
func Window(source string, position uint, width int) string {
	if width <= 0 {
		return ""
	}
	out := make([]byte, width)
	if len(source) == 0 {
		for i := range out {
			out[i] = ' '
		}
		return string(out)
	}
	n := uint(len(source))
	for i := 0; i < width; i++ {
		out[i] = source[(position+uint(i))%n]
	}
	return string(out)
}

// Cursor tracks the scroll position of one screen's text. Advancing past the
// end of the text wraps to the start.
type Cursor struct {
	text     string
	position uint
}

// SetText replaces the scrolled text and rewinds to the start. Setting the
// same text is a no-op so renderers may call it every redraw.
func (c *Cursor) SetText(text string) {
	if c.text == text {
		return
	}
	c.text = text
	c.position = 0
}

// Reset rewinds to the start of the text. Called when the owning screen
// becomes active.
func (c *Cursor) Reset() {
	c.position = 0
}

// Advance moves the cursor one character and returns the next window.
func (c *Cursor) Advance(width int) string {
	w := Window(c.text, c.position, width)
	if len(c.text) > 0 {
		c.position = (c.position + 1) % uint(len(c.text))
	}
	return w
}

// Window returns the current window without advancing.
func (c *Cursor) Window(width int) string {
	return Window(c.text, c.position, width)
}

package weatherclock

import (
	"strconv"
	"time"

	"github.com/ajanata/weatherclock/internal/calendar"
	"github.com/ajanata/weatherclock/internal/lcdtext"
	"github.com/ajanata/weatherclock/internal/marquee"
)

// weekdays as shown on the date screen. Sáb carries an accent on purpose; the
// renderer folds it for the display.
var weekdays = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// ScreenState is the navigation state: the cyclic primary screen selector,
// the unbounded secondary index used by forecast paging, and the inactivity
// timestamp. Mutated only by debounced button events and the inactivity
// snap-back.
type ScreenState struct {
	primary    Screen
	secondary  int
	lastChange time.Time
}

func (s *ScreenState) Primary() Screen { return s.primary }

// ForecastSlot maps the unbounded secondary index onto the 8 forecast slots.
// Negative values wrap to the top slot.
func (s *ScreenState) ForecastSlot() int {
	return ((s.secondary % ForecastSlots) + ForecastSlots) % ForecastSlots
}

// handleButton applies one debounced button event to the navigation state.
// Left/right step the primary screen with cyclic wraparound; up/down page the
// secondary index; select jumps straight home. Every event resets the
// inactivity timer, and every index change clears the scroll cursor and the
// display so the new screen starts from a clean surface.
func (c *Controller) handleButton(b Button, now time.Time) {
	prevP, prevS := c.screen.primary, c.screen.secondary
	switch b {
	case ButtonLeft:
		c.screen.primary = wrapScreen(int(c.screen.primary) - 1)
	case ButtonRight:
		c.screen.primary = wrapScreen(int(c.screen.primary) + 1)
	case ButtonUp:
		c.screen.secondary++
	case ButtonDown:
		c.screen.secondary--
	case ButtonSelect:
		c.screen.primary = ScreenClock
		c.screen.secondary = 0
	}
	c.screen.lastChange = now
	if c.screen.primary != prevP || c.screen.secondary != prevS {
		c.screenChanged(now)
	}
}

// screenChanged resets the per-screen rendering state after a navigation
// event or the inactivity snap-back.
func (c *Controller) screenChanged(now time.Time) {
	c.scroll = marquee.Cursor{}
	c.display.Clear()
	// Zero the throttles so the new screen draws on this tick.
	c.lastClock = time.Time{}
	c.lastScroll = time.Time{}
	c.lastInfo = time.Time{}
	c.log.Debugf("screen %s/%d", c.screen.primary, c.screen.secondary)
}

// render invokes exactly one renderer for the active screen. Renderers
// enforce their own minimum redraw interval and are no-ops when invoked
// before it has elapsed.
func (c *Controller) render(now time.Time) {
	switch c.screen.primary {
	case ScreenClock:
		c.renderClock(now)
	case ScreenDate:
		c.renderDate(now)
	case ScreenNTPInfo:
		c.renderNTPInfo(now)
	case ScreenNetworkInfo:
		c.renderNetwork(now)
	case ScreenWeather:
		c.renderWeather(now)
	case ScreenForecast:
		c.renderForecast(now)
	}
}

// renderClock draws HH:MM as four oversized two-row digits at columns
// 0/4/8/12 and blinks the colon in column 7 on every redraw.
func (c *Controller) renderClock(now time.Time) {
	if now.Sub(c.lastClock) < clockRedraw {
		return
	}
	c.lastClock = now
	c.colon = !c.colon

	d := calendar.FromEpoch(c.time.Now())
	c.display.BigDigit(uint8(d.Hour/10), 0)
	c.display.BigDigit(uint8(d.Hour%10), 4)
	c.display.BigDigit(uint8(d.Minute/10), 8)
	c.display.BigDigit(uint8(d.Minute%10), 12)

	sep := " "
	if c.colon {
		sep = ":"
	}
	c.display.SetCursor(7, 0)
	c.display.Print(sep)
	c.display.SetCursor(7, 1)
	c.display.Print(sep)
}

func (c *Controller) renderDate(now time.Time) {
	if now.Sub(c.lastInfo) < infoRedraw {
		return
	}
	c.lastInfo = now

	d := calendar.FromEpoch(c.time.Now())
	wd := c.time.Weekday()
	if wd < 0 || wd > 6 {
		wd = 0
	}
	line := lcdtext.Normalize(weekdays[wd]) + " " +
		strconv.Itoa(d.Day) + "/" + strconv.Itoa(d.Month) + "/" + strconv.Itoa(d.Year)

	c.display.SetCursor(0, 0)
	c.display.Print(padLine("Data:", displayWidth))
	c.display.SetCursor(0, 1)
	c.display.Print(padLine(line, displayWidth))
}

func (c *Controller) renderNTPInfo(now time.Time) {
	if now.Sub(c.lastScroll) < scrollRedraw {
		return
	}
	c.lastScroll = now

	status := "NTP: ----"
	server := "sem servidor"
	if s, ok := c.time.ActiveServer(); ok {
		status = "NTP: ok"
		server = s
	}
	c.display.SetCursor(0, 0)
	c.display.Print(padLine(status, displayWidth))
	c.scrollLine(server, 1)
}

func (c *Controller) renderNetwork(now time.Time) {
	if now.Sub(c.lastInfo) < infoRedraw {
		return
	}
	c.lastInfo = now

	c.display.SetCursor(0, 0)
	c.display.Print(padLine(c.network.LocalIP(), displayWidth))
	c.scrollLine(c.network.SSID(), 1)
}

func (c *Controller) renderWeather(now time.Time) {
	if now.Sub(c.lastScroll) < scrollRedraw {
		return
	}
	c.lastScroll = now

	if !c.currentMeta.valid {
		c.display.SetCursor(0, 0)
		c.display.Print(padLine("Tempo: ---", displayWidth))
		c.display.SetCursor(0, 1)
		c.display.Print(padLine("sem dados", displayWidth))
		return
	}

	cur := c.current
	line := formatTemp(cur.Temperature) + " " +
		strconv.Itoa(cur.Humidity) + "% " +
		strconv.Itoa(cur.Pressure)
	c.display.SetCursor(0, 0)
	c.display.Print(padLine(line, displayWidth))
	c.scrollLine(lcdtext.Normalize(cur.Description), 1)
}

func (c *Controller) renderForecast(now time.Time) {
	if now.Sub(c.lastScroll) < scrollRedraw {
		return
	}
	c.lastScroll = now

	slot := c.screen.ForecastSlot()
	if !c.forecastMeta.valid {
		c.display.SetCursor(0, 0)
		c.display.Print(padLine("Prev "+strconv.Itoa(slot+1)+"/8", displayWidth))
		c.display.SetCursor(0, 1)
		c.display.Print(padLine("sem dados", displayWidth))
		return
	}

	e := c.forecast[slot]
	hour := calendar.FromEpoch(e.Timestamp).Hour
	head := strconv.Itoa(slot+1) + "/8 " + strconv.Itoa(hour) + "h " +
		formatTemp(e.TempMin) + "/" + formatTemp(e.TempMax)
	c.display.SetCursor(0, 0)
	c.display.Print(padLine(head, displayWidth))

	tail := lcdtext.Normalize(e.Description) + " chuva " + strconv.Itoa(int(e.Pop*100+0.5)) + "%"
	if e.Rain > 0 {
		tail += " " + strconv.FormatFloat(e.Rain, 'f', 1, 64) + "mm"
	}
	c.scrollLine(tail, 1)
}

// scrollLine draws text on the given row, as a seamless circular marquee when
// it does not fit the display and as a padded static line when it does.
func (c *Controller) scrollLine(text string, row uint8) {
	if len(text) <= displayWidth {
		c.display.SetCursor(0, row)
		c.display.Print(padLine(text, displayWidth))
		return
	}
	c.scroll.SetText(text)
	c.display.SetCursor(0, row)
	c.display.Print(c.scroll.Advance(displayWidth))
}

// formatTemp renders a temperature to one decimal, like 25.3C.
func formatTemp(t float64) string {
	return strconv.FormatFloat(t, 'f', 1, 64) + "C"
}

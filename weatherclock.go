// Package weatherclock is the runtime for a 16x2 character-LCD clock and
// weather station. A single cooperative control loop owns all state: it polls
// time sync, refreshes weather data under a staleness policy, feeds debounced
// keypad events to the screen navigation state machine, and dispatches the
// active screen's renderer. There is no concurrency; blocking happens only in
// the collaborators, bounded by their timeouts.
package weatherclock

import (
	"context"
	"errors"
	"time"

	"github.com/ajanata/weatherclock/internal/config"
	"github.com/ajanata/weatherclock/internal/marquee"
)

const (
	displayWidth  = 16
	displayHeight = 2

	// Per-renderer minimum redraw intervals. The clock redraws fastest since
	// it blinks the colon separator; the scrolling screens redraw at the
	// scroll cadence; the info screens only need to refresh once a second.
	clockRedraw  = 500 * time.Millisecond
	scrollRedraw = 400 * time.Millisecond
	infoRedraw   = time.Second

	bannerHold = 2 * time.Second
)

// spinner cells shown while associating, one per attempt.
var spinner = [...]string{"|", ">", "=", "<"}

// Display is the fixed 16-column by 2-row character surface. Oversized
// two-row digit composition is the display's job; the runtime only says which
// digit goes at which column.
type Display interface {
	Clear()
	SetCursor(col, row uint8)
	Print(text string)
	// WriteGlyph writes one programmable glyph slot at the cursor.
	WriteGlyph(id uint8)
	// BigDigit composes digit d across both rows starting at column col.
	BigDigit(d, col uint8)
	Backlight(on bool)
}

// Network is the external network-association collaborator.
type Network interface {
	// Connect attempts to join the given network, blocking up to the
	// collaborator's own join timeout.
	Connect(ssid, password string) bool
	IsConnected() bool
	SSID() string
	LocalIP() string
}

// Driver ties the runtime to a hardware (or simulated) platform.
type Driver interface {
	// EarlyInit initializes the platform devices and returns the
	// collaborators. Buses required to reach the display must be configured
	// before this returns, since boot messages go to it immediately.
	EarlyInit() (Display, Network, SyncClient, WeatherSource, error)

	// LateInit runs after network association and time sync have succeeded.
	// Failures in here must not take down the boot.
	LateInit(log Logger)

	// ReadAnalog samples the keypad sensor. Called at the button poll
	// cadence, never faster.
	ReadAnalog() uint16

	// Restart reboots the device. Invoked on the two fatal paths: no network
	// reachable, and time-sync exhaustion.
	Restart(reason string)
}

// Controller owns all runtime state. Everything in here is mutated only from
// Init and RunTick, which the caller must drive from a single goroutine.
type Controller struct {
	cfg *config.Config
	log Logger

	driver  Driver
	display Display
	network Network
	weather WeatherSource

	time   *TimeSource
	keypad *Keypad

	screen ScreenState
	scroll marquee.Cursor

	current      CurrentConditions
	currentMeta  snapshot
	forecast     ForecastSet
	forecastMeta snapshot

	currentPolicy  Freshness
	forecastPolicy Freshness

	// per-renderer redraw bookkeeping
	lastClock  time.Time
	lastScroll time.Time
	lastInfo   time.Time
	colon      bool

	init bool
	tick uint32
	now  func() time.Time
}

func New(cfg *config.Config, driver Driver, log Logger) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("must provide config")
	}
	if driver == nil {
		return nil, errors.New("must provide driver")
	}
	if log == nil {
		log = serialLogger{}
	}

	interval := int64(cfg.Weather.Interval / time.Second)
	return &Controller{
		cfg:            cfg,
		log:            log,
		driver:         driver,
		currentPolicy:  Freshness{Interval: interval},
		forecastPolicy: Freshness{Interval: interval * int64(cfg.Weather.ForecastMultiple)},
		now:            time.Now,
	}, nil
}

// Init brings the device up: display, network association, first time sync.
// The two fatal paths restart the device via the driver instead of returning.
func (c *Controller) Init() error {
	if c.init {
		return errors.New("already initialized")
	}
	start := c.now()

	display, network, clock, weather, err := c.driver.EarlyInit()
	if err != nil {
		return errors.New("early init: " + err.Error())
	}
	if display == nil {
		return errors.New("early init did not provide a display")
	}
	c.display = display
	c.network = network
	c.weather = weather
	c.time = NewTimeSource(clock, c.cfg.NTP.Servers, c.log)
	c.keypad = NewKeypad(c.cfg.Input, c.cfg.Loop.ButtonPoll)

	c.display.Backlight(true)
	c.display.Clear()
	c.display.Print("Conectando em:")

	if !c.connect() {
		c.display.Clear()
		c.display.Print("Erro ao conectar")
		time.Sleep(c.cfg.WiFi.RestartDelay)
		c.driver.Restart("no configured network reachable")
		return errors.New("no configured network reachable")
	}

	c.display.Clear()
	c.display.Print("Conectado ao")
	c.display.SetCursor(0, 1)
	c.display.Print("Wi-Fi: " + c.network.SSID())

	n, err := c.time.TrySync()
	if err != nil {
		c.display.Clear()
		c.display.Print("Erro NTP")
		time.Sleep(c.cfg.WiFi.RestartDelay)
		c.driver.Restart("time sync exhausted at boot")
		return err
	}
	c.display.Clear()
	c.display.Print("Conectado ao NTP")
	c.display.SetCursor(0, 1)
	c.display.Print(c.cfg.NTP.Servers[n])
	time.Sleep(bannerHold)

	c.driver.LateInit(c.log)

	c.screen = ScreenState{lastChange: c.now()}
	c.display.Clear()
	c.init = true
	c.log.Infof("booted in %s", c.now().Sub(start).Round(100*time.Millisecond))
	return nil
}

// connect walks the credential list in order, drawing each SSID and a spinner
// cell while the collaborator tries to join.
func (c *Controller) connect() bool {
	for i, cred := range c.cfg.WiFi.Networks {
		c.display.SetCursor(0, 1)
		c.display.Print(padLine(cred.SSID, displayWidth-1))
		c.display.SetCursor(displayWidth-1, 1)
		c.display.Print(spinner[i%len(spinner)])
		c.log.Infof("trying network %s", cred.SSID)
		if c.network.Connect(cred.SSID, cred.Password) {
			return true
		}
	}
	return c.network.IsConnected()
}

// Run drives RunTick at the configured cadence and does not return. A fatal
// tick error restarts the device.
func (c *Controller) Run() {
	for range time.Tick(c.cfg.Loop.Tick) {
		if err := c.RunTick(); err != nil {
			c.driver.Restart(err.Error())
			return
		}
	}
}

// RunTick runs a single iteration of the control loop. Within one tick the
// order is fixed: time-sync poll, button handling, data freshness, inactivity
// check, render. Nothing is interleaved.
func (c *Controller) RunTick() error {
	if !c.init {
		return errors.New("not initialized")
	}
	c.tick++
	now := c.now()

	if err := c.time.Poll(); err != nil {
		// The full server list was rescanned and nothing answered.
		c.display.Clear()
		c.display.Print("Erro NTP")
		return err
	}

	if b := c.keypad.Poll(now, c.driver.ReadAnalog); b != ButtonNone {
		c.log.Debugf("button %s", b)
		c.handleButton(b, now)
	}

	c.refreshWeather()

	if now.Sub(c.screen.lastChange) > c.cfg.Loop.InactivityTimeout {
		// Safety net: walking away always returns to the clock.
		if c.screen.primary != ScreenClock || c.screen.secondary != 0 {
			c.screen.primary = ScreenClock
			c.screen.secondary = 0
			c.screenChanged(now)
		}
		c.screen.lastChange = now
	}

	c.render(now)
	return nil
}

// refreshWeather runs the per-kind staleness checks and fetches whatever is
// due. The fetch-initiation time is recorded unconditionally once the call
// returns, so a parse or transport failure waits out a full interval instead
// of retrying immediately.
func (c *Controller) refreshWeather() {
	if c.weather == nil {
		return
	}
	epoch := c.time.Now()

	if c.currentPolicy.Due(epoch, c.currentMeta.lastFetch) {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Weather.FetchTimeout)
		cur, err := c.weather.Current(ctx)
		cancel()
		c.currentMeta.lastFetch = epoch
		if err != nil {
			c.log.Infof("current conditions fetch: %v", err)
		} else {
			c.current = cur
			c.currentMeta.valid = true
		}
	}

	if c.forecastPolicy.Due(epoch, c.forecastMeta.lastFetch) {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Weather.FetchTimeout)
		fc, err := c.weather.Forecast(ctx)
		cancel()
		c.forecastMeta.lastFetch = epoch
		if err != nil {
			c.log.Infof("forecast fetch: %v", err)
		} else {
			// Atomic: the whole 8-slot set or nothing.
			c.forecast = fc
			c.forecastMeta.valid = true
		}
	}
}

// padLine left-justifies s into width cells, truncating if needed.
func padLine(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	b := make([]byte, width)
	copy(b, s)
	for i := len(s); i < width; i++ {
		b[i] = ' '
	}
	return string(b)
}

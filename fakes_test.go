package weatherclock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ajanata/weatherclock/internal/config"
)

var errTest = errors.New("collaborator unavailable")

// fakeDisplay records the character-cell surface so tests can assert on what
// the user would see.
type fakeDisplay struct {
	cells    [displayHeight][displayWidth]byte
	col, row uint8
	clears   int
	big      map[uint8]uint8 // column -> digit of the last BigDigit call
	printed  []string        // every Print call, for boot banner assertions
}

func newFakeDisplay() *fakeDisplay {
	d := &fakeDisplay{big: map[uint8]uint8{}}
	d.Clear()
	return d
}

func (d *fakeDisplay) Clear() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	d.col, d.row = 0, 0
	d.clears++
	d.big = map[uint8]uint8{}
}

func (d *fakeDisplay) SetCursor(col, row uint8) { d.col, d.row = col, row }

func (d *fakeDisplay) Print(text string) {
	d.printed = append(d.printed, text)
	for i := 0; i < len(text); i++ {
		if int(d.col) >= displayWidth || int(d.row) >= displayHeight {
			break
		}
		d.cells[d.row][d.col] = text[i]
		d.col++
	}
}

func (d *fakeDisplay) WriteGlyph(id uint8) { d.Print(string(rune('0' + id))) }

func (d *fakeDisplay) BigDigit(digit, col uint8) { d.big[col] = digit }

func (d *fakeDisplay) Backlight(bool) {}

func (d *fakeDisplay) line(row int) string { return string(d.cells[row][:]) }

type fakeNetwork struct {
	reachable map[string]bool
	connected string
	ip        string
}

func (n *fakeNetwork) Connect(ssid, _ string) bool {
	if n.reachable[ssid] {
		n.connected = ssid
		return true
	}
	return false
}

func (n *fakeNetwork) IsConnected() bool { return n.connected != "" }
func (n *fakeNetwork) SSID() string { return n.connected }
func (n *fakeNetwork) LocalIP() string { return n.ip }

// fakeSync is a scriptable SyncClient. Servers listed in responds answer;
// everything else times out.
type fakeSync struct {
	responds map[string]bool
	active   string
	timeSet  bool
	epoch    int64
	weekday  int

	serverHistory []string
}

func (s *fakeSync) SetServer(host string) {
	s.active = host
	s.serverHistory = append(s.serverHistory, host)
}

func (s *fakeSync) Begin() {}

func (s *fakeSync) Update() bool {
	if s.responds[s.active] {
		s.timeSet = true
		return true
	}
	return false
}

func (s *fakeSync) IsTimeSet() bool { return s.timeSet }
func (s *fakeSync) EpochTime() int64 { return s.epoch }
func (s *fakeSync) Weekday() int { return s.weekday }

type fakeWeather struct {
	current       CurrentConditions
	forecast      ForecastSet
	currentErr    error
	forecastErr   error
	currentCalls  int
	forecastCalls int
}

func (w *fakeWeather) Current(context.Context) (CurrentConditions, error) {
	w.currentCalls++
	return w.current, w.currentErr
}

func (w *fakeWeather) Forecast(context.Context) (ForecastSet, error) {
	w.forecastCalls++
	return w.forecast, w.forecastErr
}

type fakeDriver struct {
	display *fakeDisplay
	network *fakeNetwork
	clock   *fakeSync
	weather *fakeWeather

	raw       uint16 // next analog sample
	restarted string
	lateInit  bool
}

func (d *fakeDriver) EarlyInit() (Display, Network, SyncClient, WeatherSource, error) {
	if d.display == nil {
		return nil, nil, nil, nil, errors.New("no display")
	}
	return d.display, d.network, d.clock, d.weather, nil
}

func (d *fakeDriver) LateInit(Logger)       { d.lateInit = true }
func (d *fakeDriver) ReadAnalog() uint16    { return d.raw }
func (d *fakeDriver) Restart(reason string) { d.restarted = reason }

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string)          { l.t.Log(msg) }
func (l testLogger) Debugf(f string, v ...any) { l.t.Logf(f, v...) }
func (l testLogger) Info(msg string)           { l.t.Log(msg) }
func (l testLogger) Infof(f string, v ...any)  { l.t.Logf(f, v...) }

// rig is a booted controller with scripted collaborators and a manual clock.
type rig struct {
	c       *Controller
	driver  *fakeDriver
	display *fakeDisplay
	network *fakeNetwork
	clock   *fakeSync
	weather *fakeWeather
	wall    time.Time
}

// newRig wires a controller in the post-Init state without running the boot
// banners, so tests control every collaborator and the wall clock.
func newRig(t *testing.T) *rig {
	t.Helper()
	cfg := config.Default()
	cfg.WiFi.Networks = []config.Credentials{{SSID: "lab", Password: "pw"}}
	cfg.WiFi.RestartDelay = time.Millisecond
	cfg.NTP.Servers = []string{"one", "two", "three"}

	driver := &fakeDriver{
		display: newFakeDisplay(),
		network: &fakeNetwork{reachable: map[string]bool{"lab": true}, ip: "192.168.100.17"},
		clock:   &fakeSync{responds: map[string]bool{"one": true, "two": true, "three": true}, epoch: 1700000000},
		weather: &fakeWeather{},
	}
	driver.raw = 1023 // idle
	// Post-Init the network is already joined; mirror that in the fake.
	driver.network.Connect("lab", "pw")

	c, err := New(cfg, driver, testLogger{t})
	if err != nil {
		t.Fatal(err)
	}

	r := &rig{
		c:       c,
		driver:  driver,
		display: driver.display,
		network: driver.network,
		clock:   driver.clock,
		weather: driver.weather,
		wall:    time.Unix(1700000000, 0),
	}
	c.now = func() time.Time { return r.wall }

	c.display = driver.display
	c.network = driver.network
	c.weather = driver.weather
	c.time = NewTimeSource(driver.clock, cfg.NTP.Servers, c.log)
	c.keypad = NewKeypad(cfg.Input, cfg.Loop.ButtonPoll)
	if _, err := c.time.TrySync(); err != nil {
		t.Fatal(err)
	}
	driver.clock.serverHistory = nil
	c.screen = ScreenState{lastChange: r.wall}
	c.init = true
	return r
}

// advance moves the manual wall clock and the synced epoch together.
func (r *rig) advance(d time.Duration) {
	r.wall = r.wall.Add(d)
	r.clock.epoch += int64(d / time.Second)
}

// press runs one tick with the given raw sample, then returns to idle.
func (r *rig) press(t *testing.T, raw uint16) {
	t.Helper()
	r.driver.raw = raw
	if err := r.c.RunTick(); err != nil {
		t.Fatalf("RunTick: %v", err)
	}
	r.driver.raw = 1023
}

func (r *rig) tick(t *testing.T) {
	t.Helper()
	if err := r.c.RunTick(); err != nil {
		t.Fatalf("RunTick: %v", err)
	}
}

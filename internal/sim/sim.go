// Package sim runs the weather clock on a development host: the 16x2 panel is
// drawn in the terminal with tcell and the analog keypad is driven from the
// keyboard. The runtime cannot tell it apart from the firmware driver, which
// makes the whole control loop exercisable without hardware.
package sim

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ajanata/weatherclock"
	"github.com/ajanata/weatherclock/internal/config"
)

// raw sample injected per key, the midpoint of each threshold band.
var keySamples = map[tcell.Key]uint16{
	tcell.KeyEnter: 950, // select
	tcell.KeyLeft:  700,
	tcell.KeyDown:  400,
	tcell.KeyUp:    200,
	tcell.KeyRight: 50,
}

const idleSample = 1023

// keyHold is how long one key press reads as a held button. Long enough for
// the next button poll to see it, short enough not to double-trigger.
const keyHold = 700 * time.Millisecond

// Driver implements weatherclock.Driver on a terminal.
type Driver struct {
	cfg     *config.Config
	clock   weatherclock.SyncClient
	weather weatherclock.WeatherSource

	screen tcell.Screen

	mu      sync.Mutex
	raw     uint16
	pressed time.Time
}

func New(cfg *config.Config, clock weatherclock.SyncClient, weather weatherclock.WeatherSource) *Driver {
	return &Driver{cfg: cfg, clock: clock, weather: weather, raw: idleSample}
}

func (d *Driver) EarlyInit() (weatherclock.Display, weatherclock.Network, weatherclock.SyncClient, weatherclock.WeatherSource, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, nil, nil, nil, err
	}
	d.screen = screen
	go d.readKeys()

	return &display{screen: screen}, hostNetwork{}, d.clock, d.weather, nil
}

func (d *Driver) LateInit(log weatherclock.Logger) {
	log.Info("simulator ready; arrows navigate, enter selects, esc quits")
}

// readKeys feeds key presses into the sampled "analog" value. Only this
// goroutine and ReadAnalog touch the sample; the runtime itself stays
// single-threaded.
func (d *Driver) readKeys() {
	for {
		ev := d.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() == tcell.KeyEscape || key.Rune() == 'q' {
			d.Restart("user quit")
		}
		if raw, ok := keySamples[key.Key()]; ok {
			d.mu.Lock()
			d.raw = raw
			d.pressed = time.Now()
			d.mu.Unlock()
		}
	}
}

func (d *Driver) ReadAnalog() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if time.Since(d.pressed) > keyHold {
		return idleSample
	}
	return d.raw
}

func (d *Driver) Restart(reason string) {
	d.screen.Fini()
	fmt.Fprintln(os.Stderr, "device restart:", reason)
	os.Exit(1)
}

// hostNetwork reports the host's own connectivity; joining is a no-op that
// always succeeds.
type hostNetwork struct{}

func (hostNetwork) Connect(string, string) bool { return true }
func (hostNetwork) IsConnected() bool { return true }
func (hostNetwork) SSID() string { return "host" }

func (hostNetwork) LocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "0.0.0.0"
	}
	for _, a := range addrs {
		if ip, ok := a.(*net.IPNet); ok && !ip.IP.IsLoopback() && ip.IP.To4() != nil {
			return ip.IP.String()
		}
	}
	return "127.0.0.1"
}

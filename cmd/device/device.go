//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/ajanata/weatherclock"
	"github.com/ajanata/weatherclock/drivers/charlcd"
	"github.com/ajanata/weatherclock/internal/config"
	"github.com/ajanata/weatherclock/internal/ntp"
	"github.com/ajanata/weatherclock/internal/openweather"
)

const lcdAddr = 0x27

func main() {
	blink()
	machine.I2C0.Configure(machine.I2CConfig{
		SCL:       machine.I2C0_SCL_PIN,
		SDA:       machine.I2C0_SDA_PIN,
		Frequency: 400 * machine.KHz,
	})
	machine.InitADC()
	blink()

	cfg := config.Default()
	cfg.WiFi.Networks = []config.Credentials{
		// TODO read credentials from flash instead of baking them in
		{SSID: "CHANGE-ME", Password: "CHANGE-ME"},
	}
	cfg.Weather.City = "Sao Paulo,BR"
	cfg.Weather.APIKey = "CHANGE-ME"

	keypad := machine.ADC{Pin: machine.ADC0}
	keypad.Configure(machine.ADCConfig{})
	blink()

	d := &driver{
		cfg:    cfg,
		keypad: keypad,
	}
	c, err := weatherclock.New(cfg, d, nil)
	if err != nil {
		earlyPanic()
	}
	if err := c.Init(); err != nil {
		earlyPanic()
	}
	c.Run()
}

type driver struct {
	cfg    *config.Config
	keypad machine.ADC
}

func (d *driver) EarlyInit() (weatherclock.Display, weatherclock.Network, weatherclock.SyncClient, weatherclock.WeatherSource, error) {
	display, err := charlcd.New(machine.I2C0, lcdAddr)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	clock := ntp.New(d.cfg.NTP.OffsetSeconds, d.cfg.NTP.Timeout, time.Minute)
	// scheduler does not preempt; yield while waiting on the socket
	clock.Yield = func() { time.Sleep(time.Millisecond) }
	weather := openweather.New(d.cfg.Weather, d.cfg.NTP.OffsetSeconds)
	// TODO wire the board's netdev driver here once the cyw43439 port is in;
	// until then the stub reports the link the netdev already brought up.
	return display, netdevLink{}, clock, weather, nil
}

func (d *driver) LateInit(log weatherclock.Logger) {
	log.Info("device up")
}

// ReadAnalog scales the 16-bit ADC reading down to the 10-bit range the
// keypad thresholds are calibrated for.
func (d *driver) ReadAnalog() uint16 {
	return d.keypad.Get() >> 6
}

func (d *driver) Restart(reason string) {
	println("restarting:", reason)
	time.Sleep(100 * time.Millisecond)
	machine.CPUReset()
}

// netdevLink assumes the TinyGo netdev stack joined the network before main
// ran, which is how the probe-at-boot boards behave.
type netdevLink struct{}

func (netdevLink) Connect(string, string) bool { return true }
func (netdevLink) IsConnected() bool { return true }
func (netdevLink) SSID() string { return "netdev" }
func (netdevLink) LocalIP() string { return "0.0.0.0" }

func blink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}

func earlyPanic() {
	for {
		blink()
	}
}

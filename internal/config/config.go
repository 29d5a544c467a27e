// Package config loads the device configuration from a YAML file. Every field
// has a built-in default, so an empty file yields a runnable configuration
// (minus Wi-Fi credentials and the weather API key).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete device configuration.
type Config struct {
	WiFi    WiFiConfig    `yaml:"wifi"`
	NTP     NTPConfig     `yaml:"ntp"`
	Weather WeatherConfig `yaml:"weather"`
	Input   InputConfig   `yaml:"input"`
	Loop    LoopConfig    `yaml:"loop"`
}

// WiFiConfig lists the networks to try, in order.
type WiFiConfig struct {
	Networks     []Credentials `yaml:"networks"`
	JoinTimeout  time.Duration `yaml:"join_timeout"`
	RestartDelay time.Duration `yaml:"restart_delay"`
}

// Credentials is one SSID/password pair.
type Credentials struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

// NTPConfig configures time synchronization. Servers are tried in order and
// the scan always restarts at the first entry on a resync.
type NTPConfig struct {
	Servers       []string      `yaml:"servers"`
	OffsetSeconds int           `yaml:"offset_seconds"`
	Timeout       time.Duration `yaml:"timeout"`
}

// WeatherConfig configures the remote weather source and its staleness policy.
// The forecast is refetched every ForecastMultiple current-conditions
// intervals, since forecasts change more slowly.
type WeatherConfig struct {
	Host             string        `yaml:"host"`
	City             string        `yaml:"city"`
	APIKey           string        `yaml:"api_key"`
	Units            string        `yaml:"units"`
	Lang             string        `yaml:"lang"`
	Interval         time.Duration `yaml:"interval"`
	ForecastMultiple int           `yaml:"forecast_multiple"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
}

// InputConfig holds the analog keypad classification thresholds. A raw sample
// above Idle means no button; otherwise the first threshold the sample exceeds
// selects the button.
type InputConfig struct {
	Idle   uint16 `yaml:"idle"`
	Select uint16 `yaml:"select"`
	Left   uint16 `yaml:"left"`
	Down   uint16 `yaml:"down"`
	Up     uint16 `yaml:"up"`
}

// LoopConfig holds the control-loop cadences.
type LoopConfig struct {
	Tick              time.Duration `yaml:"tick"`
	ButtonPoll        time.Duration `yaml:"button_poll"`
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`
}

// Default returns the reference-firmware configuration.
func Default() *Config {
	return &Config{
		WiFi: WiFiConfig{
			JoinTimeout:  10 * time.Second,
			RestartDelay: 10 * time.Second,
		},
		NTP: NTPConfig{
			Servers: []string{
				"a.ntp.br", "b.ntp.br", "c.ntp.br",
				"time.nist.gov",
				"pool.ntp.org",
			},
			OffsetSeconds: -3 * 3600, // UTC-3
			Timeout:       2 * time.Second,
		},
		Weather: WeatherConfig{
			Host:             "api.openweathermap.org",
			Units:            "metric",
			Lang:             "pt_br",
			Interval:         10 * time.Minute,
			ForecastMultiple: 4,
			FetchTimeout:     5 * time.Second,
		},
		Input: InputConfig{
			Idle:   1010,
			Select: 900,
			Left:   600,
			Down:   300,
			Up:     100,
		},
		Loop: LoopConfig{
			Tick:              250 * time.Millisecond,
			ButtonPoll:        666 * time.Millisecond,
			InactivityTimeout: 60 * time.Second,
		},
	}
}

// Load reads path and overlays it on the defaults.
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.NTP.Servers) == 0 {
		return fmt.Errorf("ntp: at least one server is required")
	}
	if c.Weather.ForecastMultiple < 1 {
		return fmt.Errorf("weather: forecast_multiple must be at least 1")
	}
	if c.Weather.Interval <= 0 {
		return fmt.Errorf("weather: interval must be positive")
	}
	if c.Loop.Tick <= 0 || c.Loop.ButtonPoll <= 0 || c.Loop.InactivityTimeout <= 0 {
		return fmt.Errorf("loop: cadences must be positive")
	}
	if !(c.Input.Idle > c.Input.Select && c.Input.Select > c.Input.Left &&
		c.Input.Left > c.Input.Down && c.Input.Down > c.Input.Up) {
		return fmt.Errorf("input: thresholds must be strictly decreasing idle > select > left > down > up")
	}
	return nil
}

// Runs the weather clock on a development host with a simulated panel.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ajanata/weatherclock"
	"github.com/ajanata/weatherclock/internal/config"
	"github.com/ajanata/weatherclock/internal/ntp"
	"github.com/ajanata/weatherclock/internal/openweather"
	"github.com/ajanata/weatherclock/internal/sim"
)

// resyncInterval is how often the clock revalidates against its server.
const resyncInterval = time.Minute

func main() {
	configPath := flag.String("config", "", "path to a yaml config file; built-in defaults apply when empty")
	debug := flag.Bool("debug", false, "log debug messages")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		cfg.Weather.APIKey = key
	}

	clock := ntp.New(cfg.NTP.OffsetSeconds, cfg.NTP.Timeout, resyncInterval)
	weather := openweather.New(cfg.Weather, cfg.NTP.OffsetSeconds)
	driver := sim.New(cfg, clock, weather)

	// tcell owns the terminal once the simulator is up, so log to a file.
	logFile, err := os.Create("weatherclock.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	c, err := weatherclock.New(cfg, driver, &fileLogger{
		log:   log.New(logFile, "", log.Ltime|log.Lmicroseconds),
		debug: *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := c.Init(); err != nil {
		driver.Restart(fmt.Sprintf("init: %v", err))
	}
	c.Run()
}

type fileLogger struct {
	log   *log.Logger
	debug bool
}

func (l *fileLogger) Debug(msg string) {
	if l.debug {
		l.log.Print("DEBUG ", msg)
	}
}

func (l *fileLogger) Debugf(format string, v ...any) {
	if l.debug {
		l.log.Printf("DEBUG "+format, v...)
	}
}

func (l *fileLogger) Info(msg string) {
	l.log.Print("INFO  ", msg)
}

func (l *fileLogger) Infof(format string, v ...any) {
	l.log.Printf("INFO  "+format, v...)
}

package weatherclock

import (
	"time"

	"github.com/ajanata/weatherclock/internal/config"
)

// Keypad turns raw analog samples from the shield's resistor-ladder buttons
// into debounced Button events. Classification is a straight threshold walk
// over the configured table; debouncing is done by polling at a fixed cadence
// slower than the control loop, so a press held across several ticks yields a
// single event per poll window rather than one per tick.
type Keypad struct {
	thresholds config.InputConfig
	cadence    time.Duration
	lastPoll   time.Time
}

func NewKeypad(thresholds config.InputConfig, cadence time.Duration) *Keypad {
	return &Keypad{
		thresholds: thresholds,
		cadence:    cadence,
	}
}

// Classify maps one raw sample to a button code using the threshold table.
func (k *Keypad) Classify(raw uint16) Button {
	t := k.thresholds
	switch {
	case raw > t.Idle:
		return ButtonNone
	case raw > t.Select:
		return ButtonSelect
	case raw > t.Left:
		return ButtonLeft
	case raw > t.Down:
		return ButtonDown
	case raw > t.Up:
		return ButtonUp
	default:
		return ButtonRight
	}
}

// Poll samples the keypad if the poll cadence has elapsed, otherwise reports
// ButtonNone without reading the sensor.
func (k *Keypad) Poll(now time.Time, read func() uint16) Button {
	if now.Sub(k.lastPoll) < k.cadence {
		return ButtonNone
	}
	k.lastPoll = now
	return k.Classify(read())
}

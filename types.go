package weatherclock

// Button is a decoded keypad button. The raw analog sample from the shield is
// classified into one of these by the Keypad; navigation only ever sees the
// decoded value.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonSelect
	ButtonLeft
	ButtonDown
	ButtonUp
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonSelect:
		return "select"
	case ButtonLeft:
		return "left"
	case ButtonDown:
		return "down"
	case ButtonUp:
		return "up"
	case ButtonRight:
		return "right"
	default:
		return "INVALID"
	}
}

// Screen is the primary screen selector. The range is signed on purpose: the
// clock sits at 0 so the inactivity snap-back lands there, with the
// informational screens below it and the weather screens above it. Navigation
// wraps cyclically at both ends.
type Screen int8

const (
	ScreenNTPInfo Screen = iota - 2
	ScreenNetworkInfo
	ScreenClock
	ScreenDate
	ScreenWeather
	ScreenForecast
)

const (
	minScreen = ScreenNTPInfo
	maxScreen = ScreenForecast
)

func (s Screen) String() string {
	switch s {
	case ScreenNTPInfo:
		return "ntp-info"
	case ScreenNetworkInfo:
		return "network-info"
	case ScreenClock:
		return "clock"
	case ScreenDate:
		return "date"
	case ScreenWeather:
		return "weather"
	case ScreenForecast:
		return "forecast"
	default:
		return "INVALID"
	}
}

// wrapScreen maps any integer onto the cyclic screen range.
func wrapScreen(i int) Screen {
	span := int(maxScreen) - int(minScreen) + 1
	i -= int(minScreen)
	i = ((i % span) + span) % span
	return Screen(i + int(minScreen))
}

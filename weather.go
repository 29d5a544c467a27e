package weatherclock

import "context"

// ForecastSlots is the number of forecast entries held at a time: eight
// 3-hour slots, one day ahead.
const ForecastSlots = 8

// CurrentConditions is the decoded current-weather record. Missing fields in
// the remote payload decode to zero values; renderers treat the zero
// Description as "no text" rather than failing.
type CurrentConditions struct {
	Temperature float64 // degrees, in the configured units
	FeelsLike   float64
	Humidity    int // percent
	Pressure    int // hPa
	Description string
}

// ForecastEntry is one 3-hour forecast slot.
type ForecastEntry struct {
	Timestamp   int64 // local epoch seconds of the slot start
	TempMin     float64
	TempMax     float64
	Pressure    int
	Humidity    int
	Pop         float64 // probability of precipitation, 0..1
	Rain        float64 // rain volume over the slot, mm
	Description string
}

// ForecastSet is a complete forecast. It is replaced wholesale on each
// successful fetch; there is no partial merge.
type ForecastSet [ForecastSlots]ForecastEntry

// WeatherSource is the external weather collaborator. Calls block, bounded by
// the context deadline; there is no mid-fetch cancellation beyond it.
type WeatherSource interface {
	Current(ctx context.Context) (CurrentConditions, error)
	Forecast(ctx context.Context) (ForecastSet, error)
}

// snapshot carries the staleness bookkeeping for one data kind. When valid is
// false the associated fields have never been fetched successfully and must
// not be rendered.
type snapshot struct {
	lastFetch int64
	valid     bool
}

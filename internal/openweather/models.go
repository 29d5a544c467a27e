package openweather

// Wire payloads for the two endpoints we use. Only the fields the display
// renders are declared; anything absent in a response decodes to its zero
// value, which is exactly the per-field fallback the renderers expect.

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type conditionBlock struct {
	Description string `json:"description"`
}

type currentPayload struct {
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
}

type rainBlock struct {
	ThreeHours float64 `json:"3h"`
}

type forecastItem struct {
	Dt      int64            `json:"dt"`
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
	Pop     float64          `json:"pop"`
	Rain    rainBlock        `json:"rain"`
}

type forecastPayload struct {
	List []forecastItem `json:"list"`
}

package weatherclock

// Freshness decides whether one data kind is due for a refetch. Each kind
// carries its own policy; the forecast interval is a multiple of the
// current-conditions interval since forecasts change more slowly.
//
// The caller must stamp lastFetch with the fetch-initiation time as soon as
// the remote call returns, whether or not it succeeded. That single rule
// bounds the request rate under persistent failure: a failed fetch waits a
// full interval, it is never retried immediately.
type Freshness struct {
	Interval int64 // seconds
}

// Due reports whether more than the interval has elapsed. The boundary is
// strict: exactly Interval seconds since the last fetch is not yet due.
func (f Freshness) Due(now, lastFetch int64) bool {
	return now-lastFetch > f.Interval
}

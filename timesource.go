package weatherclock

import "errors"

// ErrSyncExhausted is returned when no server in the configured list produced
// a valid time. The caller treats it as fatal: every render and freshness
// decision depends on a valid "now", so the device restarts rather than run
// with unknown time.
var ErrSyncExhausted = errors.New("no time server responded")

// SyncClient is the external time-sync collaborator. It mirrors the firmware
// NTP client surface: one active server at a time, begin/update lifecycle, and
// polled sync state.
type SyncClient interface {
	SetServer(host string)
	Begin()
	// Update performs a bounded-time protocol exchange with the active server
	// if one is due, and reports whether the client currently holds valid
	// time. Cheap to call every tick.
	Update() bool
	IsTimeSet() bool
	// EpochTime returns the current local epoch seconds (offset applied).
	EpochTime() int64
	// Weekday returns the current day of week, 0 = Sunday. Supplied here
	// rather than computed from the calendar conversion.
	Weekday() int
}

// TimeSource owns the active time-server selection and the synchronized
// clock. Mutated only by the control loop.
type TimeSource struct {
	client  SyncClient
	servers []string
	log     Logger

	active   int // index into servers, -1 when unsynced
	lastSync int64
	synced   bool
}

func NewTimeSource(client SyncClient, servers []string, log Logger) *TimeSource {
	return &TimeSource{
		client:  client,
		servers: servers,
		log:     log,
		active:  -1,
	}
}

// TrySync walks the server list in order and keeps the first server that
// returns a valid time. There is no retry or backoff within one call, and the
// walk always starts at index 0: after a mid-run desync the previously
// successful server is retried first, since it is the most likely to still
// work. On exhaustion the source is left unsynced and ErrSyncExhausted is
// returned.
func (t *TimeSource) TrySync() (int, error) {
	for i, host := range t.servers {
		t.client.SetServer(host)
		t.client.Begin()
		if t.client.Update() {
			t.log.Infof("time sync ok: %s", host)
			t.active = i
			t.synced = true
			t.lastSync = t.client.EpochTime()
			return i, nil
		}
		t.log.Infof("time sync failed: %s", host)
	}
	t.active = -1
	t.synced = false
	return -1, ErrSyncExhausted
}

// Poll is called once per control-loop tick. It lets the client refresh
// itself, and if the client reports its time unset (drift, missed periodic
// refresh), reruns the full sync scan. Only exhaustion of the list escalates
// to an error.
func (t *TimeSource) Poll() error {
	t.client.Update()
	if t.client.IsTimeSet() {
		return nil
	}
	t.synced = false
	_, err := t.TrySync()
	return err
}

// Now returns the current local epoch seconds.
func (t *TimeSource) Now() int64 { return t.client.EpochTime() }

// Weekday returns the current day of week, 0 = Sunday.
func (t *TimeSource) Weekday() int { return t.client.Weekday() }

func (t *TimeSource) Synced() bool { return t.synced }

// ActiveServer returns the hostname that last synced successfully.
func (t *TimeSource) ActiveServer() (string, bool) {
	if !t.synced || t.active < 0 || t.active >= len(t.servers) {
		return "", false
	}
	return t.servers[t.active], true
}

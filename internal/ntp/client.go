// Package ntp is a minimal SNTP client implementing the time-sync
// collaborator: one active server at a time, a begin/update lifecycle, and a
// local-epoch clock that keeps counting between exchanges. Waits for the
// server reply poll in short slices and invoke an injectable yield hook, so a
// cooperative caller can let its network stack breathe without implying any
// concurrency.
package ntp

import (
	"encoding/binary"
	"net"
	"time"
)

// Seconds between the NTP epoch (1900) and the Unix epoch (1970).
const ntpUnixDelta = 2208988800

const pollSlice = 50 * time.Millisecond

// Client implements weatherclock.SyncClient. Not safe for concurrent use;
// the control loop is its only caller.
type Client struct {
	server         string
	port           string
	offset         int64
	timeout        time.Duration
	updateInterval time.Duration

	// Yield is invoked between reply polls during an exchange. Defaults to a
	// no-op; firmware wiring points it at the network stack's bookkeeping.
	Yield func()

	timeSet   bool
	lastEpoch int64 // UTC epoch seconds at lastSync
	lastSync  time.Time
}

// New creates a client with the given display offset from UTC and per-exchange
// timeout. The client refreshes itself at most once per updateInterval.
func New(offsetSeconds int, timeout, updateInterval time.Duration) *Client {
	return &Client{
		port:           "123",
		offset:         int64(offsetSeconds),
		timeout:        timeout,
		updateInterval: updateInterval,
		Yield:          func() {},
	}
}

// SetServer selects the active server for subsequent exchanges.
func (c *Client) SetServer(host string) {
	c.server = host
}

// Begin resets the exchange state for the active server.
func (c *Client) Begin() {
	// Force the next Update to perform a real exchange.
	c.lastSync = time.Time{}
}

// Update performs an exchange if one is due and reports whether the client
// currently holds valid time. Between intervals it is a cheap clock read.
func (c *Client) Update() bool {
	if c.timeSet && !c.lastSync.IsZero() && time.Since(c.lastSync) < c.updateInterval {
		return true
	}
	if c.exchange() {
		return true
	}
	// A failed refresh keeps the last good time for a while; only when
	// refreshes keep failing does the clock report unset, which sends the
	// caller back through the full server scan.
	if c.timeSet && time.Since(c.lastSync) > 4*c.updateInterval {
		c.timeSet = false
	}
	return false
}

func (c *Client) IsTimeSet() bool { return c.timeSet }

// EpochTime returns local epoch seconds, extrapolated from the last exchange.
func (c *Client) EpochTime() int64 {
	if !c.timeSet {
		return 0
	}
	return c.lastEpoch + c.offset + int64(time.Since(c.lastSync)/time.Second)
}

// Weekday returns the current local day of week, 0 = Sunday. The Unix epoch
// began on a Thursday.
func (c *Client) Weekday() int {
	return int((c.EpochTime()/86400 + 4) % 7)
}

// exchange sends one request to the active server and waits, in yield-sliced
// steps bounded by the timeout, for the reply.
func (c *Client) exchange() bool {
	if c.server == "" {
		return false
	}
	conn, err := net.Dial("udp", net.JoinHostPort(c.server, c.port))
	if err != nil {
		return false
	}
	defer conn.Close()

	req := make([]byte, 48)
	req[0] = 0xE3 // LI unknown, version 4, client mode
	if _, err := conn.Write(req); err != nil {
		return false
	}

	resp := make([]byte, 48)
	deadline := time.Now().Add(c.timeout)
	for {
		if time.Now().After(deadline) {
			return false
		}
		_ = conn.SetReadDeadline(time.Now().Add(pollSlice))
		n, err := conn.Read(resp)
		if err == nil && n >= 44 {
			break
		}
		if err != nil {
			if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
				return false
			}
		}
		c.Yield()
	}

	secs := int64(binary.BigEndian.Uint32(resp[40:44]))
	if secs <= ntpUnixDelta {
		return false
	}
	c.lastEpoch = secs - ntpUnixDelta
	c.lastSync = time.Now()
	c.timeSet = true
	return true
}

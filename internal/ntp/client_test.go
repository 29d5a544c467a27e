package ntp

import (
	"encoding/binary"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

// fakeServer answers SNTP requests on loopback with the given epoch, or stays
// silent when mute.
func fakeServer(t *testing.T, epoch int64, mute bool) (host, port string) {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = pc.Close() })

	go func() {
		buf := make([]byte, 64)
		for {
			n, addr, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			if mute || n < 48 {
				continue
			}
			resp := make([]byte, 48)
			binary.BigEndian.PutUint32(resp[40:44], uint32(epoch+ntpUnixDelta))
			_, _ = pc.WriteTo(resp, addr)
		}
	}()

	hp := pc.LocalAddr().String()
	i := strings.LastIndex(hp, ":")
	return hp[:i], hp[i+1:]
}

func newTestClient(offset int) *Client {
	c := New(offset, 500*time.Millisecond, time.Minute)
	return c
}

func TestExchangeSetsTime(t *testing.T) {
	const epoch = 1700000000
	host, port := fakeServer(t, epoch, false)

	c := newTestClient(-10800)
	c.port = port
	c.SetServer(host)
	c.Begin()
	if !c.Update() {
		t.Fatal("Update failed against live fake server")
	}
	if !c.IsTimeSet() {
		t.Fatal("IsTimeSet false after successful update")
	}
	got := c.EpochTime()
	if got < epoch-10800 || got > epoch-10800+2 {
		t.Fatalf("EpochTime = %d, want about %d", got, epoch-10800)
	}
}

func TestUpdateTimeoutOnSilentServer(t *testing.T) {
	host, port := fakeServer(t, 0, true)

	yields := 0
	c := newTestClient(0)
	c.port = port
	c.Yield = func() { yields++ }
	c.SetServer(host)
	c.Begin()

	start := time.Now()
	if c.Update() {
		t.Fatal("Update succeeded against a silent server")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not bounded: %v", elapsed)
	}
	if yields == 0 {
		t.Fatal("yield hook never invoked during the wait")
	}
	if c.IsTimeSet() {
		t.Fatal("time set despite timeout")
	}
}

func TestUpdateIsCheapWithinInterval(t *testing.T) {
	host, port := fakeServer(t, 1700000000, false)
	c := newTestClient(0)
	c.port = port
	c.SetServer(host)
	c.Begin()
	if !c.Update() {
		t.Fatal("initial update failed")
	}
	// Point at a dead server; within the interval no exchange happens.
	c.server = "127.0.0.1"
	c.port = strconv.Itoa(1) // nothing listens here
	if !c.Update() {
		t.Fatal("second update within the interval should be a clock read")
	}
}

func TestWeekday(t *testing.T) {
	c := newTestClient(0)
	c.timeSet = true
	c.lastSync = time.Now()
	// 1970-01-01 was a Thursday.
	c.lastEpoch = 0
	if got := c.Weekday(); got != 4 {
		t.Fatalf("Weekday at epoch 0 = %d, want 4", got)
	}
	// 2023-11-14 (epoch 1700000000 is a Tuesday, UTC).
	c.lastEpoch = 1700000000
	if got := c.Weekday(); got != 2 {
		t.Fatalf("Weekday = %d, want 2", got)
	}
}

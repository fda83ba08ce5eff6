// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import (
	"testing"
	"time"
)

// fakeClock drives the stage-gate timing without sleeping
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestDriver(transport Transport, opts Options) (*Driver, *fakeClock) {
	d := NewDriver(transport, opts)
	clock := &fakeClock{t: time.Unix(1000000, 0)}
	d.now = clock.Now
	d.SetStage(d.Stage()) // restamp the gate with the fake clock
	return d, clock
}

func TestSequencerAutoConfigOff(t *testing.T) {
	lb := NewLoopbackTransport()
	d, _ := newTestDriver(lb, Options{AutoBaud: false, AutoConfig: false, BaudRateIndex: 0})

	d.Tick() // INITIALIZING -> CHANGE_BAUD
	d.Tick() // CHANGE_BAUD -> CHECK_VERSION (autobaud off)
	if d.Stage() != StageCheckVersion {
		t.Fatalf("stage = %v, expected CHECK_VERSION", d.Stage())
	}

	d.Tick()
	if d.Stage() != StageReceivingData {
		t.Errorf("stage = %v, expected RECEIVING_DATA on first configure tick", d.Stage())
	}
	if len(lb.Sent()) != 0 {
		t.Errorf("no configuration bytes should be sent, got %q", lb.Sent())
	}
	if got := lb.BaudChanges(); len(got) != 1 || got[0] != 115200 {
		t.Errorf("BaudChanges = %v, expected [115200]", got)
	}
}

func TestSequencerAutoBaudCycle(t *testing.T) {
	lb := NewLoopbackTransport()
	d, clock := newTestDriver(lb, Options{AutoBaud: true, AutoConfig: false, Provider: ProviderMTK, BaudRateIndex: 0})

	d.Tick() // INITIALIZING -> CHANGE_BAUD

	for hop := 0; hop < len(BaudRates); hop++ {
		// Gate not yet elapsed: nothing happens
		d.Tick()
		if n := len(lb.Sent()); n != hop*len(mtkBaudCommands[0]) {
			t.Fatalf("hop %d: sent %d bytes before the 200ms gate", hop, n)
		}

		clock.Advance(250 * time.Millisecond)
		d.Tick()
		lb.Drain()
	}

	want := append([]int(nil), BaudRates...)
	got := lb.BaudChanges()
	if len(got) != len(want) {
		t.Fatalf("BaudChanges = %v, expected all of %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BaudChanges[%d] = %d, expected %d", i, got[i], want[i])
		}
	}

	// Every hop transmits the set-baud command for the target rate
	expected := ""
	for range BaudRates {
		expected += mtkBaudCommands[0]
	}
	if string(lb.Sent()) != expected {
		t.Errorf("sent %q, expected six copies of %q", lb.Sent(), mtkBaudCommands[0])
	}

	// Candidates exhausted: next tick settles on the target rate
	clock.Advance(250 * time.Millisecond)
	d.Tick()
	if d.Stage() != StageCheckVersion {
		t.Errorf("stage = %v, expected CHECK_VERSION", d.Stage())
	}
	bauds := lb.BaudChanges()
	if bauds[len(bauds)-1] != 115200 {
		t.Errorf("final baud = %d, expected target 115200", bauds[len(bauds)-1])
	}
}

func TestSequencerAutoBaudWaitsForFlush(t *testing.T) {
	lb := NewLoopbackTransport()
	d, clock := newTestDriver(lb, Options{AutoBaud: true, AutoConfig: false, Provider: ProviderSiRF, BaudRateIndex: 2})

	d.Tick()
	clock.Advance(250 * time.Millisecond)
	d.Tick()
	if len(lb.BaudChanges()) != 1 {
		t.Fatal("first hop should fire")
	}

	// Previous command still pending: the next hop must hold off even
	// though the gate has elapsed
	clock.Advance(250 * time.Millisecond)
	d.Tick()
	if len(lb.BaudChanges()) != 1 {
		t.Error("hop fired while the transmit queue was not flushed")
	}

	lb.Drain()
	d.Tick()
	if len(lb.BaudChanges()) != 2 {
		t.Error("hop should fire once the queue flushed")
	}

	if string(lb.Sent()) != srfBaudCommands[2]+srfBaudCommands[2] {
		t.Errorf("sent %q, expected two copies of %q", lb.Sent(), srfBaudCommands[2])
	}
}

func TestSequencerPacedTransmission(t *testing.T) {
	lb := NewLoopbackTransport()
	d, clock := newTestDriver(lb, Options{AutoBaud: false, AutoConfig: true, Provider: ProviderSiRF, BaudRateIndex: 4})

	d.Tick() // INITIALIZING -> CHANGE_BAUD
	d.Tick() // CHANGE_BAUD -> CHECK_VERSION
	if d.Stage() != StageCheckVersion {
		t.Fatalf("stage = %v, expected CHECK_VERSION", d.Stage())
	}

	// Offer only 1-2 bytes of headroom per tick; the command must go out
	// exactly once, the step advancing only after the queue drains
	cmd := srfUpdateRate5Hz
	for i := 0; i < 100 && d.Stage() != StageReceivingData; i++ {
		clock.Advance(400 * time.Millisecond)
		lb.SetTxHeadroom(1 + i%2)
		d.Tick()
		lb.Drain()
	}

	if d.Stage() != StageReceivingData {
		t.Fatalf("stage = %v, expected RECEIVING_DATA", d.Stage())
	}
	if string(lb.Sent()) != cmd {
		t.Errorf("sent %q, expected exactly one copy of %q", lb.Sent(), cmd)
	}
}

func TestSequencerMTKConfigure(t *testing.T) {
	lb := NewLoopbackTransport()
	d, clock := newTestDriver(lb, Options{AutoBaud: false, AutoConfig: true, Provider: ProviderMTK, BaudRateIndex: 0})

	d.Tick()
	d.Tick()

	for i := 0; i < 100 && d.Stage() != StageReceivingData; i++ {
		clock.Advance(400 * time.Millisecond)
		d.Tick()
		lb.Drain()
	}

	if d.Stage() != StageReceivingData {
		t.Fatalf("stage = %v, expected RECEIVING_DATA", d.Stage())
	}

	// Four-step bring-up: report rate, its confirmation, update rate, its
	// confirmation
	expected := mtkReportRate5Hz + mtkReportRate5Hz + mtkUpdateRate5Hz + mtkUpdateRate5Hz
	if string(lb.Sent()) != expected {
		t.Errorf("sent %q, expected %q", lb.Sent(), expected)
	}
}

func TestSequencerConfigureGate(t *testing.T) {
	lb := NewLoopbackTransport()
	d, clock := newTestDriver(lb, Options{AutoBaud: false, AutoConfig: true, Provider: ProviderSiRF, BaudRateIndex: 0})

	d.Tick()
	d.Tick()

	// Inside the 300ms settle window nothing may be transmitted
	clock.Advance(100 * time.Millisecond)
	d.Tick()
	if len(lb.Sent()) != 0 {
		t.Errorf("sent %q before the settle delay elapsed", lb.Sent())
	}

	clock.Advance(300 * time.Millisecond)
	d.Tick()
	if len(lb.Sent()) == 0 {
		t.Error("nothing sent after the settle delay elapsed")
	}
}

func TestSequencerStageChangeAbandonsStep(t *testing.T) {
	lb := NewLoopbackTransport()
	d, clock := newTestDriver(lb, Options{AutoBaud: false, AutoConfig: true, Provider: ProviderMTK, BaudRateIndex: 0})

	d.Tick()
	d.Tick()
	clock.Advance(400 * time.Millisecond)
	lb.SetTxHeadroom(3)
	d.Tick() // partial transmit of the first command
	if d.cmdCursor == 0 {
		t.Fatal("setup: expected a partial transmit in progress")
	}

	d.SetStage(StageChangeBaud)
	if d.cmdCursor != 0 || d.configStep != 0 {
		t.Error("a genuine stage change must abandon the in-progress step")
	}
}

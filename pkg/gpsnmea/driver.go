// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import "time"

// Driver owns one GPS port: the decoder, the shared solution and the
// configuration state machine. It is single-writer; Tick must be called
// from one goroutine
type Driver struct {
	transport Transport
	opts      Options

	Solution *Solution
	Stats    *Statistics

	decoder *Decoder

	stage           Stage
	lastStageSwitch time.Time
	configStep      int
	cmdCursor       int
	autoBaudIndex   int

	// now is swappable so stage-gate timing is testable without sleeping
	now func() time.Time
}

// NewDriver creates a driver over the given transport
func NewDriver(transport Transport, opts Options) *Driver {
	solution := &Solution{}
	stats := NewStatistics()
	d := &Driver{
		transport: transport,
		opts:      opts,
		Solution:  solution,
		Stats:     stats,
		decoder:   NewDecoder(solution, stats),
		now:       time.Now,
	}
	d.SetStage(StageInitializing)
	return d
}

// Stage returns the current configuration stage
func (d *Driver) Stage() Stage {
	return d.stage
}

// SetStage transitions the configuration state machine. A self-transition
// (including between the two configure stages) only refreshes the elapsed
// time gate; a genuine stage change also abandons any in-progress
// configuration step and its transmit cursor
func (d *Driver) SetStage(stage Stage) {
	if stage != d.stage && !(configureStage(stage) && configureStage(d.stage)) {
		d.configStep = 0
		d.cmdCursor = 0
	}
	d.stage = stage
	d.lastStageSwitch = d.now()
}

func configureStage(s Stage) bool {
	return s == StageCheckVersion || s == StageConfigure
}

// Tick runs one scheduler step: drain every byte currently available
// through the decoder, then dispatch on the configuration stage. Never
// blocks. Returns whether a new fix became available this tick
func (d *Driver) Tick() bool {
	hasNewData := d.receive()

	switch d.stage {
	case StageInitializing:
		return d.initialize()

	case StageChangeBaud:
		return d.changeBaud()

	case StageCheckVersion, StageConfigure:
		if !d.opts.AutoConfig {
			d.SetStage(StageReceivingData)
			return false
		}
		if d.opts.Provider == ProviderSiRF {
			return d.configureSiRF()
		}
		return d.configureMTK()

	case StageReceivingData:
		return hasNewData

	default:
		return false
	}
}

// receive drains the transport through the decoder; commits toggle the
// heartbeat and clear the velocity validity flags
func (d *Driver) receive() bool {
	hasNewData := false
	for d.transport.RxBytesWaiting() > 0 {
		c, ok := d.transport.ReadByte()
		if !ok {
			break
		}
		if d.decoder.Feed(c) {
			d.Solution.Flags.Heartbeat = !d.Solution.Flags.Heartbeat
			d.Solution.Flags.ValidVelNE = false
			d.Solution.Flags.ValidVelD = false
			hasNewData = true
		}
	}
	return hasNewData
}

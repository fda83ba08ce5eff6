// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import "time"

const (
	baudChangeDelay   = 200 * time.Millisecond
	configSettleDelay = 300 * time.Millisecond
)

func (d *Driver) initialize() bool {
	d.SetStage(StageChangeBaud)
	return false
}

// changeBaud cycles the candidate baud table when autobaud is enabled,
// transmitting the set-baud command for the target rate at each candidate
// rate. Each hop waits for the previous command to flush so it goes out
// at a single line rate
func (d *Driver) changeBaud() bool {
	if d.opts.AutoBaud && d.autoBaudIndex < len(BaudRates) {
		if d.now().Sub(d.lastStageSwitch) >= baudChangeDelay && d.transport.TxBufferEmpty() {
			d.transport.SetBaudRate(BaudRates[d.autoBaudIndex])
			if d.opts.Provider == ProviderSiRF {
				d.transport.WriteString(srfBaudCommands[d.opts.BaudRateIndex])
			} else {
				d.transport.WriteString(mtkBaudCommands[d.opts.BaudRateIndex])
			}
			d.autoBaudIndex++
			d.SetStage(StageChangeBaud) // reset the elapsed-time gate
		}
	} else {
		d.finalizeChangeBaud()
	}
	return false
}

// finalizeChangeBaud settles the port on the configured target rate and
// hands off to the configuration stages
func (d *Driver) finalizeChangeBaud() {
	d.transport.SetBaudRate(BaudRates[d.opts.BaudRateIndex])
	d.SetStage(StageCheckVersion)
}

// transmitConfigCommand writes as much of cmd as the transport will take
// this tick, resuming from a persistent cursor. The step advances only
// once the cursor is exhausted and the transmit queue has drained
func (d *Driver) transmitConfigCommand(cmd string) bool {
	for d.transport.TxBytesFree() > 0 {
		if d.cmdCursor < len(cmd) {
			d.transport.WriteByte(cmd[d.cmdCursor])
			d.cmdCursor++
		} else if d.transport.TxBufferEmpty() {
			d.configStep++
			d.cmdCursor = 0
			d.SetStage(StageConfigure)
			return true
		} else {
			return false
		}
	}
	return false
}

// configureMTK runs the four-step MTK bring-up: report rate, confirm,
// update rate, confirm
func (d *Driver) configureMTK() bool {
	if d.now().Sub(d.lastStageSwitch) < configSettleDelay {
		return false
	}
	switch d.configStep {
	case 0:
		d.transmitConfigCommand(mtkReportRate5Hz)
	case 1:
		if d.transport.TxBufferEmpty() {
			d.transport.WriteString(mtkReportRate5Hz)
			d.configStep++
			d.SetStage(StageConfigure) // reset the settle gate
		}
	case 2:
		d.transmitConfigCommand(mtkUpdateRate5Hz)
	case 3:
		if d.transport.TxBufferEmpty() {
			d.transport.WriteString(mtkUpdateRate5Hz)
			d.configStep++
			d.SetStage(StageConfigure)
		}
	default:
		d.SetStage(StageReceivingData)
	}
	return false
}

// configureSiRF runs the single-step SiRF bring-up
func (d *Driver) configureSiRF() bool {
	if d.now().Sub(d.lastStageSwitch) < configSettleDelay {
		return false
	}
	switch d.configStep {
	case 0:
		d.transmitConfigCommand(srfUpdateRate5Hz)
	default:
		d.SetStage(StageReceivingData)
	}
	return false
}

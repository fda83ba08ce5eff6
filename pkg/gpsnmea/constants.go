// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

// Package gpsnmea implements an incremental NMEA 0183 GPS driver: a
// byte-at-a-time sentence decoder with checksum verification, a fix
// aggregator, and an autobaud/autoconfigure sequencer for MTK and SiRF
// receivers.
package gpsnmea

// Sentence framing bytes
const (
	StartByte          = '$'
	FieldDelimiter     = ','
	ChecksumIntroducer = '*'
)

// FieldBufferSize is the capacity of the per-field scratch buffer. Field
// bytes beyond capacity are dropped from storage but still folded into the
// running parity so the checksum accounting matches the wire.
const FieldBufferSize = 16

// sentenceKind identifies the sentence currently being decoded
type sentenceKind int

const (
	frameNone sentenceKind = iota
	frameGGA               // GPGGA / GNGGA fix data
	frameRMC               // GPRMC / GNRMC recommended minimum
)

// FixType describes the quality of the current navigation solution
type FixType uint8

const (
	FixNone FixType = iota
	Fix2D
	Fix3D
)

// String returns a human-readable fix type
func (f FixType) String() string {
	switch f {
	case Fix2D:
		return "2D"
	case Fix3D:
		return "3D"
	default:
		return "NO FIX"
	}
}

// Stage is the driver's configuration state machine stage
type Stage int

const (
	StageUnknown Stage = iota
	StageInitializing
	StageChangeBaud
	StageCheckVersion
	StageConfigure
	StageReceivingData
)

// String returns a human-readable stage name
func (s Stage) String() string {
	switch s {
	case StageInitializing:
		return "INITIALIZING"
	case StageChangeBaud:
		return "CHANGE_BAUD"
	case StageCheckVersion:
		return "CHECK_VERSION"
	case StageConfigure:
		return "CONFIGURE"
	case StageReceivingData:
		return "RECEIVING_DATA"
	default:
		return "UNKNOWN"
	}
}

// Provider selects the receiver vendor command set used during configuration
type Provider int

const (
	ProviderMTK Provider = iota
	ProviderSiRF
)

// String returns a human-readable provider name
func (p Provider) String() string {
	switch p {
	case ProviderSiRF:
		return "SIRF"
	default:
		return "MTK"
	}
}

// Options controls driver behavior for a single port
type Options struct {
	// AutoBaud cycles the candidate baud table during CHANGE_BAUD,
	// transmitting a set-baud command at each candidate rate
	AutoBaud bool

	// AutoConfig runs the provider configuration sequence after the baud
	// change; when false the driver goes straight to receiving data
	AutoConfig bool

	// Provider selects the vendor command set (MTK or SiRF)
	Provider Provider

	// BaudRateIndex is the index into BaudRates of the target rate
	BaudRateIndex int
}

// Scaling and clamping constants for derived solution fields
const (
	hdopMax             = 9999
	epeMax              = 9999
	hdopToEphMultiplier = 2
	knotsToCmPerSecond  = 5144 // 1 kt = 51.44 cm/s, applied as x*5144/1000
)

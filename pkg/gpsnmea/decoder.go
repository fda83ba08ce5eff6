// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

// fieldKey addresses one field setter by sentence kind and field index
type fieldKey struct {
	kind  sentenceKind
	index int
}

// fieldSetters dispatches a terminated field into the in-progress sample.
// Field 0 (classification) is handled separately in Feed
var fieldSetters = map[fieldKey]func(*fixSample, string){
	{frameGGA, 2}: func(m *fixSample, f string) {
		m.latitude = int32(CoordToDegrees(f))
	},
	{frameGGA, 3}: func(m *fixSample, f string) {
		if len(f) > 0 && f[0] == 'S' {
			m.latitude = -m.latitude
		}
	},
	{frameGGA, 4}: func(m *fixSample, f string) {
		m.longitude = int32(CoordToDegrees(f))
	},
	{frameGGA, 5}: func(m *fixSample, f string) {
		if len(f) > 0 && f[0] == 'W' {
			m.longitude = -m.longitude
		}
	},
	{frameGGA, 6}: func(m *fixSample, f string) {
		m.fix = len(f) > 0 && f[0] > '0'
	},
	{frameGGA, 7}: func(m *fixSample, f string) {
		m.numSat = uint8(GrabFields(f, 0))
	},
	{frameGGA, 8}: func(m *fixSample, f string) {
		m.hdop = uint16(GrabFields(f, 1) * 10)
	},
	{frameGGA, 9}: func(m *fixSample, f string) {
		m.altitude = uint16(GrabFields(f, 1) * 10)
	},
	{frameRMC, 7}: func(m *fixSample, f string) {
		m.speed = uint16(GrabFields(f, 1) * knotsToCmPerSecond / 1000)
	},
	{frameRMC, 8}: func(m *fixSample, f string) {
		m.groundCourse = uint16(GrabFields(f, 1))
	},
}

// Decoder implements the incremental NMEA sentence decoder state machine.
// Bytes are fed one at a time; a validated fix-data sentence commits into
// the shared Solution and returns true
type Decoder struct {
	solution *Solution
	stats    *Statistics

	sample     fixSample
	frame      sentenceKind
	param      int
	offset     int
	parity     byte
	inChecksum bool
	buf        [FieldBufferSize]byte
}

// NewDecoder creates a decoder committing into the given solution and
// statistics
func NewDecoder(solution *Solution, stats *Statistics) *Decoder {
	return &Decoder{
		solution: solution,
		stats:    stats,
	}
}

// Feed processes one inbound byte. It returns true when the byte completed
// a checksum-valid fix-data sentence; recommended-minimum sentences commit
// speed and course silently
func (d *Decoder) Feed(c byte) bool {
	committed := false

	switch c {
	case StartByte:
		d.param = 0
		d.offset = 0
		d.parity = 0
		d.frame = frameNone
		d.inChecksum = false

	case FieldDelimiter, ChecksumIntroducer:
		field := string(d.buf[:d.offset])
		if d.param == 0 {
			d.frame = frameNone
			switch field {
			case "GPGGA", "GNGGA":
				d.frame = frameGGA
			case "GPRMC", "GNRMC":
				d.frame = frameRMC
			}
		} else if set, ok := fieldSetters[fieldKey{d.frame, d.param}]; ok {
			set(&d.sample, field)
		}
		d.param++
		d.offset = 0
		if c == ChecksumIntroducer {
			d.inChecksum = true
		} else {
			d.parity ^= c
		}

	case '\r', '\n':
		if d.inChecksum {
			sum := hexDigit(d.buf[0])<<4 + hexDigit(d.buf[1])
			if sum == d.parity {
				d.stats.PacketCount++
				switch d.frame {
				case frameGGA:
					d.solution.applyFix(&d.sample)
					committed = true
				case frameRMC:
					d.solution.applyVelocity(&d.sample)
				}
			} else {
				d.stats.Errors++
			}
		}
		d.inChecksum = false

	default:
		if d.offset < FieldBufferSize-1 {
			d.buf[d.offset] = c
			d.offset++
		}
		// Overflowed bytes are dropped from storage but still counted,
		// matching the checksum the device computed over the wire
		if !d.inChecksum {
			d.parity ^= c
		}
	}

	return committed
}

// hexDigit decodes one uppercase hexadecimal checksum character
func hexDigit(c byte) byte {
	if c >= 'A' {
		return c - 'A' + 10
	}
	return c - '0'
}

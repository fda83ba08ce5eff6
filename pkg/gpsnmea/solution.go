// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

// LLH is a geodetic position: latitude/longitude in degrees scaled by 1e7,
// altitude in centimeters above mean sea level
type LLH struct {
	Lat int32
	Lon int32
	Alt int32
}

// SolutionFlags qualifies which solution fields are currently trustworthy
type SolutionFlags struct {
	// ValidVelNE and ValidVelD are always false for this protocol; NMEA
	// sentences carry no velocity vector
	ValidVelNE bool
	ValidVelD  bool

	// ValidEPE is false when EPH/EPV are derived from HDOP rather than
	// reported by the receiver
	ValidEPE bool

	// Heartbeat toggles on every committed fix-data frame
	Heartbeat bool
}

// Solution is the canonical navigation solution shared with downstream
// consumers. Fields are fully written before each driver tick returns; no
// cross-field transactional guarantee is provided
type Solution struct {
	FixType FixType
	NumSat  uint8
	LLH     LLH

	// HDOP in tenths; EPH/EPV in centimeters, clamped
	HDOP uint16
	EPH  uint16
	EPV  uint16

	// GroundSpeed in cm/s, GroundCourse in decidegrees
	GroundSpeed  uint16
	GroundCourse uint16

	Flags SolutionFlags
}

// fixSample holds the fields of a sentence still being decoded. It is
// merged into the Solution only after the checksum verifies
type fixSample struct {
	fix          bool
	latitude     int32
	longitude    int32
	numSat       uint8
	altitude     uint16
	speed        uint16
	groundCourse uint16
	hdop         uint16
}

// applyFix merges a validated fix-data frame. Satellite count is always
// taken; position, altitude and HDOP-derived error estimates only when the
// receiver reports a valid fix. Velocity validity is cleared either way
// since this protocol never supplies velocity
func (s *Solution) applyFix(f *fixSample) {
	s.NumSat = f.numSat
	if f.fix {
		s.FixType = Fix3D
		s.LLH.Lat = f.latitude
		s.LLH.Lon = f.longitude
		s.LLH.Alt = int32(f.altitude)
		s.HDOP = ConstrainHDOP(uint32(f.hdop))
		s.EPH = ConstrainEPE(uint32(f.hdop) * hdopToEphMultiplier)
		s.EPV = ConstrainEPE(uint32(f.hdop) * hdopToEphMultiplier)
		s.Flags.ValidEPE = false
	} else {
		s.FixType = FixNone
	}
	s.Flags.ValidVelNE = false
	s.Flags.ValidVelD = false
}

// applyVelocity merges a validated recommended-minimum frame: ground speed
// and course only, fix type and position untouched
func (s *Solution) applyVelocity(f *fixSample) {
	s.GroundSpeed = f.speed
	s.GroundCourse = f.groundCourse
}

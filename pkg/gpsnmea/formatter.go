// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import "fmt"

// FormatSolution returns a one-line human-readable summary of a solution
func FormatSolution(s *Solution) string {
	return fmt.Sprintf("fix=%s sats=%d lat=%.7f lon=%.7f alt=%.2fm hdop=%.1f speed=%.2fm/s course=%.1f",
		s.FixType,
		s.NumSat,
		float64(s.LLH.Lat)/1e7,
		float64(s.LLH.Lon)/1e7,
		float64(s.LLH.Alt)/100,
		float64(s.HDOP)/10,
		float64(s.GroundSpeed)/100,
		float64(s.GroundCourse)/10,
	)
}

// FormatStage returns a short status line for the bring-up stages
func FormatStage(stage Stage, stats *Statistics) string {
	return fmt.Sprintf("stage=%s sentences=%d errors=%d", stage, stats.PacketCount, stats.Errors)
}

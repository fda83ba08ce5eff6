// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import (
	"fmt"
	"time"
)

// Statistics tracks sentence throughput and checksum error rates
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	PacketCount uint64
	Errors      uint64

	// Rates (calculated)
	PacketRate float64 // sentences/sec
	ErrorRate  float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// CalculateRates calculates sentence and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.PacketRate = float64(s.PacketCount) / elapsed
		s.ErrorRate = float64(s.Errors) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var errorPercent float64
	total := s.PacketCount + s.Errors
	if total > 0 {
		errorPercent = float64(s.Errors) * 100.0 / float64(total)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Valid Sentences: %8d\n", s.PacketCount)
	if s.Errors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d (%.1f%%)\n", s.Errors, errorPercent)
	}
	result += fmt.Sprintf("Sentence Rate:   %8.1f pkts/sec\n", s.PacketRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.PacketCount = 0
	s.Errors = 0
	s.PacketRate = 0
	s.ErrorRate = 0
}

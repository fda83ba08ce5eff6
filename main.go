// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems
//
// Gpslink - NMEA GPS Receiver Link
//
// A CLI tool for bringing up serial NMEA GPS receivers and decoding their
// sentence stream into a live navigation solution.

package main

import (
	"os"

	"github.com/meridianfc/gpslink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

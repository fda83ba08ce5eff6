// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/meridianfc/gpslink/pkg/gpsnmea"
)

var recordOutput string

// fixRecord is one committed solution in a CBOR capture stream
type fixRecord struct {
	Timestamp    time.Time `cbor:"1,keyasint"`
	FixType      uint8     `cbor:"2,keyasint"`
	NumSat       uint8     `cbor:"3,keyasint"`
	Lat          int32     `cbor:"4,keyasint"`
	Lon          int32     `cbor:"5,keyasint"`
	Alt          int32     `cbor:"6,keyasint"`
	HDOP         uint16    `cbor:"7,keyasint"`
	EPH          uint16    `cbor:"8,keyasint"`
	EPV          uint16    `cbor:"9,keyasint"`
	GroundSpeed  uint16    `cbor:"10,keyasint"`
	GroundCourse uint16    `cbor:"11,keyasint"`
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Capture committed fixes to a CBOR stream",
	Long: `Bring up the receiver like monitor does, then append every committed fix
to a CBOR capture file for later replay or analysis.`,
	RunE: runRecord,
}

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Print the fixes in a CBOR capture file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "gpslink.cbor", "Capture file")

	rootCmd.AddCommand(replayCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	if _, err := applyConfigFile(); err != nil {
		return err
	}
	opts, err := driverOptions()
	if err != nil {
		return err
	}

	transport, connInfo, err := openTransport()
	if err != nil {
		return err
	}
	defer transport.Close()

	file, err := os.Create(recordOutput)
	if err != nil {
		return fmt.Errorf("failed to create capture file: %w", err)
	}
	defer file.Close()

	fmt.Printf("Gpslink - Fix Recorder\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Capture file: %s\n", recordOutput)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	driver := gpsnmea.NewDriver(transport, opts)
	encoder := cbor.NewEncoder(file)

	ticker := time.NewTicker(time.Duration(tickInterval) * time.Millisecond)
	defer ticker.Stop()

	recorded := 0
	for range ticker.C {
		if !driver.Tick() {
			continue
		}

		sol := driver.Solution
		rec := fixRecord{
			Timestamp:    time.Now(),
			FixType:      uint8(sol.FixType),
			NumSat:       sol.NumSat,
			Lat:          sol.LLH.Lat,
			Lon:          sol.LLH.Lon,
			Alt:          sol.LLH.Alt,
			HDOP:         sol.HDOP,
			EPH:          sol.EPH,
			EPV:          sol.EPV,
			GroundSpeed:  sol.GroundSpeed,
			GroundCourse: sol.GroundCourse,
		}
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("failed to write capture: %w", err)
		}
		recorded++
		fmt.Printf("[%s] %s (%d recorded)\n",
			rec.Timestamp.Format("15:04:05.000"), gpsnmea.FormatSolution(sol), recorded)
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer file.Close()

	decoder := cbor.NewDecoder(file)
	count := 0
	for {
		var rec fixRecord
		if err := decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to decode record %d: %w", count, err)
		}

		sol := gpsnmea.Solution{
			FixType: gpsnmea.FixType(rec.FixType),
			NumSat:  rec.NumSat,
			LLH: gpsnmea.LLH{
				Lat: rec.Lat,
				Lon: rec.Lon,
				Alt: rec.Alt,
			},
			HDOP:         rec.HDOP,
			EPH:          rec.EPH,
			EPV:          rec.EPV,
			GroundSpeed:  rec.GroundSpeed,
			GroundCourse: rec.GroundCourse,
		}
		fmt.Printf("[%s] %s\n", rec.Timestamp.Format("15:04:05.000"), gpsnmea.FormatSolution(&sol))
		count++
	}

	fmt.Printf("\n%d fixes replayed\n", count)
	return nil
}

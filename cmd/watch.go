// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridianfc/gpslink/pkg/gpsnmea"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Display the raw sentence stream in human-readable format",
	Long: `Continuously display NMEA sentences as they arrive, marking the ones that
commit a new fix. No bring-up commands are sent; the receiver is listened
to at the configured baud rate.

Supports both serial and WebSocket connections.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if _, err := applyConfigFile(); err != nil {
		return err
	}

	transport, connInfo, err := openTransport()
	if err != nil {
		return err
	}
	defer transport.Close()

	fmt.Printf("Gpslink - Raw Sentence Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	solution := &gpsnmea.Solution{}
	stats := gpsnmea.NewStatistics()
	decoder := gpsnmea.NewDecoder(solution, stats)

	ticker := time.NewTicker(time.Duration(tickInterval) * time.Millisecond)
	defer ticker.Stop()

	var line []byte
	for range ticker.C {
		for transport.RxBytesWaiting() > 0 {
			b, ok := transport.ReadByte()
			if !ok {
				break
			}

			committed := decoder.Feed(b)

			if b == '\r' || b == '\n' {
				if len(line) > 0 {
					marker := ""
					if committed {
						marker = "  <- fix"
					}
					fmt.Printf("[%s] %s%s\n", time.Now().Format("15:04:05.000"), line, marker)
					line = line[:0]
				}
				continue
			}
			line = append(line, b)

			// A receiver mid-sentence at the wrong baud produces unbounded
			// garbage between terminators
			if len(line) > 128 {
				line = line[:0]
			}
		}
	}
	return nil
}

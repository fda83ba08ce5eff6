// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Receiver bring-up flags
	configFile   string
	providerName string
	autoBaud     bool
	autoConfig   bool
)

var rootCmd = &cobra.Command{
	Use:   "gpslink",
	Short: "NMEA GPS receiver link",
	Long: `Gpslink - A CLI tool for bringing up and monitoring serial NMEA GPS receivers.

Drives the receiver through baud discovery and vendor configuration (MTK or
SiRF command sets), then decodes the checksum-verified sentence stream into a
live navigation solution.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the GPSLINK_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Target baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Receiver bring-up flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "mtk", "Receiver command set (mtk or sirf)")
	rootCmd.PersistentFlags().BoolVar(&autoBaud, "autobaud", false, "Cycle candidate baud rates during bring-up")
	rootCmd.PersistentFlags().BoolVar(&autoConfig, "autoconfig", true, "Send vendor rate-configuration commands")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

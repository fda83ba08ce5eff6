// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"

	"github.com/meridianfc/gpslink/pkg/gpsnmea"
)

// Config is the optional TOML configuration file. Command-line flags
// override any value set here
type Config struct {
	Port       string `toml:"port"`
	BaudRate   int    `toml:"baud_rate"`
	Provider   string `toml:"provider"`
	AutoBaud   bool   `toml:"autobaud"`
	AutoConfig bool   `toml:"autoconfig"`
	Broker     string `toml:"mqtt_broker"`
	Topic      string `toml:"mqtt_topic"`
}

// ParseConfig reads and unmarshals a TOML configuration file. Keys absent
// from the file keep the current flag defaults
func ParseConfig(file string) (c *Config, err error) {
	contents, err := os.ReadFile(file)
	if err != nil {
		err = fmt.Errorf("config: %w", err)
		return
	}

	c = &Config{
		Port:       portName,
		BaudRate:   baudRate,
		Provider:   providerName,
		AutoBaud:   autoBaud,
		AutoConfig: autoConfig,
	}

	if err = toml.Unmarshal(contents, c); err != nil {
		err = fmt.Errorf("config: %w", err)
	}

	return
}

// applyConfigFile folds the config file (if given) into the flag
// variables, keeping any flag the user set explicitly
func applyConfigFile() (*Config, error) {
	if configFile == "" {
		return nil, nil
	}
	c, err := ParseConfig(configFile)
	if err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if c.Port != "" && !flags.Changed("port") {
		portName = c.Port
	}
	if c.BaudRate != 0 && !flags.Changed("baud") {
		baudRate = c.BaudRate
	}
	if c.Provider != "" && !flags.Changed("provider") {
		providerName = c.Provider
	}
	if !flags.Changed("autobaud") {
		autoBaud = c.AutoBaud
	}
	if !flags.Changed("autoconfig") {
		autoConfig = c.AutoConfig
	}
	return c, nil
}

// driverOptions resolves the flag set into driver options
func driverOptions() (gpsnmea.Options, error) {
	var provider gpsnmea.Provider
	switch strings.ToLower(providerName) {
	case "mtk", "nmea":
		provider = gpsnmea.ProviderMTK
	case "sirf", "psrf":
		provider = gpsnmea.ProviderSiRF
	default:
		return gpsnmea.Options{}, fmt.Errorf("unknown provider %q (use mtk or sirf)", providerName)
	}

	baudIndex := -1
	for i, rate := range gpsnmea.BaudRates {
		if rate == baudRate {
			baudIndex = i
			break
		}
	}
	if baudIndex < 0 {
		return gpsnmea.Options{}, fmt.Errorf("unsupported baud rate %d (supported: %v)", baudRate, gpsnmea.BaudRates)
	}

	return gpsnmea.Options{
		AutoBaud:      autoBaud,
		AutoConfig:    autoConfig,
		Provider:      provider,
		BaudRateIndex: baudIndex,
	}, nil
}

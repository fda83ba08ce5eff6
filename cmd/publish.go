// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"

	"github.com/meridianfc/gpslink/pkg/gpsnmea"
)

var (
	mqttBroker   string
	mqttTopic    string
	mqttClientID string
)

// gpsFix is the JSON payload published for every committed fix
type gpsFix struct {
	Time         string  `json:"time"`
	FixType      string  `json:"fix_type"`
	NumSat       uint8   `json:"num_sat"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AltitudeM    float64 `json:"altitude_m"`
	HDOP         float64 `json:"hdop"`
	SpeedMS      float64 `json:"speed_ms"`
	CourseDeg    float64 `json:"course_deg"`
	Sentences    uint64  `json:"sentences"`
	ChecksumErrs uint64  `json:"checksum_errors"`
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish committed fixes to an MQTT topic as JSON",
	Long: `Bring up the receiver like monitor does, then publish every committed fix
as a JSON message to an MQTT topic for downstream consumers.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&mqttBroker, "broker", "tcp://localhost:1883", "MQTT broker URL")
	publishCmd.Flags().StringVar(&mqttTopic, "topic", "gpslink/fix", "MQTT topic")
	publishCmd.Flags().StringVar(&mqttClientID, "client-id", "gpslink-publisher", "MQTT client ID")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := applyConfigFile()
	if err != nil {
		return err
	}
	if cfg != nil {
		flags := cmd.Flags()
		if cfg.Broker != "" && !flags.Changed("broker") {
			mqttBroker = cfg.Broker
		}
		if cfg.Topic != "" && !flags.Changed("topic") {
			mqttTopic = cfg.Topic
		}
	}
	opts, err := driverOptions()
	if err != nil {
		return err
	}

	// Connect to the MQTT broker
	clientOpts := mqtt.NewClientOptions().
		AddBroker(mqttBroker).
		SetClientID(mqttClientID)

	client := mqtt.NewClient(clientOpts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connection failed: %w", token.Error())
	}
	defer client.Disconnect(250)
	log.Printf("connected to MQTT broker at %s", mqttBroker)

	transport, connInfo, err := openTransport()
	if err != nil {
		return err
	}
	defer transport.Close()
	log.Printf("receiver connection: %s", connInfo)

	driver := gpsnmea.NewDriver(transport, opts)

	ticker := time.NewTicker(time.Duration(tickInterval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if !driver.Tick() {
			continue
		}

		sol := driver.Solution
		fix := gpsFix{
			Time:         time.Now().UTC().Format(time.RFC3339Nano),
			FixType:      sol.FixType.String(),
			NumSat:       sol.NumSat,
			Latitude:     float64(sol.LLH.Lat) / 1e7,
			Longitude:    float64(sol.LLH.Lon) / 1e7,
			AltitudeM:    float64(sol.LLH.Alt) / 100,
			HDOP:         float64(sol.HDOP) / 10,
			SpeedMS:      float64(sol.GroundSpeed) / 100,
			CourseDeg:    float64(sol.GroundCourse) / 10,
			Sentences:    driver.Stats.PacketCount,
			ChecksumErrs: driver.Stats.Errors,
		}

		payload, err := json.Marshal(fix)
		if err != nil {
			log.Printf("JSON marshal error: %v", err)
			continue
		}

		token := client.Publish(mqttTopic, 0, true, payload)
		token.Wait()
		if token.Error() != nil {
			log.Printf("publish error: %v", token.Error())
			continue
		}
	}
	return nil
}

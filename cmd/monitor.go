// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/meridianfc/gpslink/pkg/gpsnmea"
)

var (
	statsInterval int
	useTUI        bool
	tickInterval  int
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Bring up the receiver and display the live navigation solution",
	Long: `Drive the receiver through baud discovery and vendor configuration, then
decode the sentence stream and display each new fix.

With --autobaud the candidate baud table is cycled until the receiver
responds; with --autoconfig the vendor 5 Hz rate commands are sent. Both
can be disabled to listen passively.

By default each committed fix is printed as a line of text with periodic
statistics summaries. Use --tui for a live terminal dashboard.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", false, "Use terminal UI (false for text mode)")
	monitorCmd.Flags().IntVar(&tickInterval, "tick", 10, "Driver tick interval (milliseconds)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
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

	driver := gpsnmea.NewDriver(transport, opts)

	if useTUI {
		return runMonitorTUI(driver, connInfo)
	}
	return runMonitorText(driver, connInfo)
}

// runMonitorText runs the driver loop in plain text mode
func runMonitorText(driver *gpsnmea.Driver, connInfo string) error {
	fmt.Printf("Gpslink - GPS Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Provider: %s, autobaud: %v, autoconfig: %v\n", providerName, autoBaud, autoConfig)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ticker := time.NewTicker(time.Duration(tickInterval) * time.Millisecond)
	defer ticker.Stop()

	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	lastStage := gpsnmea.StageUnknown

	for {
		select {
		case <-ticker.C:
			hasNewData := driver.Tick()

			if stage := driver.Stage(); stage != lastStage {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), gpsnmea.FormatStage(stage, driver.Stats))
				lastStage = stage
			}

			if hasNewData {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), gpsnmea.FormatSolution(driver.Solution))
			}

		case <-statsTicker.C:
			fmt.Println()
			fmt.Print(driver.Stats.String())
			fmt.Println()
		}
	}
}

// runMonitorTUI runs the driver loop behind a bubbletea dashboard
func runMonitorTUI(driver *gpsnmea.Driver, connInfo string) error {
	m := initialMonitorModel(connInfo)
	p := tea.NewProgram(m)

	// Driver loop goroutine; the TUI only renders what it is sent
	go func() {
		ticker := time.NewTicker(time.Duration(tickInterval) * time.Millisecond)
		defer ticker.Stop()

		lastStage := gpsnmea.StageUnknown
		for range ticker.C {
			hasNewData := driver.Tick()
			stage := driver.Stage()

			if stage != lastStage {
				p.Send(stageMsg{stage: stage})
				lastStage = stage
			}
			if hasNewData {
				solution := *driver.Solution
				stats := *driver.Stats
				p.Send(fixMsg{solution: solution, stats: stats})
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	return nil
}

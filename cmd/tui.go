// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meridianfc/gpslink/pkg/gpsnmea"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// TUI model
type monitorModel struct {
	connInfo      string
	stage         gpsnmea.Stage
	solution      gpsnmea.Solution
	stats         gpsnmea.Statistics
	eventLog      []eventLogEntry
	maxLogEntries int
	spin          spinner.Model
	width         int
	height        int
	quitting      bool
}

// Messages
type tickMsg time.Time
type stageMsg struct {
	stage gpsnmea.Stage
}
type fixMsg struct {
	solution gpsnmea.Solution
	stats    gpsnmea.Statistics
}

func initialMonitorModel(connInfo string) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	return monitorModel{
		connInfo:      connInfo,
		stage:         gpsnmea.StageInitializing,
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		spin:          s,
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spin.Tick,
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case stageMsg:
		m.stage = msg.stage
		m.addLogEntry(fmt.Sprintf("Stage: %s", msg.stage), false)

	case fixMsg:
		prevErrors := m.stats.Errors
		prevFix := m.solution.FixType
		m.solution = msg.solution
		m.stats = msg.stats
		if msg.stats.Errors > prevErrors {
			m.addLogEntry(fmt.Sprintf("Checksum errors: %d", msg.stats.Errors), true)
		}
		if prevFix == gpsnmea.FixNone && msg.solution.FixType != gpsnmea.FixNone {
			m.addLogEntry(fmt.Sprintf("Fix acquired (%d satellites)", msg.solution.NumSat), false)
		}
		if prevFix != gpsnmea.FixNone && msg.solution.FixType == gpsnmea.FixNone {
			m.addLogEntry("Fix lost", true)
		}
	}

	return m, nil
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("GPSLINK - GPS MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Stage: %s | Press 'q' to quit", m.connInfo, m.stage)))
	s.WriteString("\n\n")

	// Fix status
	if m.solution.FixType == gpsnmea.FixNone {
		s.WriteString(m.spin.View())
		s.WriteString(warningStyle.Render(" Acquiring fix..."))
		s.WriteString("\n\n")
	} else {
		s.WriteString(valueStyle.Render(fmt.Sprintf("✓ %s fix, %d satellites", m.solution.FixType, m.solution.NumSat)))
		s.WriteString("\n\n")
	}

	// Solution panel
	solutionContent := strings.Builder{}
	solutionContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render("Latitude:"), valueStyle.Render(fmt.Sprintf("%.7f°", float64(m.solution.LLH.Lat)/1e7)),
		labelStyle.Render("Longitude:"), valueStyle.Render(fmt.Sprintf("%.7f°", float64(m.solution.LLH.Lon)/1e7)),
	))
	solutionContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render("Altitude:"), valueStyle.Render(fmt.Sprintf("%.2f m", float64(m.solution.LLH.Alt)/100)),
		labelStyle.Render("HDOP:"), valueStyle.Render(fmt.Sprintf("%.1f", float64(m.solution.HDOP)/10)),
	))
	solutionContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Speed:"), valueStyle.Render(fmt.Sprintf("%.2f m/s", float64(m.solution.GroundSpeed)/100)),
		labelStyle.Render("Course:"), valueStyle.Render(fmt.Sprintf("%.1f°", float64(m.solution.GroundCourse)/10)),
	))
	s.WriteString(boxStyle.Render(solutionContent.String()))
	s.WriteString("\n\n")

	// Statistics panel
	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Sentences:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.PacketCount)),
		labelStyle.Render("Errors:"), func() string {
			if m.stats.Errors > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", m.stats.Errors))
			}
			return valueStyle.Render("0")
		}(),
	))
	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 16 // Reserve space for header and panels
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("01/02/06 15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}

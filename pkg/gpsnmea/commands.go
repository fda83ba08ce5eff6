// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import "fmt"

// BaudRates is the candidate baud table, highest first. BaudRateIndex in
// Options and the autobaud cycle both index into it
var BaudRates = []int{115200, 57600, 38400, 19200, 9600, 4800}

// MTK set-baud commands, one per BaudRates entry
var mtkBaudCommands = []string{
	"$PMTK251,115200*1F\r\n",
	"$PMTK251,57600*2C\r\n",
	"$PMTK251,38400*27\r\n",
	"$PMTK251,19200*22\r\n",
	"$PMTK251,9600*17\r\n",
	"$PMTK251,4800*14\r\n",
}

// SiRF set-baud commands, one per BaudRates entry
var srfBaudCommands = []string{
	"$PSRF100,1,115200,8,1,0*05\r\n",
	"$PSRF100,1,57600,8,1,0*36\r\n",
	"$PSRF100,1,38400,8,1,0*3D\r\n",
	"$PSRF100,1,19200,8,1,0*38\r\n",
	"$PSRF100,1,9600,8,1,0*0D\r\n",
	"$PSRF100,1,4800,8,1,0*0E\r\n",
}

// 5 Hz rate commands
const (
	mtkReportRate5Hz = "$PMTK220,200*2C\r\n"
	mtkUpdateRate5Hz = "$PMTK300,200,0,0,0,0*2F\r\n"
	srfUpdateRate5Hz = "$PSRF103,00,6,00,0*23\r\n"
)

// Sentence renders an outbound NMEA sentence with its XOR checksum
type Sentence struct {
	Type string
	Data []string
}

// Checksum computes the XOR checksum over a sentence body (the text
// between '$' and '*')
func Checksum(s string) byte {
	var sum byte
	for i := 0; i < len(s); i++ {
		sum ^= s[i]
	}
	return sum
}

// String renders the sentence with framing, checksum and line terminator
func (s Sentence) String() string {
	body := s.Type
	for _, d := range s.Data {
		body = fmt.Sprintf("%s,%s", body, d)
	}
	if len(s.Data) == 0 {
		body += ","
	}
	return fmt.Sprintf("$%s*%02X\r\n", body, Checksum(body))
}

// Bytes renders the sentence as a byte slice
func (s Sentence) Bytes() []byte {
	return []byte(s.String())
}

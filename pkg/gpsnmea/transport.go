// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

// Transport is the non-blocking byte source/sink the driver runs over.
// Every method must return immediately: reads report only bytes already
// buffered, writes report only the space currently free
type Transport interface {
	// RxBytesWaiting returns the number of bytes available to read
	RxBytesWaiting() int

	// ReadByte returns the next buffered byte; ok is false when none is
	// available
	ReadByte() (b byte, ok bool)

	// TxBytesFree returns how many bytes can be queued without blocking
	TxBytesFree() int

	// WriteByte queues one byte for transmission
	WriteByte(b byte)

	// WriteString queues a whole command string for transmission
	WriteString(s string)

	// TxBufferEmpty reports whether every queued byte has gone out on the wire
	TxBufferEmpty() bool

	// SetBaudRate reconfigures the line rate
	SetBaudRate(baud int)
}

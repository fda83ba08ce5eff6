// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import (
	"fmt"
	"sync/atomic"

	"go.bug.st/serial"
)

const (
	serialRxQueueSize = 512
	serialTxQueueSize = 256
)

// SerialTransport adapts a blocking serial port to the non-blocking
// Transport contract. A reader goroutine fills a bounded inbound queue
// (overflow bytes are dropped, the decoder's checksum rejects the torn
// sentence); a writer goroutine drains the outbound queue one byte at a
// time so pending counts reflect bytes not yet on the wire
type SerialTransport struct {
	port    serial.Port
	rx      chan byte
	tx      chan byte
	pending atomic.Int64
	done    chan struct{}
}

// OpenSerialTransport opens a serial port at the given baud rate with
// 8N1 framing
func OpenSerialTransport(portName string, baud int) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	t := &SerialTransport{
		port: port,
		rx:   make(chan byte, serialRxQueueSize),
		tx:   make(chan byte, serialTxQueueSize),
		done: make(chan struct{}),
	}
	go t.readLoop()
	go t.writeLoop()
	return t, nil
}

func (t *SerialTransport) readLoop() {
	buf := make([]byte, 128)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			select {
			case t.rx <- b:
			default:
				// Inbound queue full; drop the byte
			}
		}
	}
}

func (t *SerialTransport) writeLoop() {
	for {
		select {
		case b := <-t.tx:
			t.port.Write([]byte{b})
			t.pending.Add(-1)
		case <-t.done:
			return
		}
	}
}

func (t *SerialTransport) RxBytesWaiting() int {
	return len(t.rx)
}

func (t *SerialTransport) ReadByte() (byte, bool) {
	select {
	case b := <-t.rx:
		return b, true
	default:
		return 0, false
	}
}

func (t *SerialTransport) TxBytesFree() int {
	return cap(t.tx) - len(t.tx)
}

func (t *SerialTransport) WriteByte(b byte) {
	t.pending.Add(1)
	select {
	case t.tx <- b:
	default:
		t.pending.Add(-1)
	}
}

func (t *SerialTransport) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		t.WriteByte(s[i])
	}
}

func (t *SerialTransport) TxBufferEmpty() bool {
	return t.pending.Load() == 0
}

func (t *SerialTransport) SetBaudRate(baud int) {
	t.port.SetMode(&serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}

// Close stops the worker goroutines and closes the port
func (t *SerialTransport) Close() error {
	close(t.done)
	return t.port.Close()
}

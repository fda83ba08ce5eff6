// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

import (
	"io"
	"sync/atomic"
)

// IOTransport adapts any byte stream (a websocket bridge, a recorded log)
// to the Transport contract. Baud-rate changes are a no-op since the
// underlying stream has no line rate
type IOTransport struct {
	rw      io.ReadWriter
	rx      chan byte
	tx      chan byte
	pending atomic.Int64
	done    chan struct{}
}

// NewIOTransport wraps a ReadWriter and starts its worker goroutines
func NewIOTransport(rw io.ReadWriter) *IOTransport {
	t := &IOTransport{
		rw:   rw,
		rx:   make(chan byte, serialRxQueueSize),
		tx:   make(chan byte, serialTxQueueSize),
		done: make(chan struct{}),
	}
	go t.readLoop()
	go t.writeLoop()
	return t
}

func (t *IOTransport) readLoop() {
	buf := make([]byte, 128)
	for {
		n, err := t.rw.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			select {
			case t.rx <- b:
			default:
			}
		}
	}
}

func (t *IOTransport) writeLoop() {
	for {
		select {
		case b := <-t.tx:
			t.rw.Write([]byte{b})
			t.pending.Add(-1)
		case <-t.done:
			return
		}
	}
}

func (t *IOTransport) RxBytesWaiting() int {
	return len(t.rx)
}

func (t *IOTransport) ReadByte() (byte, bool) {
	select {
	case b := <-t.rx:
		return b, true
	default:
		return 0, false
	}
}

func (t *IOTransport) TxBytesFree() int {
	return cap(t.tx) - len(t.tx)
}

func (t *IOTransport) WriteByte(b byte) {
	t.pending.Add(1)
	select {
	case t.tx <- b:
	default:
		t.pending.Add(-1)
	}
}

func (t *IOTransport) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		t.WriteByte(s[i])
	}
}

func (t *IOTransport) TxBufferEmpty() bool {
	return t.pending.Load() == 0
}

func (t *IOTransport) SetBaudRate(baud int) {}

// Close stops the writer goroutine; the underlying stream is owned by the
// caller
func (t *IOTransport) Close() error {
	close(t.done)
	return nil
}

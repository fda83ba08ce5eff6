// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Meridian Flight Systems

package gpsnmea

// LoopbackTransport is an in-memory Transport with scriptable inbound
// bytes, bounded transmit headroom and a baud-change log. It backs the
// sequencer and driver tests
type LoopbackTransport struct {
	rx      []byte
	sent    []byte
	free    int
	pending int
	bauds   []int
}

// NewLoopbackTransport creates a loopback with unlimited transmit headroom
func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{free: 1 << 20}
}

// QueueRead appends bytes to the inbound queue
func (l *LoopbackTransport) QueueRead(data []byte) {
	l.rx = append(l.rx, data...)
}

// QueueReadString appends a string to the inbound queue
func (l *LoopbackTransport) QueueReadString(s string) {
	l.rx = append(l.rx, s...)
}

// SetTxHeadroom limits how many bytes WriteByte will accept before the
// next Drain
func (l *LoopbackTransport) SetTxHeadroom(n int) {
	l.free = n
}

// Drain marks all queued transmit bytes as flushed to the wire
func (l *LoopbackTransport) Drain() {
	l.pending = 0
}

// Sent returns every byte written so far
func (l *LoopbackTransport) Sent() []byte {
	return l.sent
}

// BaudChanges returns the sequence of SetBaudRate calls
func (l *LoopbackTransport) BaudChanges() []int {
	return l.bauds
}

func (l *LoopbackTransport) RxBytesWaiting() int {
	return len(l.rx)
}

func (l *LoopbackTransport) ReadByte() (byte, bool) {
	if len(l.rx) == 0 {
		return 0, false
	}
	b := l.rx[0]
	l.rx = l.rx[1:]
	return b, true
}

func (l *LoopbackTransport) TxBytesFree() int {
	return l.free
}

func (l *LoopbackTransport) WriteByte(b byte) {
	if l.free <= 0 {
		return
	}
	l.free--
	l.pending++
	l.sent = append(l.sent, b)
}

func (l *LoopbackTransport) WriteString(s string) {
	l.sent = append(l.sent, s...)
	l.pending += len(s)
}

func (l *LoopbackTransport) TxBufferEmpty() bool {
	return l.pending == 0
}

func (l *LoopbackTransport) SetBaudRate(baud int) {
	l.bauds = append(l.bauds, baud)
}

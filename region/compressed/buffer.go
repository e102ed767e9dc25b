// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed stores layers of small values compactly.
package compressed

import "io"

// MaxValue is the largest value a Buffer can hold.
const MaxValue = 15

// Buffer stores values up to MaxValue with run length encoding.
// Each byte is 4 bits of value followed by 4 bits of count - 1.
type Buffer struct {
	buf []byte
	off int // Read position
}

func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.off = 0
}

// writeValue appends a value, which is clamped to MaxValue.
func (buffer *Buffer) writeValue(b byte) {
	buf := buffer.buf

	next := b
	if next > MaxValue {
		next = MaxValue
	}

	var current, countMinusOne, tuple byte
	end := len(buf) - 1

	const maxCount = 15
	if len(buf) > 0 {
		tuple = buf[end]
		current = tuple >> 4
		countMinusOne = tuple & maxCount
	} else {
		countMinusOne = maxCount // Full
	}

	if next != current || countMinusOne == maxCount {
		// Start new tuple
		tuple = next << 4
		buf = append(buf, tuple)
	} else {
		// Add 1 to count
		buf[end] = tuple + 1
	}

	buffer.buf = buf
}

// Write implements io.Writer. Every byte is one value.
func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.writeValue(b)
	}
	return len(buf), nil
}

func (buffer *Buffer) readValue() (b byte, more bool) {
	tuple := buffer.buf[buffer.off]
	b = tuple >> 4

	if tuple&15 > 0 {
		buffer.buf[buffer.off] = tuple - 1
		more = true
	} else {
		buffer.off++
		more = buffer.off < len(buffer.buf)
	}

	return
}

// Read implements io.Reader. Reading consumes the Buffer.
func (buffer *Buffer) Read(buf []byte) (int, error) {
	more := buffer.off < len(buffer.buf)
	i := 0

	for ; i < len(buf) && more; i++ {
		buf[i], more = buffer.readValue()
	}

	if i == 0 {
		return 0, io.EOF
	}

	return i, nil
}

// Grow makes space for about n values
func (buffer *Buffer) Grow(n int) {
	compressed := n / 2
	if old := buffer.Buffer(); len(old) < compressed {
		buf := make([]byte, len(old), len(old)+compressed)
		copy(buf, old)
		buffer.buf = buf
		buffer.off = 0
	}
}

func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}

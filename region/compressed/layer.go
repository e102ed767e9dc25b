// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"errors"
	"fmt"
	"io"
)

// Layer is a compressed rectangle of values, one per grid coordinate.
type Layer struct {
	Name   string `json:"name"`
	MinX   int    `json:"minX"`
	MinZ   int    `json:"minZ"`
	Data   []byte `json:"data"`   // Data is run length encoded values.
	Stride int    `json:"stride"` // Stride is width of the rectangle.
	Length int    `json:"length"` // Length is the number of values for faster reading.
}

// NewLayer compresses values, which are in row major order with the given stride.
func NewLayer(name string, minX, minZ, stride int, values []byte) *Layer {
	var buffer Buffer
	buffer.Grow(len(values))
	_, _ = buffer.Write(values)

	return &Layer{
		Name:   name,
		MinX:   minX,
		MinZ:   minZ,
		Data:   buffer.Buffer(),
		Stride: stride,
		Length: len(values),
	}
}

// Decode returns the values of the layer.
func (layer *Layer) Decode() ([]byte, error) {
	if layer.Stride <= 0 || layer.Length%layer.Stride != 0 {
		return nil, fmt.Errorf("invalid layer dimensions %d/%d", layer.Length, layer.Stride)
	}

	// Read consumes the buffer, so read from a copy.
	var buffer Buffer
	buffer.Reset(append([]byte(nil), layer.Data...))

	values := make([]byte, layer.Length)
	n, err := io.ReadFull(&buffer, values)
	if err != nil {
		return nil, fmt.Errorf("layer %s: decoded %d of %d values: %w", layer.Name, n, layer.Length, err)
	}
	if len(buffer.Buffer()) != 0 {
		return nil, errors.New("layer " + layer.Name + ": trailing data")
	}
	return values, nil
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package viz

import (
	"fmt"

	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/region/compressed"
	"github.com/SoftbearStudios/regiongen/region/noise"
	"github.com/SoftbearStudios/regiongen/region/render"
	"github.com/SoftbearStudios/regiongen/region/river"
	"github.com/klauspost/compress/zstd"
)

type (
	// Request asks for a region to be visualized.
	Request struct {
		X      int      `json:"x"`
		Z      int      `json:"z"`
		Layers []string `json:"layers"` // All layers if empty
	}

	Cell struct {
		Key     noise.CellKey `json:"key"`
		CenterX float32       `json:"centerX"`
		CenterZ float32       `json:"centerZ"`
		Noise   float32       `json:"noise"`
	}

	// Snapshot is the state of a region after a task.
	Snapshot struct {
		Task    region.Task         `json:"task"`
		Summary region.Summary      `json:"summary"`
		Layers  []*compressed.Layer `json:"layers"`
	}

	// Visualization is every Snapshot of one region's construction.
	Visualization struct {
		Seed      int64        `json:"seed"`
		Cell      Cell         `json:"cell"`
		Snapshots []Snapshot   `json:"snapshots"`
		Rivers    []river.Edge `json:"rivers"`
	}
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	decoder, _ = zstd.NewReader(nil)
)

func newCell(cell noise.Cell) Cell {
	return Cell{Key: cell.CellKey, CenterX: cell.CenterX, CenterZ: cell.CenterZ, Noise: cell.Noise}
}

// parseLayers returns every layer if names is empty.
func parseLayers(names []string) ([]render.Layer, error) {
	if len(names) == 0 {
		return render.Layers(), nil
	}
	layers := make([]render.Layer, 0, len(names))
	for _, name := range names {
		layer, err := render.ParseLayer(name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// visualize builds the region owning (x, z) from scratch, calling observer with a Snapshot
// after every task.
func visualize(g *region.Generator, x, z int, layers []render.Layer, observer func(Snapshot)) *region.Region {
	return g.VisualizeRegion(x, z, func(task region.Task, r *region.Region) {
		snapshot := Snapshot{Task: task, Summary: r.Summarize()}
		for _, layer := range layers {
			snapshot.Layers = append(snapshot.Layers, render.Compress(r, layer))
		}
		observer(snapshot)
	})
}

// Dump returns the zstd compressed JSON Visualization of a request.
func Dump(g *region.Generator, request Request) ([]byte, error) {
	layers, err := parseLayers(request.Layers)
	if err != nil {
		return nil, err
	}

	v := Visualization{Seed: g.Seed()}
	r := visualize(g, request.X, request.Z, layers, func(snapshot Snapshot) {
		v.Snapshots = append(v.Snapshots, snapshot)
	})
	v.Cell = newCell(r.Cell)
	v.Rivers = r.Rivers

	buf, err := json.Marshal(&v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal visualization: %w", err)
	}
	return encoder.EncodeAll(buf, nil), nil
}

// Undump decodes the result of Dump.
func Undump(data []byte) (*Visualization, error) {
	buf, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decompress visualization: %w", err)
	}

	var v Visualization
	if err := json.Unmarshal(buf, &v); err != nil {
		return nil, fmt.Errorf("could not unmarshal visualization: %w", err)
	}
	return &v, nil
}

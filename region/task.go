// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"math/rand"

	"github.com/SoftbearStudios/regiongen/region/noise"
)

// Task is one pass of region construction.
type Task uint8

// Tasks run in this order. Each reads only what earlier tasks wrote.
const (
	Init Task = iota
	AddContinents
	AnnotateDistanceToCellEdge
	FloodFillSmallOceans
	AddIslands
	AnnotateDistanceToOcean
	AnnotateDistanceToWestCoast
	AnnotateBaseLandHeight
	AddMountains
	AnnotateBiomeAltitude
	AnnotateClimate
	ChooseBiomes
	ChooseRocks
	AddRiversAndLakes
	taskCount
)

var taskEnum = newEnum("task",
	"init",
	"addContinents",
	"annotateDistanceToCellEdge",
	"floodFillSmallOceans",
	"addIslands",
	"annotateDistanceToOcean",
	"annotateDistanceToWestCoast",
	"annotateBaseLandHeight",
	"addMountains",
	"annotateBiomeAltitude",
	"annotateClimate",
	"chooseBiomes",
	"chooseRocks",
	"addRiversAndLakes",
)

// taskFuncs must be stateless; all state lives in the taskContext.
var taskFuncs = [taskCount]func(*taskContext){
	Init:                        initRegion,
	AddContinents:               addContinents,
	AnnotateDistanceToCellEdge:  annotateDistanceToCellEdge,
	FloodFillSmallOceans:        floodFillSmallOceans,
	AddIslands:                  addIslands,
	AnnotateDistanceToOcean:     annotateDistanceToOcean,
	AnnotateDistanceToWestCoast: annotateDistanceToWestCoast,
	AnnotateBaseLandHeight:      annotateBaseLandHeight,
	AddMountains:                addMountains,
	AnnotateBiomeAltitude:       annotateBiomeAltitude,
	AnnotateClimate:             annotateClimate,
	ChooseBiomes:                chooseBiomes,
	ChooseRocks:                 chooseRocks,
	AddRiversAndLakes:           addRiversAndLakes,
}

// Tasks returns every Task in order.
func Tasks() []Task {
	tasks := make([]Task, taskCount)
	for i := range tasks {
		tasks[i] = Task(i)
	}
	return tasks
}

func (task Task) String() string {
	return taskEnum.string(enumChoice(task))
}

func (task Task) AppendText(buf []byte) []byte {
	return append(buf, task.String()...)
}

func (task Task) MarshalText() ([]byte, error) {
	return task.AppendText(nil), nil
}

func (task *Task) UnmarshalText(text []byte) (err error) {
	var choice enumChoice
	err = choice.unmarshalText(&taskEnum, text)
	*task = Task(choice)
	return
}

func (task Task) run(ctx *taskContext) {
	taskFuncs[task](ctx)
}

// taskContext is the state of one region construction.
// It is never shared between goroutines.
type taskContext struct {
	seed     int64
	settings *Settings
	region   *Region
	random   *rand.Rand

	cellular *noise.Cellular
	fields   *noise.Fields
	biomes   *noise.AreaSampler
	rocks    *noise.AreaSampler
}

func (g *Generator) newTaskContext(cell noise.Cell) *taskContext {
	seed := int64(noise.Hash2(g.seed+11, int(cell.X), int(cell.Z)))
	return &taskContext{
		seed:     g.seed,
		settings: &g.settings,
		region:   &Region{Cell: cell},
		random:   rand.New(rand.NewSource(seed)),
		cellular: g.cellular,
		fields:   g.fields,
		biomes:   g.biomeAreas.Sampler(),
		rocks:    g.rockAreas.Sampler(),
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package viz

import (
	"reflect"
	"unsafe"

	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/region/geom"
	"github.com/SoftbearStudios/regiongen/region/noise"
	jsoniter "github.com/json-iterator/go"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(region.Task(0)).String(), encodeTask, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(region.Biome(0)).String(), encodeBiome, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(region.Rock(0)).String(), encodeRock, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(noise.CellKey{}).String(), encodeCellKey, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(geom.Angle(0)).String(), encodeAngle, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(noise.CellKey{}).String(), decodeCellKey)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeTask(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	task := *(*region.Task)(ptr)
	stream.SetBuffer(append(task.AppendText(append(stream.Buffer(), '"')), '"'))
}

func encodeBiome(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	biome := *(*region.Biome)(ptr)
	stream.SetBuffer(append(biome.AppendText(append(stream.Buffer(), '"')), '"'))
}

func encodeRock(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	rock := *(*region.Rock)(ptr)
	stream.SetBuffer(append(rock.AppendText(append(stream.Buffer(), '"')), '"'))
}

// Encodes a cell key as [x, z]
func encodeCellKey(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	key := *(*noise.CellKey)(ptr)
	stream.WriteArrayStart()
	stream.WriteInt32(key.X)
	stream.WriteMore()
	stream.WriteInt32(key.Z)
	stream.WriteArrayEnd()
}

func decodeCellKey(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	key := (*noise.CellKey)(ptr)
	i := 0
	iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		switch i {
		case 0:
			key.X = iter.ReadInt32()
		case 1:
			key.Z = iter.ReadInt32()
		default:
			iter.ReportError("decode cell key", "expected [x, z]")
			return false
		}
		i++
		return true
	})
}

func encodeAngle(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	angle := *(*geom.Angle)(ptr)
	stream.WriteFloat32Lossy(angle.Float())
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

// Biome is the ecological identity of a Point.
type Biome uint8

const (
	BiomeOcean Biome = iota // Default
	BiomeBeach
	BiomePlains
	BiomeForest
	BiomeTaiga
	BiomeTundra
	BiomeDesert
	BiomeSavanna
	BiomeJungle
	BiomeSwamp
	BiomeBadlands
	BiomeMountains
	BiomeSnowyMountains
	BiomeLake
	BiomeFrozenLake
	BiomeMarshLake
	biomeCount // At most 16 so biomes fit in a compressed.Layer
)

var biomeEnum = newEnum("biome",
	"ocean",
	"beach",
	"plains",
	"forest",
	"taiga",
	"tundra",
	"desert",
	"savanna",
	"jungle",
	"swamp",
	"badlands",
	"mountains",
	"snowyMountains",
	"lake",
	"frozenLake",
	"marshLake",
)

// Candidate tables. Indexed by BiomeAltitude for ordinary land.
var (
	lowlandBiomes = [...][]Biome{
		{BiomePlains, BiomeForest, BiomeSwamp, BiomeSavanna, BiomePlains},
		{BiomePlains, BiomeForest, BiomeTaiga, BiomeSavanna, BiomeDesert},
		{BiomeForest, BiomeTaiga, BiomeBadlands, BiomeDesert},
		{BiomeTaiga, BiomeBadlands, BiomeMountains},
	}
	islandBiomes   = []Biome{BiomeJungle, BiomePlains, BiomeForest, BiomeJungle}
	mountainBiomes = []Biome{BiomeMountains, BiomeMountains, BiomeTaiga, BiomeBadlands}
)

func (biome Biome) String() string {
	return biomeEnum.string(enumChoice(biome))
}

func (biome Biome) AppendText(buf []byte) []byte {
	return append(buf, biome.String()...)
}

func (biome Biome) MarshalText() ([]byte, error) {
	return biome.AppendText(nil), nil
}

func (biome *Biome) UnmarshalText(text []byte) (err error) {
	var choice enumChoice
	err = choice.unmarshalText(&biomeEnum, text)
	*biome = Biome(choice)
	return
}

func ParseBiome(s string) Biome {
	return Biome(biomeEnum.mustParse(s))
}

// Ocean is true for the ocean biome.
func (biome Biome) Ocean() bool {
	return biome == BiomeOcean
}

// IsLake is true for lake variants.
func (biome Biome) IsLake() bool {
	return biome >= BiomeLake && biome <= BiomeMarshLake
}

// LakeEligible is true if a lake may replace the biome.
func (biome Biome) LakeEligible() bool {
	switch biome {
	case BiomeOcean, BiomeBeach, BiomeBadlands:
		return false
	}
	return !biome.IsLake()
}

// LakeVariant returns the lake that replaces the biome.
func (biome Biome) LakeVariant() Biome {
	switch biome {
	case BiomeTaiga, BiomeTundra, BiomeSnowyMountains:
		return BiomeFrozenLake
	case BiomeSwamp, BiomeJungle:
		return BiomeMarshLake
	}
	return BiomeLake
}

// climateThresholds are shifted by area so substitutions don't all happen at the same value.
type climateThresholds struct {
	dry, wet, cold float32
}

// substitute replaces biomes that don't fit their climate.
func (biome Biome) substitute(temperature, rainfall float32, th climateThresholds) Biome {
	switch biome {
	case BiomeSwamp:
		if rainfall < th.dry {
			biome = BiomePlains
		}
	case BiomeJungle:
		if rainfall < th.dry {
			biome = BiomeSavanna
		}
	case BiomeBadlands, BiomeDesert:
		if rainfall > th.wet {
			biome = BiomeForest
		}
	}

	if temperature < th.cold {
		switch biome {
		case BiomePlains, BiomeSavanna, BiomeDesert:
			biome = BiomeTundra
		case BiomeForest, BiomeJungle, BiomeSwamp:
			biome = BiomeTaiga
		case BiomeMountains:
			biome = BiomeSnowyMountains
		}
	}
	return biome
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"errors"
	"fmt"
	"os"

	"github.com/SoftbearStudios/regiongen/region/units"
	"gopkg.in/yaml.v3"
)

// Settings tune generation. The zero value is not valid; start from DefaultSettings.
type Settings struct {
	// Caches
	RegionCacheSize    int `yaml:"region_cache_size"`
	PartitionCacheSize int `yaml:"partition_cache_size"`

	// Land
	ContinentBias   float64 `yaml:"continent_bias"`   // Added to continent noise, positive favors land
	CellNoiseBias   float64 `yaml:"cell_noise_bias"`  // Scale of the per cell land bias
	IslandThreshold float64 `yaml:"island_threshold"` // Island noise above this becomes an island
	SmallOceanSize  int     `yaml:"small_ocean_size"` // Enclosed oceans smaller than this become land

	// 1 in N steps of a fill reuse the current distance. 0 disables.
	OceanSkipChance     int `yaml:"ocean_skip_chance"`
	EdgeSkipChance      int `yaml:"edge_skip_chance"`
	WestCoastSkipChance int `yaml:"west_coast_skip_chance"`

	MaxOceanDepth int `yaml:"max_ocean_depth"`
	MaxLandHeight int `yaml:"max_land_height"`

	// Mountains
	MountainAttempts        int `yaml:"mountain_attempts"`
	MountainRanges          int `yaml:"mountain_ranges"`
	MountainMinSize         int `yaml:"mountain_min_size"`
	MountainTargetSize      int `yaml:"mountain_target_size"`
	MountainTargetSpread    int `yaml:"mountain_target_spread"`
	CoastalMountainDistance int `yaml:"coastal_mountain_distance"`
	MountainAltitudeScore   int `yaml:"mountain_altitude_score"`

	// Climate
	CoastalDistance     int     `yaml:"coastal_distance"`
	EdgeBlendDistance   int     `yaml:"edge_blend_distance"`
	WestCoastDistance   int     `yaml:"west_coast_distance"`
	CoastalBias         float32 `yaml:"coastal_bias"`
	MildTemperature     float32 `yaml:"mild_temperature"`
	WetRainfall         float32 `yaml:"wet_rainfall"`
	WestCoastVariance   float32 `yaml:"west_coast_variance"`
	DryRainfall         float32 `yaml:"dry_rainfall"`
	SoakedRainfall      float32 `yaml:"soaked_rainfall"`
	FreezingTemperature float32 `yaml:"freezing_temperature"`
	ThresholdJitter     float32 `yaml:"threshold_jitter"`

	// Areas
	AreaSpacing float64 `yaml:"area_spacing"`
	AreaWarp    float64 `yaml:"area_warp"`

	// Rivers
	RiverDirectionStride  int     `yaml:"river_direction_stride"`
	RiverEdgeLength       float32 `yaml:"river_edge_length"`
	RiverVertexSeparation float32 `yaml:"river_vertex_separation"`
	RiverGrowthAttempts   int     `yaml:"river_growth_attempts"`
	RiverBranchChance     int     `yaml:"river_branch_chance"`
	RiverMaxDepth         int     `yaml:"river_max_depth"`
	RiverSpread           float32 `yaml:"river_spread"`
	RiverFeather          float32 `yaml:"river_feather"`
	RiverStartWidth       int32   `yaml:"river_start_width"`
	RiverWidthStep        int32   `yaml:"river_width_step"`
	RiverMaxWidth         int32   `yaml:"river_max_width"`
	AffectDistance        float32 `yaml:"affect_distance"`

	// Lakes
	LakeChance             int     `yaml:"lake_chance"`
	LakeMinDistanceToOcean int     `yaml:"lake_min_distance_to_ocean"`
	LakeMinDistanceToEdge  int     `yaml:"lake_min_distance_to_edge"`
	LakeRainfallBonus      float32 `yaml:"lake_rainfall_bonus"`
}

// DefaultSettings returns the tuned settings.
func DefaultSettings() Settings {
	return Settings{
		RegionCacheSize:    256,
		PartitionCacheSize: 1024,

		ContinentBias:   0.05,
		CellNoiseBias:   0.5,
		IslandThreshold: 0.55,
		SmallOceanSize:  180,

		OceanSkipChance:     15,
		EdgeSkipChance:      13,
		WestCoastSkipChance: 15,

		MaxOceanDepth: 16,
		MaxLandHeight: 12,

		MountainAttempts:        16,
		MountainRanges:          3,
		MountainMinSize:         45,
		MountainTargetSize:      120,
		MountainTargetSpread:    200,
		CoastalMountainDistance: 3,
		MountainAltitudeScore:   6,

		CoastalDistance:     8,
		EdgeBlendDistance:   6,
		WestCoastDistance:   12,
		CoastalBias:         0.6,
		MildTemperature:     15,
		WetRainfall:         350,
		WestCoastVariance:   -0.5,
		DryRainfall:         120,
		SoakedRainfall:      380,
		FreezingTemperature: 0,
		ThresholdJitter:     0.2,

		AreaSpacing: 12,
		AreaWarp:    4,

		RiverDirectionStride:  3,
		RiverEdgeLength:       3,
		RiverVertexSeparation: 2,
		RiverGrowthAttempts:   6,
		RiverBranchChance:     3,
		RiverMaxDepth:         24,
		RiverSpread:           0.6,
		RiverFeather:          0.35,
		RiverStartWidth:       2,
		RiverWidthStep:        2,
		RiverMaxWidth:         24,
		AffectDistance:        8,

		LakeChance:             8,
		LakeMinDistanceToOcean: 4,
		LakeMinDistanceToEdge:  3,
		LakeRainfallBonus:      60,
	}
}

// LoadSettings reads settings from a yaml file. Missing keys keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return settings, nil
}

// Validate returns an error if the settings can't be used.
func (s *Settings) Validate() error {
	if s.RegionCacheSize <= 0 || s.PartitionCacheSize <= 0 {
		return errors.New("cache sizes must be positive")
	}
	if s.OceanSkipChance < 0 || s.EdgeSkipChance < 0 || s.WestCoastSkipChance < 0 {
		return errors.New("skip chances must not be negative")
	}
	if s.SmallOceanSize < 0 {
		return errors.New("small ocean size must not be negative")
	}
	if s.MaxOceanDepth <= 0 || s.MaxOceanDepth > 127 || s.MaxLandHeight <= 0 || s.MaxLandHeight > 127 {
		return errors.New("max ocean depth and max land height must be in [1, 127]")
	}
	if s.MountainMinSize <= 0 {
		return fmt.Errorf("mountain min size %d must be positive", s.MountainMinSize)
	}
	if s.MountainTargetSize <= s.MountainMinSize || s.MountainTargetSpread < 0 {
		return fmt.Errorf("mountain target size %d+%d must exceed mountain min size %d", s.MountainTargetSize, s.MountainTargetSpread, s.MountainMinSize)
	}
	if s.MountainAltitudeScore < 0 {
		return errors.New("mountain altitude score must not be negative")
	}
	if s.CoastalDistance <= 0 || s.EdgeBlendDistance <= 0 || s.WestCoastDistance <= 0 {
		return errors.New("climate distances must be positive")
	}
	if s.AreaSpacing <= 0 {
		return errors.New("area spacing must be positive")
	}
	if s.RiverDirectionStride <= 0 || s.RiverGrowthAttempts <= 0 || s.RiverMaxDepth < 0 {
		return errors.New("river direction stride and growth attempts must be positive")
	}
	if s.RiverBranchChance < 0 || s.LakeChance < 0 {
		return errors.New("river branch chance and lake chance must not be negative")
	}
	if s.RiverVertexSeparation <= 0 || s.RiverVertexSeparation >= s.RiverEdgeLength {
		return fmt.Errorf("river vertex separation %g must be in (0, river edge length %g)", s.RiverVertexSeparation, s.RiverEdgeLength)
	}
	if s.RiverStartWidth <= 0 || s.RiverWidthStep < 0 || s.RiverMaxWidth < s.RiverStartWidth {
		return errors.New("river widths must be positive and max width at least start width")
	}
	if s.AffectDistance < s.RiverEdgeLength*0.5 || s.AffectDistance >= units.PartitionWidthInGrid {
		return fmt.Errorf("affect distance %g must be in [river edge length / 2, %d)", s.AffectDistance, units.PartitionWidthInGrid)
	}
	return nil
}

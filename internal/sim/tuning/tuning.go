package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

type Tuning struct {
	WorldGen WorldGen `yaml:"worldgen" json:"worldgen"`
	Chunks   Chunks   `yaml:"chunks" json:"chunks"`
	Cache    Cache    `yaml:"cache" json:"cache"`
}

type WorldGen struct {
	Seed             int64   `yaml:"seed" json:"seed"`
	BaseHeight       float64 `yaml:"base_height" json:"base_height"`
	HeightScale      float64 `yaml:"height_scale" json:"height_scale"`
	Frequency        float64 `yaml:"frequency" json:"frequency"`
	Octaves          int     `yaml:"octaves" json:"octaves"`
	Persistence      float64 `yaml:"persistence" json:"persistence"`
	Lacunarity       float64 `yaml:"lacunarity" json:"lacunarity"`
	TemperatureScale float64 `yaml:"temperature_scale" json:"temperature_scale"`
	MoistureScale    float64 `yaml:"moisture_scale" json:"moisture_scale"`

	Biomes BiomeThresholds `yaml:"biomes" json:"biomes"`
}

type BiomeThresholds struct {
	LowlandHeight  int     `yaml:"lowland_height" json:"lowland_height"`
	HillsHeight    int     `yaml:"hills_height" json:"hills_height"`
	MountainHeight int     `yaml:"mountain_height" json:"mountain_height"`
	SnowHeight     int     `yaml:"snow_height" json:"snow_height"`
	BeachMoisture  float64 `yaml:"beach_moisture" json:"beach_moisture"`
	ColdTemp       float64 `yaml:"cold_temp" json:"cold_temp"`
	HotTemp        float64 `yaml:"hot_temp" json:"hot_temp"`
	DryMoisture    float64 `yaml:"dry_moisture" json:"dry_moisture"`
	ForestMoisture float64 `yaml:"forest_moisture" json:"forest_moisture"`
	WetMoisture    float64 `yaml:"wet_moisture" json:"wet_moisture"`
}

type Chunks struct {
	RenderDistance  int `yaml:"render_distance" json:"render_distance"`
	GeneratePerTick int `yaml:"generate_per_tick" json:"generate_per_tick"`
	// 0 rebuilds every dirty mesh each tick.
	MeshesPerTick int `yaml:"meshes_per_tick" json:"meshes_per_tick"`
}

type Cache struct {
	MaxEntries  int `yaml:"max_entries" json:"max_entries"`
	MaxMemoryMB int `yaml:"max_memory_mb" json:"max_memory_mb"`
}

func Defaults() Tuning {
	return Tuning{
		WorldGen: WorldGen{
			Seed:             42,
			BaseHeight:       10,
			HeightScale:      40,
			Frequency:        0.01,
			Octaves:          6,
			Persistence:      0.5,
			Lacunarity:       2.0,
			TemperatureScale: 0.005,
			MoistureScale:    0.005,
			Biomes: BiomeThresholds{
				LowlandHeight:  5,
				HillsHeight:    25,
				MountainHeight: 40,
				SnowHeight:     50,
				BeachMoisture:  0.5,
				ColdTemp:       0.35,
				HotTemp:        0.65,
				DryMoisture:    0.4,
				ForestMoisture: 0.55,
				WetMoisture:    0.8,
			},
		},
		Chunks: Chunks{
			RenderDistance:  8,
			GeneratePerTick: 2,
		},
		Cache: Cache{
			MaxEntries:  256,
			MaxMemoryMB: 64,
		},
	}
}

// Load reads a YAML tuning file over Defaults, so omitted keys keep their
// default values, then validates the result.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

//go:embed tuning.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("tuning.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Validate checks t against the embedded JSON schema and the cross-field
// ordering rules the schema cannot express.
func (t Tuning) Validate() error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return err
	}

	b := t.WorldGen.Biomes
	if !(b.LowlandHeight <= b.HillsHeight && b.HillsHeight <= b.MountainHeight && b.MountainHeight <= b.SnowHeight) {
		return fmt.Errorf("biome heights must be ordered: lowland<=hills<=mountain<=snow")
	}
	if b.ColdTemp > b.HotTemp {
		return fmt.Errorf("cold_temp %.2f above hot_temp %.2f", b.ColdTemp, b.HotTemp)
	}
	return nil
}

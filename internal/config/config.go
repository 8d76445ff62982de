package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-viper/mapstructure/v2"
	"github.com/setanarut/crane"
	"github.com/setanarut/vec"
	"github.com/spf13/viper"
)

// FileName is the name of the config file looked up by Load.
const FileName = "crane.cfg.json"

// CrateConfig is one crate entry of the config file.
type CrateConfig struct {
	X     float64   `json:"x" mapstructure:"x"`
	Z     float64   `json:"z" mapstructure:"z"`
	Size  []float64 `json:"size" mapstructure:"size"`
	Yaw   float64   `json:"yaw" mapstructure:"yaw"`
	Color string    `json:"color" mapstructure:"color"`
}

// ContainerConfig holds the drop container settings.
type ContainerConfig struct {
	X         float64 `json:"x" mapstructure:"x"`
	Z         float64 `json:"z" mapstructure:"z"`
	Length    float64 `json:"length" mapstructure:"length"`
	Width     float64 `json:"width" mapstructure:"width"`
	Height    float64 `json:"height" mapstructure:"height"`
	Thickness float64 `json:"thickness" mapstructure:"thickness"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./cranelogs")
	viper.SetDefault("frameRate", 60)
	viper.SetDefault("duration", "30s")

	setStructDefaults("dimensions", crane.DefaultDimensions())
	setStructDefaults("rates.manual", crane.DefaultManualRates())
	setStructDefaults("rates.sequence", crane.DefaultSequenceRates())

	off := crane.DefaultCarryOffset
	viper.SetDefault("carryOffset", []float64{off[0], off[1], off[2]})

	crates := []map[string]any{}
	for _, c := range crane.DefaultCrates() {
		crates = append(crates, map[string]any{
			"x":     c.Position.X,
			"z":     c.Position.Y,
			"size":  []float64{c.Size[0], c.Size[1], c.Size[2]},
			"yaw":   c.Yaw,
			"color": c.Material.String(),
		})
	}
	viper.SetDefault("crates", crates)

	ct := crane.DefaultContainer()
	viper.SetDefault("container.x", ct.Position.X)
	viper.SetDefault("container.z", ct.Position.Y)
	viper.SetDefault("container.length", ct.Length)
	viper.SetDefault("container.width", ct.Width)
	viper.SetDefault("container.height", ct.Height)
	viper.SetDefault("container.thickness", ct.Thickness)
}

// setStructDefaults registers every field of v under prefix, keyed by its
// mapstructure tag.
func setStructDefaults(prefix string, v any) {
	fields := map[string]any{}
	if err := mapstructure.Decode(v, &fields); err != nil {
		panic(fmt.Sprintf("config: defaults for %s: %v", prefix, err))
	}
	for k, val := range fields {
		viper.SetDefault(prefix+"."+k, val)
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetDimensions returns the crane dimension table.
func GetDimensions() (crane.Dimensions, error) {
	var d crane.Dimensions
	if err := unmarshalKey("dimensions", &d); err != nil {
		return d, fmt.Errorf("decoding dimensions: %w", err)
	}
	return d, nil
}

// GetManualRates returns the manual control speeds.
func GetManualRates() (crane.ManualRates, error) {
	var r crane.ManualRates
	if err := unmarshalKey("rates.manual", &r); err != nil {
		return r, fmt.Errorf("decoding manual rates: %w", err)
	}
	return r, nil
}

// GetSequenceRates returns the scripted phase speeds.
func GetSequenceRates() (crane.SequenceRates, error) {
	var r crane.SequenceRates
	if err := unmarshalKey("rates.sequence", &r); err != nil {
		return r, fmt.Errorf("decoding sequence rates: %w", err)
	}
	return r, nil
}

// GetCarryOffset returns where a grabbed crate hangs in the claw frame.
func GetCarryOffset() (mgl64.Vec3, error) {
	return vec3("carryOffset", viper.Get("carryOffset"))
}

// GetCrates returns the crate placements.
func GetCrates() ([]crane.CrateSpec, error) {
	var raw []CrateConfig
	if err := unmarshalKey("crates", &raw); err != nil {
		return nil, fmt.Errorf("decoding crates: %w", err)
	}
	specs := make([]crane.CrateSpec, 0, len(raw))
	for i, c := range raw {
		size, err := vec3(fmt.Sprintf("crates[%d].size", i), c.Size)
		if err != nil {
			return nil, err
		}
		m, err := crane.ParseMaterial(c.Color)
		if err != nil {
			return nil, fmt.Errorf("crates[%d]: %w", i, err)
		}
		specs = append(specs, crane.CrateSpec{
			Position: vec.Vec2{X: c.X, Y: c.Z},
			Size:     size,
			Yaw:      c.Yaw,
			Material: m,
		})
	}
	return specs, nil
}

// GetContainer returns the drop container settings.
func GetContainer() (crane.ContainerSpec, error) {
	var c ContainerConfig
	if err := unmarshalKey("container", &c); err != nil {
		return crane.ContainerSpec{}, fmt.Errorf("decoding container: %w", err)
	}
	return crane.ContainerSpec{
		Position:  vec.Vec2{X: c.X, Y: c.Z},
		Length:    c.Length,
		Width:     c.Width,
		Height:    c.Height,
		Thickness: c.Thickness,
	}, nil
}

// unmarshalKey decodes the subtree at key into out. Keys the config file
// leaves out below key keep their defaults.
func unmarshalKey(key string, out any) error {
	var node any = viper.AllSettings()
	for _, part := range strings.Split(strings.ToLower(key), ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return fmt.Errorf("%s is not a section", key)
		}
		node = m[part]
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(node)
}

func vec3(key string, raw any) (mgl64.Vec3, error) {
	var xs []float64
	if err := mapstructure.WeakDecode(raw, &xs); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("decoding %s: %w", key, err)
	}
	if len(xs) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("decoding %s: want 3 components, got %d", key, len(xs))
	}
	return mgl64.Vec3{xs[0], xs[1], xs[2]}, nil
}

// Options returns the simulation options described by the loaded config.
func Options() ([]crane.Option, error) {
	d, err := GetDimensions()
	if err != nil {
		return nil, err
	}
	manual, err := GetManualRates()
	if err != nil {
		return nil, err
	}
	seq, err := GetSequenceRates()
	if err != nil {
		return nil, err
	}
	offset, err := GetCarryOffset()
	if err != nil {
		return nil, err
	}
	crates, err := GetCrates()
	if err != nil {
		return nil, err
	}
	container, err := GetContainer()
	if err != nil {
		return nil, err
	}
	return []crane.Option{
		crane.WithDimensions(d),
		crane.WithManualRates(manual),
		crane.WithSequenceRates(seq),
		crane.WithCarryOffset(offset),
		crane.WithCrates(crates),
		crane.WithContainer(container),
	}, nil
}

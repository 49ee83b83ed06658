package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/golangdaddy/racer/pkg/physics"
	"github.com/golangdaddy/racer/pkg/race"
	"github.com/golangdaddy/racer/pkg/road"
	"github.com/golangdaddy/racer/pkg/vehicle"
)

//go:embed default.yaml
var defaultConfig []byte

// EnvPrefix prefixes environment overrides, e.g. RACER_LOG_LEVEL.
const EnvPrefix = "RACER"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ScreenConfig holds window settings
type ScreenConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	TPS    int    `mapstructure:"tps"`
}

// PhysicsConfig holds box2d settings
type PhysicsConfig struct {
	PixelsPerMeter     float64 `mapstructure:"pixels_per_meter"`
	VelocityIterations int     `mapstructure:"velocity_iterations"`
	PositionIterations int     `mapstructure:"position_iterations"`
}

// CarConfig holds the car body settings
type CarConfig struct {
	Mass        float64 `mapstructure:"mass"`
	Damping     float64 `mapstructure:"damping"`
	MaxVelocity float64 `mapstructure:"max_velocity"`
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
}

// HandlingConfig holds the control model constants
type HandlingConfig struct {
	AccelerateForce float64 `mapstructure:"accelerate_force"`
	BrakeForce      float64 `mapstructure:"brake_force"`
	StopSpeed       float64 `mapstructure:"stop_speed"`
	TurnSpeed       float64 `mapstructure:"turn_speed"`
	Drift           float64 `mapstructure:"drift"`
}

// RaceConfig selects what to race on
type RaceConfig struct {
	Track string `mapstructure:"track"`
}

// TrackConfig is one track record as written in the config file
type TrackConfig struct {
	Name       string      `mapstructure:"name"`
	Image      string      `mapstructure:"image"`
	Start      []float64   `mapstructure:"start"`
	OuterBound [][]float64 `mapstructure:"outer_bound"`
	InnerBound [][]float64 `mapstructure:"inner_bound"`
}

// Config is the full game configuration
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Screen   ScreenConfig   `mapstructure:"screen"`
	Physics  PhysicsConfig  `mapstructure:"physics"`
	Car      CarConfig      `mapstructure:"car"`
	Handling HandlingConfig `mapstructure:"handling"`
	Race     RaceConfig     `mapstructure:"race"`
	Tracks   []TrackConfig  `mapstructure:"tracks"`

	// Warnings holds problems that do not stop the game, such as an inner
	// bound poking out of its outer bound.
	Warnings []error `mapstructure:"-"`

	baseDir string
	tracks  []*road.Track
}

// Flags registers the command line flags Load understands
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("racer", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a YAML config file merged over the defaults")
	fs.StringP("track", "t", "", "name of the track to race on")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	return fs
}

// Load reads the embedded defaults, merges the file at path over them when
// path is not empty, applies environment and flag overrides, and validates
// the result. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("error reading default config: %w", err)
	}

	baseDir := ""
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		baseDir = filepath.Dir(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"race.track": "track", "log_level": "log-level"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{baseDir: baseDir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and builds the tracks. It must pass before
// a race starts.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.Screen.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.Screen.TPS)
	case c.Car.Mass <= 0:
		return fmt.Errorf("%w: car mass %v must be positive", ErrInvalidConfig, c.Car.Mass)
	case c.Car.Damping <= 0 || c.Car.Damping > 1:
		return fmt.Errorf("%w: car damping %v outside (0, 1]", ErrInvalidConfig, c.Car.Damping)
	case c.Car.Width <= 0 || c.Car.Height <= 0:
		return fmt.Errorf("%w: car size %vx%v", ErrInvalidConfig, c.Car.Width, c.Car.Height)
	case c.Physics.PixelsPerMeter <= 0:
		return fmt.Errorf("%w: pixels per meter %v", ErrInvalidConfig, c.Physics.PixelsPerMeter)
	}
	if err := c.HandlingSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Tracks) == 0 {
		return fmt.Errorf("%w: no tracks defined", ErrInvalidConfig)
	}

	c.Warnings = nil
	c.tracks = make([]*road.Track, 0, len(c.Tracks))
	seen := make(map[string]bool, len(c.Tracks))
	for i, tc := range c.Tracks {
		def, err := tc.definition(c.baseDir)
		if err != nil {
			return fmt.Errorf("%w: track %d: %w", ErrInvalidConfig, i, err)
		}
		if seen[def.Name] {
			return fmt.Errorf("%w: duplicate track name %q", ErrInvalidConfig, def.Name)
		}
		seen[def.Name] = true

		if def.Image != "" {
			if _, err := os.Stat(def.Image); err != nil {
				return fmt.Errorf("%w: track %q image: %w", ErrInvalidConfig, def.Name, err)
			}
		}

		track, err := road.NewTrack(def)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := track.Validate(); err != nil {
			if !errors.Is(err, road.ErrInnerNotEnclosed) {
				return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
			}
			c.Warnings = append(c.Warnings, err)
		}
		c.tracks = append(c.tracks, track)
	}

	if c.Race.Track != "" && c.TrackIndex(c.Race.Track) < 0 {
		return fmt.Errorf("%w: unknown track %q", ErrInvalidConfig, c.Race.Track)
	}
	return nil
}

// RoadTracks returns the validated tracks in config order
func (c *Config) RoadTracks() []*road.Track {
	return c.tracks
}

// TrackIndex returns the position of the named track, or -1
func (c *Config) TrackIndex(name string) int {
	for i, t := range c.tracks {
		if t.Name() == name {
			return i
		}
	}
	return -1
}

// SelectedTrack returns the index of the track to start on
func (c *Config) SelectedTrack() int {
	if i := c.TrackIndex(c.Race.Track); i >= 0 {
		return i
	}
	return 0
}

// HandlingSettings converts the handling section
func (c *Config) HandlingSettings() vehicle.Handling {
	return vehicle.Handling{
		AccelerateForce: c.Handling.AccelerateForce,
		BrakeForce:      c.Handling.BrakeForce,
		StopSpeed:       c.Handling.StopSpeed,
		TurnSpeed:       c.Handling.TurnSpeed,
		Drift:           c.Handling.Drift,
	}
}

// RaceSettings converts the car, handling and physics sections
func (c *Config) RaceSettings() race.Settings {
	return race.Settings{
		Car: vehicle.Car{
			Mass:        c.Car.Mass,
			Damping:     c.Car.Damping,
			MaxVelocity: c.Car.MaxVelocity,
			Width:       c.Car.Width,
			Height:      c.Car.Height,
		},
		Handling: c.HandlingSettings(),
		Physics: physics.Options{
			PixelsPerMeter:     c.Physics.PixelsPerMeter,
			VelocityIterations: c.Physics.VelocityIterations,
			PositionIterations: c.Physics.PositionIterations,
		},
	}
}

func (tc TrackConfig) definition(baseDir string) (road.Definition, error) {
	if tc.Name == "" {
		return road.Definition{}, errors.New("track has no name")
	}
	start, err := toPoint(tc.Start)
	if err != nil {
		return road.Definition{}, fmt.Errorf("track %q start: %w", tc.Name, err)
	}
	outer, err := toPolygon(tc.OuterBound)
	if err != nil {
		return road.Definition{}, fmt.Errorf("track %q outer_bound: %w", tc.Name, err)
	}
	inner, err := toPolygon(tc.InnerBound)
	if err != nil {
		return road.Definition{}, fmt.Errorf("track %q inner_bound: %w", tc.Name, err)
	}

	image := tc.Image
	if image != "" && baseDir != "" && !filepath.IsAbs(image) {
		image = filepath.Join(baseDir, image)
	}
	return road.Definition{
		Name:  tc.Name,
		Image: image,
		Start: start,
		Outer: outer,
		Inner: inner,
	}, nil
}

func toPoint(xy []float64) (road.Point, error) {
	if len(xy) != 2 {
		return road.Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(xy))
	}
	return road.Point{X: xy[0], Y: xy[1]}, nil
}

func toPolygon(points [][]float64) (road.Polygon, error) {
	poly := make(road.Polygon, 0, len(points))
	for i, xy := range points {
		p, err := toPoint(xy)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		poly = append(poly, p)
	}
	return poly, nil
}

// Package config loads runtime settings from defaults, an optional config file, .env and TASKFALL_ variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/timeline"
)

// Keys
const (
	KeyDayStart         = "day.start"
	KeyDayEnd           = "day.end"
	KeyTimelineTop      = "timeline.top"
	KeyTimelineBottom   = "timeline.bottom"
	KeyBoundaryMargin   = "boundary.margin"
	KeyBoundaryInterval = "boundary.interval"
	KeyLongPress        = "gesture.longpress"
	KeyGravity          = "physics.gravity"
	KeyPhysicsStep      = "physics.step"
	KeyGutter           = "view.gutter"
	KeyAspect           = "view.aspect"
	KeySourceDB         = "source.db"
	KeySourceYAML       = "source.yaml"
	KeyAudioEnabled     = "audio.enabled"
	KeyAudioVolume      = "audio.volume"
	KeyFPS              = "render.fps"
	KeyDebug            = "debug"
)

// EnvPrefix prefixes environment overrides: day.start -> TASKFALL_DAY_START
const EnvPrefix = "TASKFALL"

// ConfigName is the config file name searched in $HOME and the working directory
const ConfigName = ".taskfall"

var errInvalid = errors.New("invalid config")

// Config is the resolved runtime configuration
type Config struct {
	DayStart         string
	DayEnd           string
	TimelineTop      float64
	TimelineBottom   float64
	BoundaryMargin   float64
	BoundaryInterval time.Duration
	LongPress        time.Duration
	Gravity          float64
	PhysicsStep      time.Duration
	Gutter           float64
	Aspect           float64
	SourceDB         string
	SourceYAML       string
	AudioEnabled     bool
	AudioVolume      float64
	FPS              int
	Debug            bool

	// File is the config file that was read, empty when none
	File string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDayStart, parameter.DefaultDayStart)
	v.SetDefault(KeyDayEnd, parameter.DefaultDayEnd)
	v.SetDefault(KeyTimelineTop, parameter.TimelineTopMargin)
	v.SetDefault(KeyTimelineBottom, parameter.TimelineBottomMargin)
	v.SetDefault(KeyBoundaryMargin, parameter.ViewBoundaryMargin)
	v.SetDefault(KeyBoundaryInterval, parameter.BoundarySampleInterval)
	v.SetDefault(KeyLongPress, parameter.LongPressDuration)
	v.SetDefault(KeyGravity, parameter.Gravity)
	v.SetDefault(KeyPhysicsStep, parameter.PhysicsStepInterval)
	v.SetDefault(KeyGutter, parameter.GutterCells)
	v.SetDefault(KeyAspect, parameter.CellAspect)
	v.SetDefault(KeySourceDB, "~/.taskfall.db")
	v.SetDefault(KeySourceYAML, "")
	v.SetDefault(KeyAudioEnabled, true)
	v.SetDefault(KeyAudioVolume, 0.35)
	v.SetDefault(KeyFPS, int(time.Second/parameter.FrameUpdateInterval))
	v.SetDefault(KeyDebug, false)
}

// LoadEnvFile loads variables from path into the environment when the file exists
// Variables already set are kept
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration; path selects an explicit config file,
// otherwise .taskfall.* is searched in $HOME and the working directory
func Load(path string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", path, err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", expanded, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		DayStart:         v.GetString(KeyDayStart),
		DayEnd:           v.GetString(KeyDayEnd),
		TimelineTop:      v.GetFloat64(KeyTimelineTop),
		TimelineBottom:   v.GetFloat64(KeyTimelineBottom),
		BoundaryMargin:   v.GetFloat64(KeyBoundaryMargin),
		BoundaryInterval: v.GetDuration(KeyBoundaryInterval),
		LongPress:        v.GetDuration(KeyLongPress),
		Gravity:          v.GetFloat64(KeyGravity),
		PhysicsStep:      v.GetDuration(KeyPhysicsStep),
		Gutter:           v.GetFloat64(KeyGutter),
		Aspect:           v.GetFloat64(KeyAspect),
		SourceDB:         v.GetString(KeySourceDB),
		SourceYAML:       v.GetString(KeySourceYAML),
		AudioEnabled:     v.GetBool(KeyAudioEnabled),
		AudioVolume:      v.GetFloat64(KeyAudioVolume),
		FPS:              v.GetInt(KeyFPS),
		Debug:            v.GetBool(KeyDebug),
		File:             v.ConfigFileUsed(),
	}

	var err error
	if cfg.SourceDB, err = expand(cfg.SourceDB); err != nil {
		return nil, err
	}
	if cfg.SourceYAML, err = expand(cfg.SourceYAML); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return out, nil
}

// Validate rejects malformed clocks and non-positive timings or geometry
func (c *Config) Validate() error {
	if _, err := timeline.ParseClock(c.DayStart); err != nil {
		return fmt.Errorf("%w: %s %q: %w", errInvalid, KeyDayStart, c.DayStart, err)
	}
	if _, err := timeline.ParseClock(c.DayEnd); err != nil {
		return fmt.Errorf("%w: %s %q: %w", errInvalid, KeyDayEnd, c.DayEnd, err)
	}
	durations := []struct {
		key string
		d   time.Duration
	}{
		{KeyBoundaryInterval, c.BoundaryInterval},
		{KeyLongPress, c.LongPress},
		{KeyPhysicsStep, c.PhysicsStep},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", errInvalid, d.key, d.d)
		}
	}
	if c.Aspect <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", errInvalid, KeyAspect, c.Aspect)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", errInvalid, KeyFPS, c.FPS)
	}
	if c.BoundaryMargin < 0 || c.Gutter < 0 {
		return fmt.Errorf("%w: %s and %s must not be negative", errInvalid, KeyBoundaryMargin, KeyGutter)
	}
	if c.AudioVolume < 0 || c.AudioVolume > 1 {
		return fmt.Errorf("%w: %s must be within [0,1], got %v", errInvalid, KeyAudioVolume, c.AudioVolume)
	}
	if c.TimelineTop < 0 || c.TimelineBottom < 0 {
		return fmt.Errorf("%w: timeline margins must not be negative", errInvalid)
	}
	return nil
}

// IsInvalid reports whether err came from Validate
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid)
}

// Timeline returns the day window and sweep margins
func (c *Config) Timeline() timeline.Config {
	start, _ := timeline.ParseClock(c.DayStart)
	end, _ := timeline.ParseClock(c.DayEnd)
	return timeline.Config{
		DayStart: start,
		DayEnd:   end,
		Top:      c.TimelineTop,
		Bottom:   c.TimelineBottom,
	}
}

// FrameInterval converts FPS to a frame period
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return parameter.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.FPS)
}

// Source returns the task source path: the YAML file when set, otherwise the database
func (c *Config) Source() string {
	if c.SourceYAML != "" {
		return c.SourceYAML
	}
	return c.SourceDB
}

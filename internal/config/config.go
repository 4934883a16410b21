package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"clipmerge/internal/plan"
)

// Config captures the canvas, normalization, and transition settings for a
// merge. Values omitted from the YAML fall back to the built-in defaults.
type Config struct {
	Version     int               `yaml:"version"`
	Video       VideoConfig       `yaml:"video"`
	Audio       AudioConfig       `yaml:"audio"`
	Transitions TransitionsConfig `yaml:"transitions"`
	Output      OutputConfig      `yaml:"output"`
}

// VideoConfig contains canvas sizing and normalization parameters.
type VideoConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	FPS         int    `yaml:"fps"`
	PixelFormat string `yaml:"pixel_format"`
	PadColor    string `yaml:"pad_color"`
}

// AudioConfig pins the audio normalization targets.
type AudioConfig struct {
	SampleRate    int    `yaml:"sample_rate"`
	SampleFormat  string `yaml:"sample_format"`
	ChannelLayout string `yaml:"channel_layout"`
}

// TransitionsConfig holds the fixed transition timings.
type TransitionsConfig struct {
	FadeSeconds      float64 `yaml:"fade_s"`
	CrossfadeSeconds float64 `yaml:"crossfade_s"`
}

// OutputConfig selects the default container and quality tier.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Quality string `yaml:"quality"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Video: VideoConfig{
			Width:       1920,
			Height:      1080,
			FPS:         30,
			PixelFormat: "yuv420p",
			PadColor:    "black",
		},
		Audio: AudioConfig{
			SampleRate:    44100,
			SampleFormat:  "fltp",
			ChannelLayout: "stereo",
		},
		Transitions: TransitionsConfig{
			FadeSeconds:      0.5,
			CrossfadeSeconds: 1.0,
		},
		Output: OutputConfig{
			Format:  "mp4",
			Quality: "medium",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise
// returns the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML omitted.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Video.Width == 0 {
		c.Video.Width = defaults.Video.Width
	}
	if c.Video.Height == 0 {
		c.Video.Height = defaults.Video.Height
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = defaults.Video.FPS
	}
	if c.Video.PixelFormat == "" {
		c.Video.PixelFormat = defaults.Video.PixelFormat
	}
	if c.Video.PadColor == "" {
		c.Video.PadColor = defaults.Video.PadColor
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = defaults.Audio.SampleRate
	}
	if c.Audio.SampleFormat == "" {
		c.Audio.SampleFormat = defaults.Audio.SampleFormat
	}
	if c.Audio.ChannelLayout == "" {
		c.Audio.ChannelLayout = defaults.Audio.ChannelLayout
	}
	if c.Transitions.FadeSeconds == 0 {
		c.Transitions.FadeSeconds = defaults.Transitions.FadeSeconds
	}
	if c.Transitions.CrossfadeSeconds == 0 {
		c.Transitions.CrossfadeSeconds = defaults.Transitions.CrossfadeSeconds
	}
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
	if c.Output.Quality == "" {
		c.Output.Quality = defaults.Output.Quality
	}
}

// PlanOptions maps the configuration onto the compiler's option set. The
// transition, audio policy, and watermark come from the merge request, not
// the config file.
func (c Config) PlanOptions() plan.Options {
	return plan.Options{
		Width:            c.Video.Width,
		Height:           c.Video.Height,
		FPS:              c.Video.FPS,
		PixelFormat:      c.Video.PixelFormat,
		PadColor:         c.Video.PadColor,
		SampleRate:       c.Audio.SampleRate,
		SampleFormat:     c.Audio.SampleFormat,
		ChannelLayout:    c.Audio.ChannelLayout,
		FadeSeconds:      c.Transitions.FadeSeconds,
		CrossfadeSeconds: c.Transitions.CrossfadeSeconds,
	}
}

// EncodeParams resolves the configured container and quality tier.
func (c Config) EncodeParams() (plan.EncodeParams, error) {
	format, err := plan.ParseFormat(c.Output.Format)
	if err != nil {
		return plan.EncodeParams{}, err
	}
	quality, err := plan.ParseQuality(c.Output.Quality)
	if err != nil {
		return plan.EncodeParams{}, err
	}
	return plan.EncodeParamsFor(format, quality), nil
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/user/sequencestitch/pkg/ffargs"
	"github.com/user/sequencestitch/pkg/orchestrator"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/progress"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for sequencestitch.
type Config struct {
	// Binaries
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Working files
	TempDir       string `yaml:"temp_dir"`
	KeepArtifacts bool   `yaml:"keep_artifacts"`

	// Export
	FrameDuration float64      `yaml:"frame_duration"`
	Export        ExportConfig `yaml:"export"`

	// Import
	Import ImportConfig `yaml:"import"`

	// Progress
	Progress ProgressConfig `yaml:"progress"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ExportConfig holds the default export settings.
type ExportConfig struct {
	Format        string `yaml:"format"`
	Resolution    string `yaml:"resolution"`
	Quality       string `yaml:"quality"`
	FrameRate     int    `yaml:"frame_rate"`
	Hardware      bool   `yaml:"hardware"`
	Stacking      string `yaml:"stacking"`
	Spacing       int    `yaml:"spacing"`
	Normalization string `yaml:"normalization"`
}

// ImportConfig holds frame extraction settings.
type ImportConfig struct {
	SampleRate     int    `yaml:"sample_rate"`
	DecimateParams string `yaml:"decimate_params"`
	MaxSourceMB    int64  `yaml:"max_source_mb"`
}

// ProgressConfig tunes the encode progress estimate.
type ProgressConfig struct {
	SoftwareCostMs int `yaml:"software_cost_ms"`
	HardwareCostMs int `yaml:"hardware_cost_ms"`
	MinimumMs      int `yaml:"minimum_ms"`
	IntervalMs     int `yaml:"interval_ms"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	settings := pipeline.DefaultExportSettings()
	return Config{
		// Export
		FrameDuration: 2.0,
		Export: ExportConfig{
			Format:        string(settings.Format),
			Resolution:    string(settings.Resolution),
			Quality:       string(settings.Quality),
			FrameRate:     int(settings.FrameRate),
			Stacking:      string(settings.Stacking),
			Normalization: string(settings.Normalization),
		},

		// Import
		Import: ImportConfig{
			SampleRate:  ffargs.DefaultSampleRate,
			MaxSourceMB: 500,
		},

		// Progress
		Progress: ProgressConfig{
			SoftwareCostMs: int(progress.DefaultSoftwareCost / time.Millisecond),
			HardwareCostMs: int(progress.DefaultHardwareCost / time.Millisecond),
			MinimumMs:      int(progress.DefaultMinimum / time.Millisecond),
			IntervalMs:     int(progress.DefaultInterval / time.Millisecond),
		},

		// Logging
		LogLevel: "info",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ExportSettings converts the export section, validating every value.
func (c Config) ExportSettings() (pipeline.ExportSettings, error) {
	format, err := pipeline.ParseOutputFormat(c.Export.Format)
	if err != nil {
		return pipeline.ExportSettings{}, err
	}
	resolution, err := pipeline.ParseResolutionScale(c.Export.Resolution)
	if err != nil {
		return pipeline.ExportSettings{}, err
	}
	quality, err := pipeline.ParseQualityPreset(c.Export.Quality)
	if err != nil {
		return pipeline.ExportSettings{}, err
	}
	stacking, err := pipeline.ParseStackingMode(c.Export.Stacking)
	if err != nil {
		return pipeline.ExportSettings{}, err
	}
	normalization, err := pipeline.ParseNormalizationResolution(c.Export.Normalization)
	if err != nil {
		return pipeline.ExportSettings{}, err
	}

	settings := pipeline.ExportSettings{
		Format:        format,
		Resolution:    resolution,
		Quality:       quality,
		FrameRate:     pipeline.FrameRate(c.Export.FrameRate),
		Hardware:      c.Export.Hardware,
		Stacking:      stacking,
		Spacing:       c.Export.Spacing,
		Normalization: normalization,
	}
	if err := settings.Validate(); err != nil {
		return pipeline.ExportSettings{}, err
	}
	return settings, nil
}

// Validate checks the values that are not export settings.
func (c Config) Validate() error {
	if c.FrameDuration <= 0 {
		return fmt.Errorf("%w: frame_duration must be positive, got %v", pipeline.ErrInvalidSettings, c.FrameDuration)
	}
	if c.Import.SampleRate < 0 {
		return fmt.Errorf("%w: import.sample_rate must not be negative", pipeline.ErrInvalidSettings)
	}
	if c.Import.MaxSourceMB < 0 {
		return fmt.Errorf("%w: import.max_source_mb must not be negative", pipeline.ErrInvalidSettings)
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", pipeline.ErrInvalidSettings, err)
	}
	_, err := c.ExportSettings()
	return err
}

// Heuristic converts the progress section.
func (c Config) Heuristic() progress.Heuristic {
	return progress.Heuristic{
		SoftwareCost: time.Duration(c.Progress.SoftwareCostMs) * time.Millisecond,
		HardwareCost: time.Duration(c.Progress.HardwareCostMs) * time.Millisecond,
		Minimum:      time.Duration(c.Progress.MinimumMs) * time.Millisecond,
		Interval:     time.Duration(c.Progress.IntervalMs) * time.Millisecond,
	}
}

// ExtractOptions converts the import section.
func (c Config) ExtractOptions() ffargs.ExtractOptions {
	return ffargs.ExtractOptions{
		SampleRate:     c.Import.SampleRate,
		DecimateParams: c.Import.DecimateParams,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		TempDir:        c.TempDir,
		KeepArtifacts:  c.KeepArtifacts,
		MaxSourceBytes: c.Import.MaxSourceMB << 20,
	}
}

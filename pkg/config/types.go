package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Storage     StorageConfig   `mapstructure:"storage"`
	Recording   RecordingConfig `mapstructure:"recording"`
	Training    TrainingConfig  `mapstructure:"training"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Packaging   PackagingConfig `mapstructure:"packaging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// StorageConfig contains filesystem layout settings
type StorageConfig struct {
	DataRoot   string `mapstructure:"data_root"`
	SamplesDir string `mapstructure:"samples_dir"`
}

// RecordingConfig contains default session parameters
type RecordingConfig struct {
	SpeakersTotal   int `mapstructure:"speakers_total"`
	TakesPerSpeaker int `mapstructure:"takes_per_speaker"`
}

// TrainingConfig contains training script settings
type TrainingConfig struct {
	Script      string `mapstructure:"script"`
	LogPath     string `mapstructure:"log_path"`
	LogMaxLines int    `mapstructure:"log_max_lines"`
}

// DatabaseConfig contains run-history database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// PackagingConfig contains model packaging settings
type PackagingConfig struct {
	ModelsRoot string `mapstructure:"models_root"`
	OutputDir  string `mapstructure:"output_dir"`
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("RECORDER")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// Config file doesn't exist, which is fine - we'll use defaults
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("training.script") == "" {
		// The training script is resolved lazily at train time, but an empty
		// path can never resolve, so reject it up front
		return fmt.Errorf("training.script must not be empty")
	}

	// Auto-correct recording defaults into the ranges the session clamps to
	if n := viper.GetInt("recording.speakers_total"); n < 1 || n > 10 {
		viper.Set("recording.speakers_total", clamp(n, 1, 10))
	}
	if n := viper.GetInt("recording.takes_per_speaker"); n < 1 || n > 50 {
		viper.Set("recording.takes_per_speaker", clamp(n, 1, 50))
	}

	// Auto-correct invalid log line cap
	if viper.GetInt("training.log_max_lines") <= 0 {
		viper.Set("training.log_max_lines", 250)
	}

	return nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Training.Script == "" {
		return fmt.Errorf("training script path is required")
	}

	if c.Training.LogMaxLines <= 0 {
		c.Training.LogMaxLines = 250
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Storage defaults
	viper.SetDefault("storage.data_root", "./data")
	viper.SetDefault("storage.samples_dir", "./data/personal_samples")

	// Recording defaults
	viper.SetDefault("recording.speakers_total", 1)
	viper.SetDefault("recording.takes_per_speaker", 10)

	// Training defaults
	viper.SetDefault("training.script", "./train_microwakeword_macos.sh")
	viper.SetDefault("training.log_path", "./data/recorder_training.log")
	viper.SetDefault("training.log_max_lines", 250)

	// Database defaults
	viper.SetDefault("database.path", "./data/recorder.db")
	viper.SetDefault("database.verbose", false)

	// Packaging defaults
	viper.SetDefault("packaging.models_root", "./trained_models")
	viper.SetDefault("packaging.output_dir", ".")
}

package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()

	assert.Equal(t, 8080, viper.GetInt("server.port"))
	assert.Equal(t, 1, viper.GetInt("recording.speakers_total"))
	assert.Equal(t, 10, viper.GetInt("recording.takes_per_speaker"))
	assert.Equal(t, 250, viper.GetInt("training.log_max_lines"))
	assert.Equal(t, "./data/personal_samples", viper.GetString("storage.samples_dir"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "defaults pass",
			setup: func() {
				setDefaults()
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			setup: func() {
				setDefaults()
				viper.Set("server.port", 0)
			},
			wantErr: true,
		},
		{
			name: "empty training script",
			setup: func() {
				setDefaults()
				viper.Set("training.script", "")
			},
			wantErr: true,
		},
		{
			name: "out of range recording defaults are corrected",
			setup: func() {
				setDefaults()
				viper.Set("recording.speakers_total", 99)
				viper.Set("recording.takes_per_speaker", 0)
			},
			wantErr: false,
			check: func(t *testing.T) {
				assert.Equal(t, 10, viper.GetInt("recording.speakers_total"))
				assert.Equal(t, 1, viper.GetInt("recording.takes_per_speaker"))
			},
		},
		{
			name: "zero log cap is corrected",
			setup: func() {
				setDefaults()
				viper.Set("training.log_max_lines", 0)
			},
			wantErr: false,
			check: func(t *testing.T) {
				assert.Equal(t, 250, viper.GetInt("training.log_max_lines"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			tt.setup()
			err := validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Training: TrainingConfig{Script: "./train.sh"},
	}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 250, cfg.Training.LogMaxLines)

	cfg.Server.Port = -1
	assert.Error(t, cfg.Validate())
}

func TestEnvOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("RECORDER_SERVER_PORT", "9090")

	setDefaults()
	viper.SetEnvPrefix("RECORDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	assert.Equal(t, 9090, viper.GetInt("server.port"))
}

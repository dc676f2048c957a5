package cmd

import (
	"testing"

	"github.com/masterphooey/wakeword-recorder-api/pkg/config"
)

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("Failed to find serve command: %v", err)
	}

	for _, flag := range []string{"host", "port"} {
		if serveCmd.Flags().Lookup(flag) == nil {
			t.Errorf("Expected %q flag to be registered", flag)
		}
	}
}

func TestBuildDependencies(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Storage.SamplesDir = dir + "/samples"
	cfg.Training.Script = dir + "/train.sh"
	cfg.Training.LogPath = dir + "/training.log"
	cfg.Database.Path = dir + "/recorder.db"
	cfg.Recording.SpeakersTotal = 1
	cfg.Recording.TakesPerSpeaker = 10

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		t.Fatalf("buildDependencies() error = %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	if deps.Recorder == nil {
		t.Error("Expected recorder service to be wired")
	}
	if deps.Runs == nil {
		t.Error("Expected run history to be wired when database path is set")
	}
}

func TestBuildDependenciesWithoutDatabase(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Storage.SamplesDir = dir + "/samples"
	cfg.Training.Script = dir + "/train.sh"
	cfg.Training.LogPath = dir + "/training.log"
	cfg.Recording.SpeakersTotal = 1
	cfg.Recording.TakesPerSpeaker = 10

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		t.Fatalf("buildDependencies() error = %v", err)
	}
	if db != nil {
		t.Error("Expected no database without a configured path")
	}
	if deps.Runs != nil {
		t.Error("Expected run history to be disabled without a database")
	}
	if deps.Recorder == nil {
		t.Error("Expected recorder service to be wired")
	}
}

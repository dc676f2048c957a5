// Package packaging turns a trained model directory into a distributable
// artifact: the quantized tflite stream model plus a JSON manifest that
// voice-assistant firmwares consume.
package packaging

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// trainedModelRelPath is where the training script leaves the quantized model
const trainedModelRelPath = "wakeword/tflite_stream_state_internal_quant/stream_state_internal_quant.tflite"

// Options controls a single packaging run
type Options struct {
	Phrase     string
	SafeID     string // optional; derived from Phrase when empty
	Lang       string
	ModelsRoot string
	OutputDir  string
}

// Result reports the artifact paths written by Package
type Result struct {
	SafeID       string
	ModelPath    string
	ManifestPath string
}

// Manifest is the metadata file shipped next to the model
type Manifest struct {
	Type             string      `json:"type"`
	WakeWord         string      `json:"wake_word"`
	Author           string      `json:"author"`
	Website          string      `json:"website"`
	Model            string      `json:"model"`
	TrainedLanguages []string    `json:"trained_languages"`
	Version          int         `json:"version"`
	Micro            MicroConfig `json:"micro"`
}

// MicroConfig is the detection tuning block for the on-device runtime
type MicroConfig struct {
	ProbabilityCutoff     float64 `json:"probability_cutoff"`
	SlidingWindowSize     int     `json:"sliding_window_size"`
	FeatureStepSize       int     `json:"feature_step_size"`
	TensorArenaSize       int     `json:"tensor_arena_size"`
	MinimumESPHomeVersion string  `json:"minimum_esphome_version"`
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[^a-z0-9_]+`)
)

// DeriveID produces the artifact identifier: the explicit id if one was
// given, otherwise the phrase, squeezed to [a-z0-9_]. When nothing survives,
// a hash of the phrase keeps the name unique and non-empty.
func DeriveID(phrase, explicit string) string {
	src := explicit
	if src == "" {
		src = phrase
	}
	id := strings.ToLower(src)
	id = whitespaceRe.ReplaceAllString(id, "_")
	id = unsafeRe.ReplaceAllString(id, "")
	if id == "" {
		sum := sha1.Sum([]byte(phrase))
		id = fmt.Sprintf("wakeword_%x", sum[:4])
	}
	return id
}

// Package copies the trained model out of ModelsRoot and writes the manifest.
// It is a stateless one-shot transformation with no concurrency concerns.
func Package(opts Options) (*Result, error) {
	safeID := DeriveID(opts.Phrase, opts.SafeID)

	src := filepath.Join(opts.ModelsRoot, trainedModelRelPath)
	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("model not found at %s: %w", src, err)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	modelPath := filepath.Join(outDir, safeID+".tflite")
	if err := copyFile(src, modelPath); err != nil {
		return nil, fmt.Errorf("failed to copy model: %w", err)
	}

	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	manifest := Manifest{
		Type:             "micro",
		WakeWord:         opts.Phrase,
		Author:           "master phooey",
		Website:          "https://github.com/MasterPhooey/MicroWakeWord-Trainer-Docker",
		Model:            filepath.Base(modelPath),
		TrainedLanguages: []string{lang},
		Version:          2,
		Micro: MicroConfig{
			ProbabilityCutoff:     0.97,
			SlidingWindowSize:     5,
			FeatureStepSize:       10,
			TensorArenaSize:       30000,
			MinimumESPHomeVersion: "2024.7.0",
		},
	}

	manifestPath := filepath.Join(outDir, safeID+".json")
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return &Result{
		SafeID:       safeID,
		ModelPath:    modelPath,
		ManifestPath: manifestPath,
	}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masterphooey/wakeword-recorder-api/pkg/config"
	"github.com/masterphooey/wakeword-recorder-api/pkg/packaging"
)

var (
	packagePhrase     string
	packageID         string
	packageLang       string
	packageModelsRoot string
	packageOutputDir  string
)

// packageCmd represents the package command
var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Package a trained model for deployment",
	Long: `Package the most recently trained model into a distributable artifact.

The quantized tflite stream model is copied out of the trained models
directory and a JSON manifest with detection tuning parameters is written
next to it, named after the normalized wake-word identifier.

Example:
  recorder-api package --phrase "hey norman" --lang en
  recorder-api package --phrase "Привет" --id privet --lang ru`,
	RunE: runPackage,
}

func init() {
	rootCmd.AddCommand(packageCmd)

	packageCmd.Flags().StringVar(&packagePhrase, "phrase", "", "wake-word phrase (required)")
	packageCmd.Flags().StringVar(&packageID, "id", "", "normalized identifier (derived from phrase when omitted)")
	packageCmd.Flags().StringVar(&packageLang, "lang", "en", "trained language tag (en, ru)")
	packageCmd.Flags().StringVar(&packageModelsRoot, "models-root", "", "trained models directory (overrides config)")
	packageCmd.Flags().StringVar(&packageOutputDir, "out", "", "output directory (overrides config)")
	_ = packageCmd.MarkFlagRequired("phrase")
}

func runPackage(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	modelsRoot := packageModelsRoot
	if modelsRoot == "" {
		modelsRoot = cfg.Packaging.ModelsRoot
	}
	outputDir := packageOutputDir
	if outputDir == "" {
		outputDir = cfg.Packaging.OutputDir
	}

	result, err := packaging.Package(packaging.Options{
		Phrase:     packagePhrase,
		SafeID:     packageID,
		Lang:       packageLang,
		ModelsRoot: modelsRoot,
		OutputDir:  outputDir,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s and %s\n", result.ModelPath, result.ManifestPath)
	return nil
}

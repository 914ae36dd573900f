// ABOUTME: Train command builds the bag-of-words classifier from the catalog
// ABOUTME: The saved model is what chat and say load at startup
package commands

import (
	"fmt"

	"github.com/harper/vegra/internal/catalog"
	"github.com/harper/vegra/internal/classifier"
	"github.com/spf13/cobra"
)

var trainOutput string

// NewTrainCmd creates the train command
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the intent classifier",
		Long: `Train the intent classifier from the catalog patterns.

Examples:
  vegra train
  vegra train --output ./model.json`,
		RunE: runTrain,
	}

	cmd.Flags().StringVarP(&trainOutput, "output", "o", "", "Model path (default: model_path from config)")

	return cmd
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	model, err := classifier.Train(cat)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}

	path := cfg.ModelPath
	if trainOutput != "" {
		path = trainOutput
	}
	if err := model.Save(path); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Trained on %d patterns across %d intents (%d words)\n",
			model.Samples, len(model.Tags), len(model.Vocab))
		fmt.Fprintf(cmd.OutOrStdout(), "  Model: %s\n", path)
	}
	return nil
}

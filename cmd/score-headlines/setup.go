// ABOUTME: Cobra command for interactive model path setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate model artifact paths.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/score-headlines/internal/config"
	"github.com/2389-research/score-headlines/internal/tui"
)

func (c *cli) setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure the embedding model and classifier paths",
		Long:  "Interactive wizard to point score-headlines at its embedding model directory and SVM classifier artifact.",
		Args:  cobra.NoArgs,
		RunE:  c.runSetup,
	}
}

func (c *cli) runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(cfg.Embedding.ModelPath, cfg.Classifier.ModelPath)

	p := tea.NewProgram(model, tea.WithOutput(c.stdout))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Fprintln(c.stdout, "Setup cancelled.")
		return nil
	}

	modelPath, classifierPath := final.Result()
	cfg.Embedding.Backend = config.BackendONNX
	cfg.Embedding.ModelPath = modelPath
	cfg.Classifier.ModelPath = classifierPath

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintln(c.stdout, "Config saved successfully.")
	} else {
		fmt.Fprintf(c.stdout, "Config saved to %s\n", configPath)
	}
	return nil
}

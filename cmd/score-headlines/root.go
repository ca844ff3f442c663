// ABOUTME: Root Cobra command for score-headlines: score one headlines file per run.
// ABOUTME: Loads config, wires the embedding backend, and hands off to the pipeline.
package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/2389-research/score-headlines/internal/config"
	"github.com/2389-research/score-headlines/internal/embeddings"
	"github.com/2389-research/score-headlines/internal/models"
	"github.com/2389-research/score-headlines/internal/pipeline"
)

const usageLine = "Usage: score-headlines <input_file.txt> <source_name>"

// openEmbedder is swapped out in tests to avoid loading a real model.
var openEmbedder = embeddings.Open

// cli holds the flag values and output streams shared by every command.
type cli struct {
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	verbose    bool
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score-headlines <input_file.txt> <source_name>",
		Short: "Label news headlines with a sentiment classifier",
		Long: `
   SCORE HEADLINES

Embeds each headline with a sentence-transformer model, labels it with a
pre-trained linear SVM, and writes headline_scores_<source>_<date>.txt.`,
		Args:          c.exactArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runScore,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return c.usage()
	})

	cmd.Flags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/score-headlines/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(c.setupCmd())
	return cmd
}

func (c *cli) exactArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return c.usage()
	}
	return nil
}

func (c *cli) usage() error {
	fmt.Fprintln(c.stdout, usageLine)
	return models.ErrUsage
}

func (c *cli) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

func (c *cli) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.LoadFile(c.configPath)
	}
	return config.Load()
}

func (c *cli) runScore(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	classifierPath, err := cfg.GetClassifierPath()
	if err != nil {
		return fmt.Errorf("failed to resolve classifier path: %w", err)
	}
	outputDir, err := cfg.GetOutputDir()
	if err != nil {
		return fmt.Errorf("failed to resolve output dir: %w", err)
	}

	_, err = pipeline.Run(cmd.Context(), pipeline.Options{
		InputPath:      args[0],
		Source:         args[1],
		ClassifierPath: classifierPath,
		OutputDir:      outputDir,
		OpenEmbedder: func() (embeddings.Embedder, error) {
			return openEmbedder(cfg.Embedding)
		},
		Logger: c.logger(),
	})
	return err
}

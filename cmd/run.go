package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/fwopt/internal/config"
	"github.com/cwbudde/fwopt/internal/runner"
)

var (
	configPath string
	outDir     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an optimization experiment",
	Long:  `Loads a YAML experiment file and steps every selected algorithm through its budget, printing final objectives and optionally persisting run records and traces.`,
	RunE:  runExperiment,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Experiment file path (required)")
	runCmd.Flags().StringVar(&outDir, "out", "", "Result directory (overrides out_dir in the experiment file)")

	runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Run.OutDir = outDir
	}

	slog.Info("Starting experiment",
		"problem", cfg.Problem.Kind,
		"constraint", cfg.Constraint.Kind,
		"algorithms", cfg.Run.Algorithms,
		"steps", cfg.Run.Steps)

	results, err := runner.RunExperiment(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s %-8s %-14s %s\n", "ALGORITHM", "STEPS", "OBJECTIVE", "ELAPSED")
	for _, res := range results {
		final := res.Objectives[len(res.Objectives)-1]
		fmt.Printf("%-10s %-8d %-14.6e %s\n", res.Algorithm, len(res.Objectives), final, res.Elapsed)
	}
	if cfg.Run.OutDir != "" {
		fmt.Printf("\nRun records written to %s\n", cfg.Run.OutDir)
	}
	return nil
}

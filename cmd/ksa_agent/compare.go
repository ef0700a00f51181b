package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ksa-evaluator/internal/comparison"
	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/observability"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank candidate profiles against each other",
	Long: "Scores a pool of candidate profiles on the comparison criteria, ranks them and writes the " +
		"CandidateComparison as JSON, or as an Excel workbook when --out ends in .xlsx.",
	RunE: runCompare,
}

var (
	compareCandidates []string
	compareJobContext string
	compareConfig     string
	compareOutput     string
	compareVerbose    bool
)

func init() {
	compareCmd.Flags().StringSliceVarP(&compareCandidates, "candidate", "c", nil, "Candidate profile JSON file; repeat for each candidate (required)")
	compareCmd.Flags().StringVarP(&compareJobContext, "job-context", "j", "", "Path to job context JSON file")
	compareCmd.Flags().StringVar(&compareConfig, "config", "", "Path to config.json with comparison criteria")
	compareCmd.Flags().StringVarP(&compareOutput, "out", "o", "", "Output file, .json or .xlsx (defaults to JSON on stdout)")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "Print a ranking summary to stderr")
	mustMarkRequired(compareCmd, "candidate")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(compareConfig)
	if err != nil {
		return err
	}
	validator, err := inputValidator()
	if err != nil {
		return err
	}
	engine, err := comparison.NewEngine(cfg.Criteria, cfg.Comparison)
	if err != nil {
		return err
	}

	profiles := make([]*types.CandidateProfile, 0, len(compareCandidates))
	for _, path := range compareCandidates {
		data, err := readInput(path, "candidate")
		if err != nil {
			return err
		}
		profile, err := validator.Candidate(data)
		if err != nil {
			return fmt.Errorf("invalid candidate %s: %w", path, err)
		}
		profiles = append(profiles, profile)
	}

	var job *types.JobContext
	if compareJobContext != "" {
		data, err := readInput(compareJobContext, "job context")
		if err != nil {
			return err
		}
		if job, err = validator.JobContext(data); err != nil {
			return fmt.Errorf("invalid job context %s: %w", compareJobContext, err)
		}
	}

	result := engine.Compare(profiles, job)

	if compareVerbose || cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintComparison(&result)
	}
	if isExcel(compareOutput) {
		path, err := export.ComparisonToExcel(&result, compareOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Compared %d candidates to %s\n", len(result.Candidates), path)
		return nil
	}
	if err := writeResult(cmd.OutOrStdout(), compareOutput, result); err != nil {
		return err
	}
	if compareOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Compared %d candidates to %s\n", len(result.Candidates), compareOutput)
	}
	return nil
}

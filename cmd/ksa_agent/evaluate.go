package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/ksa-evaluator/internal/evaluation"
	"github.com/jonathan/ksa-evaluator/internal/observability"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a candidate profile against a KSA framework",
	Long:  "Scores a candidate profile JSON against a KSA framework JSON and writes the CandidateEvaluation as JSON.",
	RunE:  runEvaluate,
}

var (
	evaluateCandidate string
	evaluateFramework string
	evaluateJobTitle  string
	evaluateEvaluator string
	evaluateDate      string
	evaluateConfig    string
	evaluateOutput    string
	evaluateVerbose   bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateCandidate, "candidate", "c", "", "Path to candidate profile JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateFramework, "framework", "f", "", "Path to KSA framework JSON file (required)")
	evaluateCmd.Flags().StringVar(&evaluateJobTitle, "job-title", "", "Job title (defaults to the framework's job title)")
	evaluateCmd.Flags().StringVar(&evaluateEvaluator, "evaluator", "", "Evaluator name recorded on the evaluation")
	evaluateCmd.Flags().StringVar(&evaluateDate, "date", "", "Evaluation date as YYYY-MM-DD (defaults to today)")
	evaluateCmd.Flags().StringVar(&evaluateConfig, "config", "", "Path to config.json with scoring weights")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Path to output evaluation JSON file (defaults to stdout)")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "Print a summary box to stderr")
	mustMarkRequired(evaluateCmd, "candidate", "framework")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(evaluateConfig)
	if err != nil {
		return err
	}
	validator, err := inputValidator()
	if err != nil {
		return err
	}

	data, err := readInput(evaluateCandidate, "candidate")
	if err != nil {
		return err
	}
	profile, err := validator.Candidate(data)
	if err != nil {
		return fmt.Errorf("invalid candidate %s: %w", evaluateCandidate, err)
	}

	data, err = readInput(evaluateFramework, "framework")
	if err != nil {
		return err
	}
	framework, err := validator.Framework(data)
	if err != nil {
		return fmt.Errorf("invalid framework %s: %w", evaluateFramework, err)
	}

	evalCtx := types.EvaluationContext{
		JobTitle:       evaluateJobTitle,
		EvaluationDate: time.Now().UTC(),
		Evaluator:      evaluateEvaluator,
	}
	if evaluateDate != "" {
		evalCtx.EvaluationDate, err = time.Parse(time.DateOnly, evaluateDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", evaluateDate, err)
		}
	}
	if evalCtx.JobTitle == "" {
		evalCtx.JobTitle = framework.JobTitle
	}

	ev := evaluation.Evaluate(profile, framework, evalCtx, cfg.Evaluation)
	ev.CreatedAt = evalCtx.EvaluationDate

	if evaluateVerbose || cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintEvaluation(&ev)
	}
	if err := writeResult(cmd.OutOrStdout(), evaluateOutput, ev); err != nil {
		return err
	}
	if evaluateOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Evaluated %s: %.2f (%s) to %s\n",
			ev.CandidateName, ev.OverallCompatibility.Score, ev.OverallCompatibility.Recommendation, evaluateOutput)
	}
	return nil
}

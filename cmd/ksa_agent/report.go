package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/observability"
	"github.com/jonathan/ksa-evaluator/internal/report"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a multi-stage evaluation report from stage score files",
	Long: "Completes each stage score draft, aggregates them into a MultiStageEvaluationReport and writes it " +
		"as JSON, or as an Excel workbook when --out ends in .xlsx. Every draft must name the same candidate and job category.",
	RunE: runReport,
}

var (
	reportStages  []string
	reportConfig  string
	reportOutput  string
	reportVerbose bool
)

func init() {
	reportCmd.Flags().StringSliceVarP(&reportStages, "stage", "s", nil, "Stage score draft JSON file; repeat for each stage (required)")
	reportCmd.Flags().StringVar(&reportConfig, "config", "", "Path to config.json with stage weights")
	reportCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "Output file, .json or .xlsx (defaults to JSON on stdout)")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print a report summary to stderr")
	mustMarkRequired(reportCmd, "stage")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(reportConfig)
	if err != nil {
		return err
	}
	validator, err := inputValidator()
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	scores := make([]types.StageKSAScore, 0, len(reportStages))
	seen := make(map[types.StageID]string, len(reportStages))
	for _, path := range reportStages {
		data, err := readInput(path, "stage score")
		if err != nil {
			return err
		}
		in, err := validator.StageDraft(data)
		if err != nil {
			return fmt.Errorf("invalid stage score %s: %w", path, err)
		}
		if len(scores) > 0 && (in.CandidateID != scores[0].CandidateID || in.JobCategory != scores[0].JobCategory) {
			return fmt.Errorf("stage score %s is for %s/%s, expected %s/%s",
				path, in.CandidateID, in.JobCategory, scores[0].CandidateID, scores[0].JobCategory)
		}
		if prev, dup := seen[in.StageID]; dup {
			return fmt.Errorf("stage %s given twice: %s and %s", in.StageID, prev, path)
		}
		seen[in.StageID] = path

		completed, err := stages.Complete(stages.NewDraft(*in, now), cfg.Stages, now)
		if err != nil {
			return fmt.Errorf("failed to complete stage score %s: %w", path, err)
		}
		scores = append(scores, completed)
	}

	r := report.Build(scores[0].CandidateID, scores[0].JobCategory, scores, cfg.Stages, now)

	if reportVerbose || cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintReport(&r)
	}
	if isExcel(reportOutput) {
		path, err := export.ReportToExcel(&r, reportOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report for %s (%s) written to %s\n", r.CandidateID, r.JobCategory, path)
		return nil
	}
	if err := writeResult(cmd.OutOrStdout(), reportOutput, r); err != nil {
		return err
	}
	if reportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report for %s (%s) written to %s\n", r.CandidateID, r.JobCategory, reportOutput)
	}
	return nil
}

// Package observability provides structured logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit bullet items and a remainder line
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintEvaluation outputs the category scores and verdict of one evaluation.
func (p *Printer) PrintEvaluation(ev *types.CandidateEvaluation) {
	if ev == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", ev.CandidateName))
	if ev.Context.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Role:      %s\n", ev.Context.JobTitle))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Knowledge: %4.1f  (confidence %.2f)\n", ev.Knowledge.Overall, ev.Knowledge.Confidence))
	sb.WriteString(fmt.Sprintf("Skills:    %4.1f  (confidence %.2f)\n", ev.Skills.Overall, ev.Skills.Confidence))
	sb.WriteString(fmt.Sprintf("Abilities: %4.1f  (confidence %.2f)\n", ev.Abilities.Overall, ev.Abilities.Confidence))
	for _, v := range ev.CompanyValueFit {
		marker := ""
		if !v.Mapped {
			marker = " (unmapped)"
		}
		sb.WriteString(fmt.Sprintf("  %s: %.1f via %s%s\n", v.Value, v.Score, v.Trait, marker))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall:   %.1f → %s\n\n", ev.OverallCompatibility.Score, ev.OverallCompatibility.Recommendation))

	writeList(&sb, "Strengths", ev.OverallCompatibility.Strengths, maxItemsToShow)
	writeList(&sb, "Concerns", ev.OverallCompatibility.Concerns, maxItemsToShow)
	writeList(&sb, "Interview focus", ev.OverallCompatibility.InterviewFocus, 3)

	p.printBox("CANDIDATE EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs the ranking and pool insights of a comparison.
func (p *Printer) PrintComparison(c *types.CandidateComparison) {
	if c == nil || len(c.Candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates compared: %d\n\n", len(c.Candidates)))

	count := min(len(c.Candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		cand := c.Candidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s  %.2f\n", cand.Rank, cand.CandidateName, cand.OverallScore))
		sb.WriteString(fmt.Sprintf("    %s\n", cand.Recommendation))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(c.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(c.Candidates)-maxItemsToShow))
	}
	sb.WriteString("\n\n")

	d := c.Insights.Distribution
	sb.WriteString(fmt.Sprintf("Mean %.2f  Median %.2f  Std Dev %.2f\n\n", d.Mean, d.Median, d.StdDev))
	writeList(&sb, "Recommendations", c.Insights.Recommendations, 3)

	p.printBox("CANDIDATE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the rollup of a multi-stage report.
func (p *Printer) PrintReport(r *types.MultiStageEvaluationReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", r.CandidateID))
	sb.WriteString(fmt.Sprintf("Category:  %s\n", r.JobCategory))
	sb.WriteString(fmt.Sprintf("Stages:    %d completed\n", r.CompletedStages))
	sb.WriteString(fmt.Sprintf("Final:     %.1f → %s\n\n", r.FinalScore, r.FinalRecommendation))

	for _, name := range types.AttributeNames {
		prog, ok := r.AttributeProgression[name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", name, prog.Trend))
	}
	sb.WriteString("\n")

	writeList(&sb, "Key strengths", r.KeyStrengths, maxItemsToShow)
	writeList(&sb, "Key concerns", r.KeyConcerns, maxItemsToShow)
	writeList(&sb, "Discrepancies", r.Discrepancies, 3)

	p.printBox("MULTI-STAGE REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFrameworkCheck outputs the result of validating a framework document.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFrameworkCheck(fw *types.KSAFramework, err error) {
	if err != nil {
		p.printBox("❌ FRAMEWORK INVALID", err.Error())
		return
	}
	if fw == nil {
		return
	}

	var sb strings.Builder
	if fw.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Role:       %s\n", fw.JobTitle))
	}
	sb.WriteString(fmt.Sprintf("Weightings: K %.0f / S %.0f / A %.0f\n",
		fw.KSAFramework.Knowledge.Weighting, fw.KSAFramework.Skills.Weighting, fw.KSAFramework.Ability.Weighting))
	sb.WriteString(fmt.Sprintf("Values:     %s", strings.Join(fw.CompanyValues.Names(), ", ")))

	p.printBox("✅ FRAMEWORK VALID", sb.String())
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ksa-evaluator/internal/observability"
)

var validateFrameworkCmd = &cobra.Command{
	Use:   "validate-framework",
	Short: "Validate a KSA framework JSON file",
	Long:  "Checks a KSA framework against the bundled JSON Schema (or --schema-dir) and verifies the knowledge, skills and ability weightings sum to 100.",
	RunE:  runValidateFramework,
}

var validateFrameworkPath string

func init() {
	validateFrameworkCmd.Flags().StringVarP(&validateFrameworkPath, "framework", "f", "", "Path to KSA framework JSON file (required)")
	mustMarkRequired(validateFrameworkCmd, "framework")

	rootCmd.AddCommand(validateFrameworkCmd)
}

func runValidateFramework(cmd *cobra.Command, _ []string) error {
	validator, err := inputValidator()
	if err != nil {
		return err
	}
	data, err := readInput(validateFrameworkPath, "framework")
	if err != nil {
		return err
	}
	fw, err := validator.Framework(data)
	observability.NewPrinter(cmd.OutOrStdout()).PrintFrameworkCheck(fw, err)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

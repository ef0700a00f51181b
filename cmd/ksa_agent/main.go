// Package main provides the ksa_agent CLI and HTTP API server for KSA candidate evaluation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ksa_agent",
	Short: "KSA Candidate Evaluation Service",
	Long: "ksa_agent scores candidates against Knowledge, Skills and Ability frameworks, ranks candidate pools " +
		"and aggregates multi-stage interview scores into final hiring reports, from the command line or via REST API.",
	SilenceUsage: true,
}

var schemaDir string

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schema-dir", "",
		"Directory of JSON Schema files overriding the bundled schemas by file name")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

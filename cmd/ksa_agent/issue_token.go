package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ksa-evaluator/internal/config"
	"github.com/jonathan/ksa-evaluator/internal/server"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a bearer token for an evaluator",
	Long:  "Signs a JWT for an evaluator with JWT_SECRET. The evaluator id becomes the evaluator of stage scores the token creates.",
	RunE:  runIssueToken,
}

var (
	issueTokenEvaluatorID string
	issueTokenName        string
)

func init() {
	issueTokenCmd.Flags().StringVar(&issueTokenEvaluatorID, "evaluator-id", "", "Evaluator id recorded on stage scores (required)")
	issueTokenCmd.Flags().StringVar(&issueTokenName, "name", "", "Evaluator display name")
	mustMarkRequired(issueTokenCmd, "evaluator-id")

	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtCfg).GenerateToken(issueTokenEvaluatorID, issueTokenName)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

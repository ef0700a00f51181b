// Package schemas embeds the JSON Schema documents for evaluator inputs.
package schemas

import "embed"

// Schema file names
const (
	KSAFramework     = "ksa_framework.schema.json"
	CandidateProfile = "candidate_profile.schema.json"
	StageScore       = "stage_score.schema.json"
	JobContext       = "job_context.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Names lists every embedded schema.
func Names() []string {
	return []string{KSAFramework, CandidateProfile, StageScore, JobContext}
}

// Read returns the content of an embedded schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

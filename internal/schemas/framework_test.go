package schemas

import (
	"errors"
	"os"
	"testing"

	"github.com/jonathan/ksa-evaluator/internal/testutil"
	"github.com/jonathan/ksa-evaluator/internal/weights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestValidateFramework_Valid(t *testing.T) {
	fw, err := ValidateFramework(readFixture(t, "../../testdata/valid/ksa_framework.json"))
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", fw.JobTitle)
	assert.Equal(t, 40.0, fw.KSAFramework.Skills.Weighting)
	assert.Equal(t, []string{"Collaboration", "Innovation", "Ownership"}, fw.CompanyValues.Names())
}

func TestValidateFramework_SchemaViolations(t *testing.T) {
	for _, path := range []string{
		"../../testdata/invalid/framework_one_value.json",
		"../../testdata/invalid/framework_weighting_range.json",
	} {
		t.Run(path, func(t *testing.T) {
			_, err := ValidateFramework(readFixture(t, path))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Errors)
		})
	}
}

func TestValidateFramework_WeightingSum(t *testing.T) {
	_, err := ValidateFramework(readFixture(t, "../../testdata/invalid/framework_weighting_sum.json"))
	var sumErr *weights.SumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, 110.0, sumErr.Sum)
	assert.Equal(t, "ksa weighting", sumErr.Name)
}

func TestValidateFramework_Malformed(t *testing.T) {
	_, err := ValidateFramework([]byte(`{ not json`))
	assert.Error(t, err)
}

func TestCheckWeightings_Tolerance(t *testing.T) {
	fw := testutil.Framework()
	fw.KSAFramework.Ability.Weighting = 30.4
	assert.NoError(t, CheckWeightings(fw))

	fw.KSAFramework.Ability.Weighting = 30.6
	assert.Error(t, CheckWeightings(fw))
}

func TestValidateCandidate(t *testing.T) {
	profile, err := ValidateCandidate(readFixture(t, "../../testdata/valid/candidate_profile.json"))
	require.NoError(t, err)
	assert.Equal(t, "Riley File", profile.Name)
	assert.Len(t, profile.TechnicalSkills.ProgrammingLanguages, 1)

	_, err = ValidateCandidate(readFixture(t, "../../testdata/invalid/candidate_bad_proficiency.json"))
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidateEmbedded_MalformedIsValidationError(t *testing.T) {
	err := ValidateEmbedded("ksa_framework.schema.json", []byte(`{ not json`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}

func TestValidateStageDraft(t *testing.T) {
	in, err := ValidateStageDraft(readFixture(t, "../../testdata/valid/stage_score.json"))
	require.NoError(t, err)
	assert.Equal(t, "cand-file", in.CandidateID)
	assert.Equal(t, "stage-2", string(in.StageID))
	assert.Equal(t, 8.5, in.AttributeScores.TechnicalSkills)

	_, err = ValidateStageDraft(readFixture(t, "../../testdata/invalid/stage_score_range.json"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Errors)
}

func TestValidateJobContext(t *testing.T) {
	job, err := ValidateJobContext(readFixture(t, "../../testdata/valid/job_context.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, job.RequiredSkills)
	assert.Equal(t, 5.0, job.MinYears)

	_, err = ValidateJobContext([]byte(`{"min_years": -1}`))
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

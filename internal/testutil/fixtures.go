// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"time"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// EvaluationDate is the fixed date used by fixtures with open-ended positions.
var EvaluationDate = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// StrongProfile returns a senior candidate with high scores across the board.
func StrongProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		ID:    "cand-strong",
		Name:  "Avery Strong",
		Email: "avery@example.com",
		Personality: types.PersonalityProfile{
			Openness: 85, Conscientiousness: 88, Extraversion: 65, Agreeableness: 75, Neuroticism: 20,
		},
		Cognitive: types.CognitiveProfile{LogicalReasoning: 9, AbstractReasoning: 8.5, CreativeThinking: 8},
		TechnicalSkills: types.TechnicalSkills{
			ProgrammingLanguages: []types.SkillEntry{
				{Name: "Go", Proficiency: types.ProficiencyExpert, Years: 7},
				{Name: "Python", Proficiency: types.ProficiencyAdvanced, Years: 5},
			},
			Frameworks: []types.SkillEntry{{Name: "gRPC", Proficiency: types.ProficiencyAdvanced, Years: 4}},
			Tools:      []types.SkillEntry{{Name: "Kubernetes", Proficiency: types.ProficiencyExpert, Years: 5}},
			SystemDesign: types.SystemDesignSkills{
				Scalability: 9, Architecture: 9, Security: 8, Performance: 8.5,
			},
			Methodologies: types.MethodologySkills{Agile: 8, DevOps: 9, Testing: 9, CodeReview: 9},
		},
		Experience: types.Experience{
			TotalYears: 10,
			CurrentPosition: &types.Position{
				Title: "Staff Software Engineer", Company: "Acme", Industry: "fintech",
				StartDate: "2019-01", TeamSize: 12, DirectReports: 5,
			},
			PreviousPositions: []types.Position{
				{Title: "Senior Engineer", Company: "Globex", Industry: "fintech", StartDate: "2014-01", EndDate: "2018-12", TeamSize: 8},
			},
			Education:      []types.Education{{Degree: "BSc", Field: "Computer Science", Institution: "State University", GraduationYear: 2013}},
			Certifications: []string{"CKA", "AWS Solutions Architect"},
		},
		WorkBehavior: types.WorkBehavior{
			TeamPlayerType: "collaborator", CommunicationStyle: "direct", DecisionMakingStyle: "innovative", WorkStyle: "structured",
		},
		InterviewPerformance: types.InterviewPerformance{
			Behavioral: types.BehavioralInterview{Leadership: 9, Teamwork: 9, Communication: 8.5, ProblemSolving: 9, Adaptability: 8.5},
			Technical:  types.TechnicalInterview{Coding: 9, SystemDesign: 9, Troubleshooting: 9, Communication: 8.5},
			Strengths:  []string{"Clear system design reasoning"},
		},
	}
}

// WeakProfile returns a junior candidate with low scores and thin history.
func WeakProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		ID:   "cand-weak",
		Name: "Jordan Weak",
		Personality: types.PersonalityProfile{
			Openness: 40, Conscientiousness: 35, Extraversion: 30, Agreeableness: 40, Neuroticism: 80,
		},
		Cognitive: types.CognitiveProfile{LogicalReasoning: 4, AbstractReasoning: 3.5, CreativeThinking: 4},
		TechnicalSkills: types.TechnicalSkills{
			ProgrammingLanguages: []types.SkillEntry{{Name: "JavaScript", Proficiency: types.ProficiencyBeginner, Years: 1}},
			SystemDesign:         types.SystemDesignSkills{Scalability: 2, Architecture: 2, Security: 3, Performance: 2},
			Methodologies:        types.MethodologySkills{Agile: 3, DevOps: 2, Testing: 2, CodeReview: 3},
		},
		Experience: types.Experience{
			TotalYears: 1,
			CurrentPosition: &types.Position{
				Title: "Junior Developer", Company: "Startup", Industry: "retail", StartDate: "2023-06",
			},
		},
		WorkBehavior: types.WorkBehavior{
			TeamPlayerType: "independent", CommunicationStyle: "expressive", DecisionMakingStyle: "intuitive", WorkStyle: "flexible",
		},
		InterviewPerformance: types.InterviewPerformance{
			Behavioral: types.BehavioralInterview{Leadership: 3, Teamwork: 4, Communication: 4, ProblemSolving: 3.5, Adaptability: 4},
			Technical:  types.TechnicalInterview{Coding: 4, SystemDesign: 2, Troubleshooting: 3, Communication: 4},
			RedFlags:   []string{"Struggled to explain past work"},
		},
	}
}

// EmptyProfile returns a profile with no skills, positions or education.
func EmptyProfile() *types.CandidateProfile {
	return &types.CandidateProfile{ID: "cand-empty", Name: "Empty Candidate"}
}

// Framework returns a KSA framework with weightings summing to 100 and three company values.
func Framework() *types.KSAFramework {
	return &types.KSAFramework{
		JobTitle: "Backend Engineer",
		KSAFramework: types.KSAJobFit{
			Knowledge: types.JobFitCategory{
				Definition:      "Understanding of distributed systems and delivery practices",
				Questions:       []string{"Walk through how you would design a rate limiter."},
				EvaluationScale: map[string]string{"1": "No exposure", "10": "Recognised expert"},
				Weighting:       30,
				RedFlags:        []string{"Cannot explain basic trade-offs"},
			},
			Skills: types.JobFitCategory{
				Definition: "Hands-on engineering ability",
				Weighting:  40,
				RedFlags:   []string{"No testing discipline"},
			},
			Ability: types.JobFitCategory{
				Definition: "Learning, leadership and communication",
				Weighting:  30,
				RedFlags:   []string{"Blames others for failures"},
			},
		},
		CompanyValues: types.CompanyValuesFramework{
			Values: map[string]types.CompanyValueCategory{
				"Innovation":    {Description: "We try new things", Questions: []string{"Tell me about an experiment you ran."}},
				"Collaboration": {Description: "We win as a team"},
				"Ownership":     {Description: "We own outcomes"},
			},
		},
	}
}

// CompletedStage returns a completed stage score with all five attributes set to score.
func CompletedStage(candidateID string, stage types.StageID, score float64, completedAt time.Time) types.StageKSAScore {
	at := completedAt
	return types.StageKSAScore{
		ID:          string(stage) + "-" + candidateID,
		CandidateID: candidateID,
		JobCategory: "backend",
		StageID:     stage,
		KSAScores:   types.KSAStageScores{Knowledge: score, Skills: score, Ability: score},
		AttributeScores: types.AttributeScores{
			TechnicalSkills: score, Communication: score, ProblemSolving: score, Leadership: score, Adaptability: score,
		},
		OverallScore: score,
		Status:       types.StageStatusCompleted,
		CreatedAt:    completedAt,
		UpdatedAt:    completedAt,
		CompletedAt:  &at,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

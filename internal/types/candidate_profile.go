// Package types provides type definitions for structured data used throughout the KSA evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ProficiencyLevel is the self- or interviewer-reported tier for a skill
type ProficiencyLevel string

// Proficiency tiers
const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// CandidateProfile is a structured applicant record consumed by every evaluator
type CandidateProfile struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name" validate:"required"`
	Email                string               `json:"email,omitempty" validate:"omitempty,email"`
	Personality          PersonalityProfile   `json:"personality"`
	Cognitive            CognitiveProfile     `json:"cognitive"`
	TechnicalSkills      TechnicalSkills      `json:"technical_skills"`
	Experience           Experience           `json:"experience"`
	WorkBehavior         WorkBehavior         `json:"work_behavior"`
	InterviewPerformance InterviewPerformance `json:"interview_performance"`
	CreatedAt            time.Time            `json:"created_at"`
}

// PersonalityProfile holds Big Five trait scores on a 0-100 scale
type PersonalityProfile struct {
	Openness          float64 `json:"openness" validate:"min=0,max=100"`
	Conscientiousness float64 `json:"conscientiousness" validate:"min=0,max=100"`
	Extraversion      float64 `json:"extraversion" validate:"min=0,max=100"`
	Agreeableness     float64 `json:"agreeableness" validate:"min=0,max=100"`
	Neuroticism       float64 `json:"neuroticism" validate:"min=0,max=100"`
}

// CognitiveProfile holds reasoning scores on a 0-10 scale
type CognitiveProfile struct {
	LogicalReasoning  float64 `json:"logical_reasoning" validate:"min=0,max=10"`
	AbstractReasoning float64 `json:"abstract_reasoning" validate:"min=0,max=10"`
	CreativeThinking  float64 `json:"creative_thinking" validate:"min=0,max=10"`
}

// SkillEntry is a single language, framework or tool with tier and tenure
type SkillEntry struct {
	Name        string           `json:"name" validate:"required"`
	Proficiency ProficiencyLevel `json:"proficiency" validate:"oneof=beginner intermediate advanced expert"`
	Years       float64          `json:"years" validate:"min=0"`
}

// SystemDesignSkills holds system design sub-scores (0-10)
type SystemDesignSkills struct {
	Scalability  float64 `json:"scalability" validate:"min=0,max=10"`
	Architecture float64 `json:"architecture" validate:"min=0,max=10"`
	Security     float64 `json:"security" validate:"min=0,max=10"`
	Performance  float64 `json:"performance" validate:"min=0,max=10"`
}

// MethodologySkills holds engineering practice sub-scores (0-10)
type MethodologySkills struct {
	Agile      float64 `json:"agile" validate:"min=0,max=10"`
	DevOps     float64 `json:"devops" validate:"min=0,max=10"`
	Testing    float64 `json:"testing" validate:"min=0,max=10"`
	CodeReview float64 `json:"code_review" validate:"min=0,max=10"`
}

// TechnicalSkills groups a candidate's technical inventory
type TechnicalSkills struct {
	ProgrammingLanguages []SkillEntry      `json:"programming_languages" validate:"dive"`
	Frameworks           []SkillEntry      `json:"frameworks" validate:"dive"`
	Tools                []SkillEntry      `json:"tools" validate:"dive"`
	SystemDesign         SystemDesignSkills `json:"system_design"`
	Methodologies        MethodologySkills  `json:"methodologies"`
}

// Position is one held role
type Position struct {
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Industry      string   `json:"industry,omitempty"`
	StartDate     string   `json:"start_date,omitempty"` // YYYY-MM
	EndDate       string   `json:"end_date,omitempty"`   // YYYY-MM, empty when current
	TeamSize      int      `json:"team_size" validate:"min=0"`
	DirectReports int      `json:"direct_reports" validate:"min=0"`
	Achievements  []string `json:"achievements,omitempty"`
}

// Education is a completed degree or programme
type Education struct {
	Degree         string `json:"degree"`
	Field          string `json:"field,omitempty"`
	Institution    string `json:"institution,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
}

// Experience summarises work history, education and certifications
type Experience struct {
	TotalYears        float64     `json:"total_years" validate:"min=0"`
	CurrentPosition   *Position   `json:"current_position,omitempty"`
	PreviousPositions []Position  `json:"previous_positions"`
	Education         []Education `json:"education"`
	Certifications    []string    `json:"certifications"`
}

// Positions returns the current position (if any) followed by previous positions.
func (e Experience) Positions() []Position {
	positions := make([]Position, 0, len(e.PreviousPositions)+1)
	if e.CurrentPosition != nil {
		positions = append(positions, *e.CurrentPosition)
	}
	return append(positions, e.PreviousPositions...)
}

// WorkBehavior holds enumerated style tags
type WorkBehavior struct {
	TeamPlayerType      string `json:"team_player_type" validate:"omitempty,oneof=collaborator independent leader supporter"`
	CommunicationStyle  string `json:"communication_style" validate:"omitempty,oneof=direct diplomatic analytical expressive"`
	DecisionMakingStyle string `json:"decision_making_style" validate:"omitempty,oneof=analytical intuitive collaborative innovative decisive"`
	WorkStyle           string `json:"work_style" validate:"omitempty,oneof=structured flexible fast-paced methodical"`
}

// BehavioralInterview holds behavioural interview sub-scores (0-10)
type BehavioralInterview struct {
	Leadership     float64 `json:"leadership" validate:"min=0,max=10"`
	Teamwork       float64 `json:"teamwork" validate:"min=0,max=10"`
	Communication  float64 `json:"communication" validate:"min=0,max=10"`
	ProblemSolving float64 `json:"problem_solving" validate:"min=0,max=10"`
	Adaptability   float64 `json:"adaptability" validate:"min=0,max=10"`
}

// TechnicalInterview holds technical interview sub-scores (0-10)
type TechnicalInterview struct {
	Coding          float64 `json:"coding" validate:"min=0,max=10"`
	SystemDesign    float64 `json:"system_design" validate:"min=0,max=10"`
	Troubleshooting float64 `json:"troubleshooting" validate:"min=0,max=10"`
	Communication   float64 `json:"communication" validate:"min=0,max=10"`
}

// InterviewPerformance holds simulated or recorded interview results
type InterviewPerformance struct {
	Behavioral BehavioralInterview `json:"behavioral"`
	Technical  TechnicalInterview  `json:"technical"`
	Strengths  []string            `json:"strengths,omitempty"`
	RedFlags   []string            `json:"red_flags,omitempty"`
}

// Package stages tracks per-stage KSA scores for a candidate and aggregates them across the interview pipeline.
package stages

import (
	"fmt"

	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
)

// Definition describes one pipeline stage
type Definition struct {
	ID          types.StageID `json:"id"`
	Name        string        `json:"name"`
	Order       int           `json:"order"`
	Description string        `json:"description"`
}

// Definitions returns the three pipeline stages in order.
func Definitions() []Definition {
	return []Definition{
		{ID: types.Stage1, Name: "Phone Screen", Order: 1, Description: "Initial screen for motivation, communication and baseline fit"},
		{ID: types.Stage2, Name: "Technical Interview", Order: 2, Description: "Deep technical assessment of skills and problem solving"},
		{ID: types.Stage3, Name: "Final Interview", Order: 3, Description: "Leadership, values and team fit with the hiring panel"},
	}
}

// DefinitionFor returns the definition for id.
func DefinitionFor(id types.StageID) (Definition, bool) {
	for _, d := range Definitions() {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// StageOrder lists the stage ids in pipeline order.
var StageOrder = []types.StageID{types.Stage1, types.Stage2, types.Stage3}

// TrendMethod selects how trends are classified
type TrendMethod string

// Trend methods
const (
	// TrendEndpoint compares the first and last available stage; intermediate swings are ignored
	TrendEndpoint TrendMethod = "endpoint"
	// TrendSlope fits a least-squares line over the available stages
	TrendSlope TrendMethod = "slope"
)

// StageWeights weights each stage in the final score
type StageWeights struct {
	Stage1 float64 `json:"stage_1"`
	Stage2 float64 `json:"stage_2"`
	Stage3 float64 `json:"stage_3"`
}

// Get returns the weight for a stage.
func (w StageWeights) Get(id types.StageID) float64 {
	switch id {
	case types.Stage1:
		return w.Stage1
	case types.Stage2:
		return w.Stage2
	case types.Stage3:
		return w.Stage3
	}
	return 0
}

// Map returns the weights keyed by stage id.
func (w StageWeights) Map() map[string]float64 {
	return map[string]float64{
		string(types.Stage1): w.Stage1,
		string(types.Stage2): w.Stage2,
		string(types.Stage3): w.Stage3,
	}
}

// StageThresholds is the recommendation table for StageKSAScore records.
var StageThresholds = types.RecommendationThresholds{
	StrongRecommend: 8.5,
	Recommend:       7.0,
	Consider:        5.0,
}

// Config holds the aggregation tunables
type Config struct {
	Weights              StageWeights                   `json:"weights"`
	DiscrepancyThreshold float64                        `json:"discrepancy_threshold"`
	TrendThreshold       float64                        `json:"trend_threshold"`
	TrendMethod          TrendMethod                    `json:"trend_method"`
	Thresholds           types.RecommendationThresholds `json:"thresholds"`
}

// DefaultConfig returns the standard aggregation configuration.
func DefaultConfig() Config {
	return Config{
		Weights:              StageWeights{Stage1: 0.2, Stage2: 0.5, Stage3: 0.3},
		DiscrepancyThreshold: 4.0,
		TrendThreshold:       1.5,
		TrendMethod:          TrendEndpoint,
		Thresholds:           StageThresholds,
	}
}

// Validate checks the stage weights sum to 1.0 and the remaining settings are usable.
func (c Config) Validate() error {
	if err := weights.CheckFractions("stage", c.Weights.Map()); err != nil {
		return err
	}
	if c.DiscrepancyThreshold < 0 || c.TrendThreshold < 0 {
		return fmt.Errorf("discrepancy and trend thresholds must be non-negative")
	}
	switch c.TrendMethod {
	case TrendEndpoint, TrendSlope, "":
	default:
		return fmt.Errorf("unknown trend method %q", c.TrendMethod)
	}
	t := c.Thresholds
	if !(t.StrongRecommend >= t.Recommend && t.Recommend >= t.Consider) {
		return fmt.Errorf("recommendation thresholds must be descending")
	}
	return nil
}

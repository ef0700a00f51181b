// Package weights provides checks for weight vectors used by the scoring models.
package weights

import (
	"fmt"
	"math"
	"sort"
)

// DefaultTolerance is the allowed deviation for fractional weight vectors
const DefaultTolerance = 0.01

// SumError reports a weight vector that does not add up to its target
type SumError struct {
	Name      string
	Sum       float64
	Target    float64
	Tolerance float64
}

func (e *SumError) Error() string {
	return fmt.Sprintf("weights %s sum to %.4f, expected %.2f (±%.2f)", e.Name, e.Sum, e.Target, e.Tolerance)
}

// NegativeError reports a weight below zero
type NegativeError struct {
	Name  string
	Key   string
	Value float64
}

func (e *NegativeError) Error() string {
	return fmt.Sprintf("weights %s: %s is negative (%.4f)", e.Name, e.Key, e.Value)
}

// Sum adds up the values of a weight vector.
func Sum(values map[string]float64) float64 {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// Fixed order keeps the floating-point sum reproducible.
	sort.Strings(keys)

	total := 0.0
	for _, k := range keys {
		total += values[k]
	}
	return total
}

// CheckSum verifies that no weight is negative and that the vector sums to target within tolerance.
func CheckSum(name string, values map[string]float64, target, tolerance float64) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if values[k] < 0 {
			return &NegativeError{Name: name, Key: k, Value: values[k]}
		}
	}

	sum := Sum(values)
	if math.Abs(sum-target) > tolerance {
		return &SumError{Name: name, Sum: sum, Target: target, Tolerance: tolerance}
	}
	return nil
}

// CheckFractions verifies a 0-1 weight vector sums to 1.0.
func CheckFractions(name string, values map[string]float64) error {
	return CheckSum(name, values, 1.0, DefaultTolerance)
}

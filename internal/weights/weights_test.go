package weights

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFractions_Valid(t *testing.T) {
	err := CheckFractions("comparison", map[string]float64{
		"a": 0.30, "b": 0.25, "c": 0.20, "d": 0.15, "e": 0.10,
	})
	assert.NoError(t, err)
}

func TestCheckFractions_WithinTolerance(t *testing.T) {
	err := CheckFractions("knowledge", map[string]float64{"a": 0.505, "b": 0.5})
	assert.NoError(t, err)
}

func TestCheckFractions_BadSum(t *testing.T) {
	err := CheckFractions("comparison", map[string]float64{"a": 0.5, "b": 0.6})
	require.Error(t, err)

	var sumErr *SumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, "comparison", sumErr.Name)
	assert.InDelta(t, 1.1, sumErr.Sum, 1e-9)
	assert.Contains(t, err.Error(), "expected 1.00")
}

func TestCheckSum_Negative(t *testing.T) {
	err := CheckSum("stages", map[string]float64{"stage-1": -0.2, "stage-2": 1.2}, 1.0, DefaultTolerance)
	require.Error(t, err)

	var negErr *NegativeError
	require.True(t, errors.As(err, &negErr))
	assert.Equal(t, "stage-1", negErr.Key)
}

func TestCheckSum_Percentages(t *testing.T) {
	ok := map[string]float64{"knowledge": 30, "skills": 40, "ability": 30}
	assert.NoError(t, CheckSum("ksa", ok, 100, 0.5))

	bad := map[string]float64{"knowledge": 30, "skills": 40, "ability": 40}
	assert.Error(t, CheckSum("ksa", bad, 100, 0.5))
}

func TestSum_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
}

package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMilliSat(t *testing.T) {
	assert.Equal(t, "3.567", FormatMilliSat(3567))
	assert.Equal(t, "10.000", FormatMilliSat(10000))
}

func TestSatoshis(t *testing.T) {
	assert.Equal(t, "1000 satoshis", Satoshis(1000))
	assert.Equal(t, "21 satoshis", Satoshis(uint8(21)))
}

func TestFileExists(t *testing.T) {
	assert.Equal(t, true, FileExists("utils.go"))
	assert.Equal(t, false, FileExists("someFileThatDoesNotExists"))
}

func TestMultiplyChecked(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		expected int64
		ok       bool
	}{
		{"Zero", 0, math.MaxInt64, 0, true},
		{"Simple", 2500, 100, 250000, true},
		{"Negative", -3, 1000, -3000, true},
		{"LargestFitting", math.MaxInt64 / 1000, 1000, (math.MaxInt64 / 1000) * 1000, true},
		{"Overflow", math.MaxInt64, 1000, 0, false},
		{"NegativeOverflow", math.MinInt64 / 2, 3, 0, false},
		{"MinTimesMinusOne", math.MinInt64, -1, 0, false},
		{"MinusOneTimesMin", -1, math.MinInt64, 0, false},
		{"MinusOne", -1, -5, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, ok := MultiplyChecked(tc.a, tc.b)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.expected, result)
		})
	}

	_, ok := MultiplyChecked[int8](100, 2)
	require.False(t, ok)
}

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizePenalty_Disabled(t *testing.T) {
	assert.Equal(t, 1.0, SizePenalty(10, 100, false))
}

func TestSizePenalty_Equal(t *testing.T) {
	assert.Equal(t, 1.0, SizePenalty(50, 50, true))
}

func TestSizePenalty_Ratio(t *testing.T) {
	assert.InDelta(t, 0.5, SizePenalty(10, 20, true), 1e-9)
	assert.InDelta(t, 0.5, SizePenalty(20, 10, true), 1e-9)
}

func TestSizePenalty_ZeroSize(t *testing.T) {
	assert.Equal(t, 0.0, SizePenalty(0, 10, true))
	assert.Equal(t, 0.0, SizePenalty(10, 0, true))
}

func TestAdjustedSimilarity_AppliesPenalty(t *testing.T) {
	adjusted := AdjustedSimilarity(0.9, 10, 20, true)
	assert.InDelta(t, 0.45, adjusted, 1e-9)
}

func TestAdjustedSimilarity_PenaltyDisabled(t *testing.T) {
	adjusted := AdjustedSimilarity(0.9, 10, 20, false)
	assert.InDelta(t, 0.9, adjusted, 1e-9)
}

func TestPriority(t *testing.T) {
	assert.InDelta(t, 45.0, Priority(50, 0.9), 1e-9)
	assert.Equal(t, 0.0, Priority(0, 0.9))
	assert.Equal(t, 0.0, Priority(50, 0.0))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockHealthProvider(t *testing.T) {
	now := fixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local))

	disabled, err := MockHealthProvider{Now: now}.Today(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, disabled.Connected)
	assert.Zero(t, disabled.Steps)

	provider := MockHealthProvider{Enabled: true, Now: now}
	first, err := provider.Today(context.Background(), 1)
	require.NoError(t, err)
	second, err := provider.Today(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Connected)
	assert.GreaterOrEqual(t, first.Steps, 4000)
	assert.Less(t, first.Steps, 10000)
	assert.Equal(t, first.Steps/25, first.ExerciseCalories)
}

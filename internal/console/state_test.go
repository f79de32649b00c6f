package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenLifecycle(t *testing.T) {
	var s Screen[[]string]
	require.Equal(t, StateIdle, s.State())

	require.NoError(t, s.BeginLoad())
	require.Equal(t, StateLoading, s.State())

	require.NoError(t, s.Succeed([]string{"a", "b"}))
	require.Equal(t, StateLoaded, s.State())
	assert.Equal(t, []string{"a", "b"}, s.Data)
	assert.NoError(t, s.Err)

	// Submit, then fail: data from the last good load survives.
	require.NoError(t, s.BeginSubmit())
	cause := errors.New("insert failed")
	require.NoError(t, s.Fail(cause))
	assert.Equal(t, StateError, s.State())
	assert.Equal(t, cause, s.Err)
	assert.Equal(t, []string{"a", "b"}, s.Data)

	// Retry clears the error on success.
	require.NoError(t, s.BeginLoad())
	require.NoError(t, s.Succeed([]string{"c"}))
	assert.NoError(t, s.Err)
	assert.Equal(t, []string{"c"}, s.Data)
}

func TestScreenIllegalTransitions(t *testing.T) {
	var s Screen[int]

	// Can't resolve or submit a screen that never started loading.
	assert.Error(t, s.Succeed(1))
	assert.Error(t, s.Fail(errors.New("x")))
	assert.Error(t, s.BeginSubmit())
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.BeginLoad())
	// No overlapping loads, no submit mid-load.
	assert.Error(t, s.BeginLoad())
	assert.Error(t, s.BeginSubmit())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateIdle, StateLoading))
	assert.True(t, CanTransition(StateLoaded, StateSubmitting))
	assert.True(t, CanTransition(StateError, StateLoading))
	assert.False(t, CanTransition(StateIdle, StateLoaded))
	assert.False(t, CanTransition(StateSubmitting, StateSubmitting))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
}

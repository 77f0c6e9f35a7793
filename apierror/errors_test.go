package apierror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Remote("request failed", cause)

	assert.Contains(t, err.Error(), "remote: request failed")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_WithoutCause(t *testing.T) {
	err := InvalidUsage("message too long")

	assert.Equal(t, "invalid_usage: message too long", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsInvalidUsage(InvalidUsage("nope")))
	assert.False(t, IsInvalidUsage(Remote("boom", nil)))

	assert.True(t, IsRemote(RemoteStatus("status 500", 500)))
	assert.False(t, IsRemote(Fetch("logo", nil)))

	assert.True(t, IsFetch(Fetch("logo", nil)))
	assert.False(t, IsFetch(nil))
}

func TestKindPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("while downloading: %w", Fetch("logo unavailable", nil))
	require.True(t, IsFetch(wrapped))
	assert.False(t, IsRemote(wrapped))
}

func TestRemoteStatus(t *testing.T) {
	err := RemoteStatus("api returned status 404", 404)
	assert.Equal(t, 404, err.StatusCode)
}

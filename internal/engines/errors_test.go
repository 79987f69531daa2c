package engines

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadError(t *testing.T) {
	inner := errors.New("boom")
	err := &LoadError{Kind: KindFetchFailed, Engine: "wiki", Err: inner}

	assert.Contains(t, err.Error(), "wiki")
	assert.Contains(t, err.Error(), "fetch failed")
	assert.ErrorIs(t, err, inner)
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(&LoadError{Kind: KindFatalConfig, Engine: "e"}))
	assert.False(t, IsFatal(&LoadError{Kind: KindRejected, Engine: "e"}))
	assert.False(t, IsFatal(&LoadError{Kind: KindFetchFailed, Engine: "e"}))
	assert.False(t, IsFatal(errors.New("plain")))
	assert.False(t, IsFatal(nil))

	// wrapped fatal errors stay recognizable
	wrapped := fmt.Errorf("while loading: %w", &LoadError{Kind: KindFatalConfig, Engine: "e"})
	assert.True(t, IsFatal(wrapped))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "fatal config error", KindFatalConfig.String())
	require.Equal(t, "engine rejected", KindRejected.String())
	require.Equal(t, "fetch failed", KindFetchFailed.String())
}

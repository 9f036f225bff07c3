package apikey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HexOfExpectedLength(t *testing.T) {
	k, err := New()
	require.NoError(t, err)
	assert.Len(t, k, 2*keyBytes)
	_, err = hex.DecodeString(k)
	assert.NoError(t, err)
}

func TestNew_Unique(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	b, err := New()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	t.Parallel()

	raw, hash, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, resetTokenSize*2)
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, HashResetToken(raw), hash)

	raw2, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}

func TestHashResetTokenDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}

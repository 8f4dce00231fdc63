package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", string(hashed))

	assert.NoError(t, VerifyPassword(string(hashed), "password1"))
	assert.Error(t, VerifyPassword(string(hashed), "password2"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("password1")
	require.NoError(t, err)
	second, err := Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, string(first), string(second))
}

package auth

import (
	"testing"

	"coderr/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}} // low cost keeps the test fast
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("examplePassword")
	require.NoError(t, err)
	assert.NotEqual(t, "examplePassword", hash)

	assert.True(t, hasher.Check("examplePassword", hash))
	assert.False(t, hasher.Check("wrongPassword", hash))
}

func TestBcryptHasher_DefaultsWithoutConfig(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	hash, err := hasher.Hash("examplePassword")
	require.NoError(t, err)
	assert.True(t, hasher.Check("examplePassword", hash))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := NewBcryptHasher(cfg)

	first, err := hasher.Hash("examplePassword")
	require.NoError(t, err)
	second, err := hasher.Hash("examplePassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

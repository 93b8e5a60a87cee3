package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseAdminToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := IssueAdminToken("ops@rupavo.id", time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAdminToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "ops@rupavo.id", claims.Operator)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseAdminTokenWrongSecret(t *testing.T) {
	token, err := IssueAdminToken("ops@rupavo.id", time.Hour, []byte("secret-a"))
	require.NoError(t, err)

	_, err = ParseAdminToken(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestParseAdminTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueAdminToken("ops@rupavo.id", -time.Minute, secret)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, secret)
	assert.Error(t, err)
}

func TestParseAdminTokenGarbage(t *testing.T) {
	_, err := ParseAdminToken("not-a-token", []byte("test-secret"))
	assert.Error(t, err)
}

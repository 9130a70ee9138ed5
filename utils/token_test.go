package authUtils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcity-be/models"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, models.Actor{Name: "Alice", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", actor.Name)
	assert.Equal(t, models.RoleAdmin, actor.Role)
}

func TestTokenUnknownRoleDowngrades(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, models.Actor{Name: "Bob", Role: "superuser"})
	require.NoError(t, err)

	actor, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, actor.Role, "unrecognized roles fall back to user")
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("secret-a", models.Actor{Name: "Alice", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	require.Error(t, err)
}

func TestGenerateWithoutSecretFails(t *testing.T) {
	_, err := GenerateToken("", models.Actor{Name: "Alice", Role: models.RoleUser})
	require.Error(t, err)
}

package util

import (
	"testing"
	"time"

	"aivra_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "a@example.com", Role: model.Professor}
	user.ID = "uid-1"

	token, err := GenerateJWT(user, "secret-key", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserID)
	assert.Equal(t, model.Professor, claims.Role)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	user := &model.User{Email: "a@example.com"}
	user.ID = "uid-1"

	token, err := GenerateJWT(user, "secret-key", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-key")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	user := &model.User{}
	user.ID = "uid-1"

	token, err := GenerateJWT(user, "secret-key", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-key")
	assert.Error(t, err)
}

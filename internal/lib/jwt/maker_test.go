package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("alice", "user", "uid-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "uid-123", claims.UserUID)
}

func TestMaker_ParseExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("alice", "user", "uid-123")
	assert.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestMaker_ParseWithWrongKey(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)
	other := NewJWTMaker("other-secret", time.Hour)

	token, err := maker.GenerateToken("alice", "admin", "uid-123")
	assert.NoError(t, err)

	claims, err := other.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestMaker_ParseGarbage(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	claims, err := maker.ParseToken("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

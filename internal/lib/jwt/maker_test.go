package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name    string
		userUID string
		email   string
	}{
		{
			name:    "regular user",
			userUID: "8f14e45f-ea94-4f5f-9f86-1d2c197055f1",
			email:   "user@example.com",
		},
		{
			name:    "email-only user",
			userUID: "c6f0a1d2-3b4c-4d5e-8f90-aabbccddeeff",
			email:   "reader@example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID())
			assert.Equal(t, tt.email, claims.Email)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("secret", -time.Minute)

	token, err := maker.GenerateToken("uid-1", "user@example.com")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTMaker_ParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("secret-a", time.Minute)
	other := NewJWTMaker("secret-b", time.Minute)

	token, err := maker.GenerateToken("uid-1", "user@example.com")
	require.NoError(t, err)

	claims, err := other.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTMaker_ParseToken_Malformed(t *testing.T) {
	maker := NewJWTMaker("secret", time.Minute)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := maker.ParseToken(tokenStr)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

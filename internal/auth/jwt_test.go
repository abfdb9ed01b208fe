package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJwtRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	token, issued, err := GenerateSessionJwt(GenerateSessionJwtOpts{
		Email:     "ana@uni.pt",
		Id:        "jti-1",
		IsStudent: true,
		Now:       now,
		Secret:    "secret",
		Ttl:       time.Hour,
		UserId:    7,
		Username:  "Ana",
	})
	require.NoError(t, err)
	assert.False(t, issued.IsSuper)

	claims, err := ValidateSessionJwt("secret", token, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserId)
	assert.Equal(t, "ana@uni.pt", claims.Subject)
	assert.True(t, claims.IsStudent)
	assert.False(t, claims.IsTeacher)

	_, err = ValidateSessionJwt("secret", token, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrorJwtTokenExpired)

	_, err = ValidateSessionJwt("other-secret", token, now)
	assert.ErrorIs(t, err, ErrorJwtTokenSignature)
}

func TestSessionJwtSuperuserWhenNoRole(t *testing.T) {
	_, claims, err := GenerateSessionJwt(GenerateSessionJwtOpts{
		Email:  "admin@uni.pt",
		Secret: "secret",
		Ttl:    time.Hour,
	})
	require.NoError(t, err)
	assert.True(t, claims.IsSuper)
}

func TestDecodeSessionJwtWithoutSecret(t *testing.T) {
	now := time.Now()
	token, _, err := GenerateSessionJwt(GenerateSessionJwtOpts{
		Email:     "rui@uni.pt",
		IsTeacher: true,
		Now:       now,
		Secret:    "secret",
		Ttl:       time.Hour,
		UserId:    3,
		Username:  "Rui",
	})
	require.NoError(t, err)

	claims, err := DecodeSessionJwt(token)
	require.NoError(t, err)
	assert.True(t, claims.IsTeacher)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	_, err = DecodeSessionJwt("not-a-token")
	assert.ErrorIs(t, err, ErrorJwtClaimsInvalid)
}

func TestChallengeJwt(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	token, _, err := GenerateChallengeJwt(GenerateChallengeJwtOpts{
		ClassSessionId: 11,
		Id:             "challenge-1",
		Now:            now,
		Secret:         "challenge-secret",
		StudentId:      7,
		Ttl:            time.Minute,
	})
	require.NoError(t, err)

	claims, err := ParseChallengeJwt("challenge-secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.ClassSessionId)
	assert.Equal(t, int64(7), claims.StudentId)
	assert.False(t, claims.IsExpiredAt(now.Add(59*time.Second)))
	assert.True(t, claims.IsExpiredAt(now.Add(time.Minute)))

	_, err = ParseChallengeJwt("session-secret", token)
	assert.ErrorIs(t, err, ErrorJwtTokenSignature)
}

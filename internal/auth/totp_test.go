package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassPassword(t *testing.T) {
	secret, err := CreateClassSecret("class-session-11")
	require.NoError(t, err)

	at := time.Date(2026, 3, 2, 9, 0, 10, 0, time.UTC)
	password, validUntil, err := GenerateClassPassword(secret, at)
	require.NoError(t, err)
	require.Len(t, password, 6)
	require.Equal(t, time.Date(2026, 3, 2, 9, 0, 30, 0, time.UTC), validUntil)

	ok, err := ValidateClassPassword(secret, password, at)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ValidateClassPassword(secret, password, at.Add(31*time.Second))
	require.NoError(t, err)
	require.True(t, ok, "one period of skew is tolerated")

	ok, err = ValidateClassPassword(secret, password, at.Add(5*time.Minute))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = ValidateClassPassword(secret, "12", at)
	require.NoError(t, err)
	require.False(t, ok)
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 1)

	token, err := svc.Generate(7, "acme@example.com", true)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "acme@example.com", claims.Email)
	require.True(t, claims.IsOrg)
	require.NotEmpty(t, claims.ID)
}

func TestJWTUniqueIDs(t *testing.T) {
	svc := NewJWTService("secret", 1)
	a, err := svc.Generate(1, "a@example.com", false)
	require.NoError(t, err)
	b, err := svc.Generate(1, "a@example.com", false)
	require.NoError(t, err)

	ca, err := svc.Validate(a)
	require.NoError(t, err)
	cb, err := svc.Validate(b)
	require.NoError(t, err)
	require.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("one", 1).Generate(1, "a@example.com", false)
	require.NoError(t, err)

	_, err = NewJWTService("two", 1).Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", 1)
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.Generate(1, "a@example.com", false)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret", 1).Validate(s)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsRemaining(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}
	require.Equal(t, time.Hour, c.Remaining(now))
	require.Zero(t, c.Remaining(now.Add(2*time.Hour)))
	require.Zero(t, (&Claims{}).Remaining(now))
}
